// Package filter turns loosely phrased conditions into store predicates.
// Phrase parsing is best effort: a phrase that does not match the grammar
// yields no predicate rather than an error.
package filter

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"hotelops/internal/shared/biztime"
	"hotelops/internal/shared/query"
)

// CreatedAt is the column time constraints apply to.
const CreatedAt = "created_at"

var (
	lastHoursPattern = regexp.MustCompile(`last (\d+) hours?`)
	lastDaysPattern  = regexp.MustCompile(`last (\d+) days?`)
)

// ParseTimeConstraint translates "yesterday", "last N hours", "last N days",
// "today" and "this week" into bounds on created_at. Day boundaries are
// business-timezone midnights. Only "yesterday" has an upper bound.
func ParseTimeConstraint(phrase string, now time.Time) []query.Predicate {
	phrase = strings.ToLower(strings.TrimSpace(phrase))
	if phrase == "" {
		return nil
	}
	today := biztime.StartOfDayUTC(now)

	if strings.Contains(phrase, "yesterday") {
		return []query.Predicate{
			query.Gte(CreatedAt, biztime.AddDaysUTC(today, -1)),
			query.Lt(CreatedAt, today),
		}
	}
	if n, ok := matchInt(lastHoursPattern, phrase); ok {
		return []query.Predicate{query.Gte(CreatedAt, now.UTC().Add(-time.Duration(n)*time.Hour))}
	}
	if n, ok := matchInt(lastDaysPattern, phrase); ok {
		return []query.Predicate{query.Gte(CreatedAt, biztime.AddDaysUTC(today, -n))}
	}
	if strings.Contains(phrase, "today") {
		return []query.Predicate{query.Gte(CreatedAt, today)}
	}
	if strings.Contains(phrase, "this week") {
		return []query.Predicate{query.Gte(CreatedAt, biztime.StartOfWeekUTC(now))}
	}
	return nil
}

func matchInt(re *regexp.Regexp, s string) (int, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
