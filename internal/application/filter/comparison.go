package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"hotelops/internal/shared/query"
)

var firstInt = regexp.MustCompile(`\d+`)

// keyword order matters: the first matching group wins.
var comparators = []struct {
	op       query.Op
	keywords []string
}{
	{query.OpGt, []string{"more than", "greater than"}},
	{query.OpLt, []string{"less than", "fewer than"}},
	{query.OpGte, []string{"at least", "minimum"}},
	{query.OpLte, []string{"at most", "maximum"}},
}

// Comparison is a parsed "at least 3"-style phrase. The zero value matches
// nothing and means no filter.
type Comparison struct {
	Op    query.Op
	Value int
}

// IsZero reports whether the phrase failed to parse.
func (c Comparison) IsZero() bool {
	return c.Op == ""
}

// Match evaluates n against the comparison. An empty comparison accepts everything.
func (c Comparison) Match(n int) bool {
	switch c.Op {
	case query.OpGt:
		return n > c.Value
	case query.OpLt:
		return n < c.Value
	case query.OpGte:
		return n >= c.Value
	case query.OpLte:
		return n <= c.Value
	case query.OpEq:
		return n == c.Value
	default:
		return true
	}
}

// Predicate applies the comparison to column.
func (c Comparison) Predicate(column string) (query.Predicate, bool) {
	if c.IsZero() {
		return query.Predicate{}, false
	}
	return query.Predicate{Column: column, Op: c.Op, Value: c.Value}, true
}

func (c Comparison) String() string {
	if c.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s %d", c.Op, c.Value)
}

// ParseComparison reads the first integer of phrase and the comparator
// keyword around it. noun enables the bare "5 credits" form for equality.
func ParseComparison(phrase, noun string) Comparison {
	phrase = strings.ToLower(strings.TrimSpace(phrase))
	if phrase == "" {
		return Comparison{}
	}
	digits := firstInt.FindString(phrase)
	if digits == "" {
		return Comparison{}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return Comparison{}
	}

	for _, c := range comparators {
		for _, kw := range c.keywords {
			if strings.Contains(phrase, kw) {
				return Comparison{Op: c.op, Value: n}
			}
		}
	}
	if strings.Contains(phrase, "equal") || trailingNoun(noun).MatchString(phrase) {
		return Comparison{Op: query.OpEq, Value: n}
	}
	return Comparison{}
}

func trailingNoun(noun string) *regexp.Regexp {
	return regexp.MustCompile(`\d+\s+` + regexp.QuoteMeta(noun) + `s?$`)
}

// CreditFilter turns "at least 50" into credit >= 50. An unparseable phrase
// gives no predicates.
func CreditFilter(phrase string) []query.Predicate {
	if p, ok := ParseComparison(phrase, "credit").Predicate("credit"); ok {
		return []query.Predicate{p}
	}
	return nil
}

// CountFilter parses a ticket count phrase. The count is derived, so the
// result is evaluated in process with Match rather than pushed to the store.
func CountFilter(phrase string) Comparison {
	return ParseComparison(phrase, "ticket")
}
