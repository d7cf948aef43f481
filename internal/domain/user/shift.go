package user

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gorm.io/datatypes"
)

var shiftPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)

// ParseShiftTime parses "8:00", "08:00" or "08:00:30" into a time of day.
func ParseShiftTime(s string) (datatypes.Time, error) {
	m := shiftPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("invalid time of day %q, expected HH:MM or HH:MM:SS", s)
	}
	h, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])
	sec := 0
	if m[3] != "" {
		sec, _ = strconv.Atoi(m[3])
	}
	if h > 23 || mins > 59 || sec > 59 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	return datatypes.NewTime(h, mins, sec, 0), nil
}
