package ticket

import (
	"fmt"

	vo "hotelops/internal/domain/shared/valueobjects"
)

type Status string

const (
	StatusOpen       Status = "Open"
	StatusInProgress Status = "In Progress"
	StatusResolved   Status = "Resolved"
	StatusCanceled   Status = "Canceled"
)

var allStatuses = []Status{StatusOpen, StatusInProgress, StatusResolved, StatusCanceled}

// statusAliases maps folded spellings that differ from the canonical name.
var statusAliases = map[string]Status{
	"cancelled":  StatusCanceled,
	"inprogress": StatusInProgress,
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	for _, v := range allStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsActive reports whether the ticket still needs work.
func (s Status) IsActive() bool {
	return s == StatusOpen || s == StatusInProgress
}

// ParseStatus accepts "in progress", "in_progress", "cancelled" and other casings.
func ParseStatus(s string) (Status, error) {
	if st := vo.Canonical(s, allStatuses...); st != "" {
		return st, nil
	}
	if st, ok := statusAliases[vo.Fold(s)]; ok {
		return st, nil
	}
	return "", fmt.Errorf("invalid ticket status %q, valid values: %v", s, allStatuses)
}

// ActiveStatuses are the statuses counted as open workload.
func ActiveStatuses() []Status {
	return []Status{StatusOpen, StatusInProgress}
}

// Statuses lists the valid ticket statuses.
func Statuses() []Status {
	return append([]Status(nil), allStatuses...)
}
