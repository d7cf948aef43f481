package room

import (
	"fmt"

	vo "hotelops/internal/domain/shared/valueobjects"
)

type Status string

const (
	StatusAvailable     Status = "Available"
	StatusOccupied      Status = "Occupied"
	StatusNeedsCleaning Status = "Needs Cleaning"
	StatusOutOfService  Status = "Out of Service"
)

var allStatuses = []Status{StatusAvailable, StatusOccupied, StatusNeedsCleaning, StatusOutOfService}

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

// ParseStatus accepts "needs_cleaning", "NEEDS CLEANING", "out-of-service"
// and similar spellings.
func ParseStatus(s string) (Status, error) {
	if st := vo.Canonical(s, allStatuses...); st != "" {
		return st, nil
	}
	return "", fmt.Errorf("invalid room status %q, valid values: %v", s, allStatuses)
}

// Statuses lists the valid room statuses.
func Statuses() []Status {
	return append([]Status(nil), allStatuses...)
}
