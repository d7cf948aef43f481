package valueobjects

import "fmt"

// Priority is shared by ticket priority and room cleaning priority.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

var allPriorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

func (p Priority) String() string {
	return string(p)
}

func (p Priority) IsValid() bool {
	return Canonical(string(p), allPriorities...) == p
}

// ParsePriority accepts any casing ("high", "HIGH") and returns the canonical value.
func ParsePriority(s string) (Priority, error) {
	if p := Canonical(s, allPriorities...); p != "" {
		return p, nil
	}
	return "", fmt.Errorf("invalid priority %q, valid values: %v", s, allPriorities)
}

// Priorities lists the valid values.
func Priorities() []Priority {
	return append([]Priority(nil), allPriorities...)
}
