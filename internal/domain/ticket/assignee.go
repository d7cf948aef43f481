package ticket

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// AssigneeRef is a loosely typed assigned_to value. Numbers and numeric
// strings name a user; 0, "", "0", "none", "null" and "unassigned" mean
// the ticket is unassigned.
type AssigneeRef struct {
	ID       uint
	Unassign bool
}

var unassignWords = map[string]bool{"": true, "0": true, "none": true, "null": true, "unassigned": true}

func (a *AssigneeRef) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*a = AssigneeRef{Unassign: true}
		return nil
	case float64:
		return a.setNumber(v)
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		if unassignWords[s] {
			*a = AssigneeRef{Unassign: true}
			return nil
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid user ID for assigned_to: %q", v)
		}
		return a.setNumber(n)
	default:
		return fmt.Errorf("invalid user ID for assigned_to: %s", string(data))
	}
}

func (a *AssigneeRef) setNumber(n float64) error {
	if n < 0 || n != float64(uint(n)) {
		return fmt.Errorf("invalid user ID for assigned_to: %v", n)
	}
	if n == 0 {
		*a = AssigneeRef{Unassign: true}
		return nil
	}
	*a = AssigneeRef{ID: uint(n)}
	return nil
}

func (a AssigneeRef) MarshalJSON() ([]byte, error) {
	if a.Unassign || a.ID == 0 {
		return []byte("null"), nil
	}
	return json.Marshal(a.ID)
}

// Ptr returns the referenced id or nil when unassigning.
func (a *AssigneeRef) Ptr() *uint {
	if a == nil || a.Unassign || a.ID == 0 {
		return nil
	}
	id := a.ID
	return &id
}
