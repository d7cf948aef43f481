package valueobjects

import (
	"fmt"
	"strings"
)

// EntityKind names one of the three entity collections.
type EntityKind string

const (
	EntityRoom   EntityKind = "room"
	EntityTicket EntityKind = "ticket"
	EntityUser   EntityKind = "user"
)

var allEntityKinds = []EntityKind{EntityRoom, EntityTicket, EntityUser}

func (k EntityKind) String() string {
	return string(k)
}

// Title is the capitalized singular used in messages: "Room".
func (k EntityKind) Title() string {
	return Capitalize(string(k))
}

// Plural is the collection name: "rooms".
func (k EntityKind) Plural() string {
	return string(k) + "s"
}

func (k EntityKind) IsValid() bool {
	for _, v := range allEntityKinds {
		if v == k {
			return true
		}
	}
	return false
}

// ParseEntityKind accepts singular or plural names in any casing.
func ParseEntityKind(s string) (EntityKind, error) {
	key := strings.TrimSuffix(Fold(s), "s")
	for _, v := range allEntityKinds {
		if string(v) == key {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid entity type %q, valid values: %v", s, allEntityKinds)
}
