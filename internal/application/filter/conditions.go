package filter

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"hotelops/internal/domain/room"
	vo "hotelops/internal/domain/shared/valueobjects"
	"hotelops/internal/domain/ticket"
	"hotelops/internal/domain/user"
	"hotelops/internal/shared/errors"
	"hotelops/internal/shared/query"
)

type columnKind int

const (
	textColumn columnKind = iota
	numericColumn
	searchColumn
	enumColumn
)

type column struct {
	kind  columnKind
	canon func(string) (string, error)
}

var (
	numeric = column{kind: numericColumn}
	text    = column{kind: textColumn}
	search  = column{kind: searchColumn}
)

func enum[T ~string](parse func(string) (T, error)) column {
	return column{kind: enumColumn, canon: func(s string) (string, error) {
		v, err := parse(s)
		return string(v), err
	}}
}

var columns = map[vo.EntityKind]map[string]column{
	vo.EntityRoom: {
		"id":                numeric,
		"room_number":       text,
		"floor":             numeric,
		"room_type":         text,
		"capacity":          numeric,
		"room_status":       enum(room.ParseStatus),
		"cleaning_status":   text,
		"cleaning_priority": enum(vo.ParsePriority),
		"credit":            numeric,
	},
	vo.EntityTicket: {
		"id":          numeric,
		"room_id":     numeric,
		"description": search,
		"status":      enum(ticket.ParseStatus),
		"priority":    enum(vo.ParsePriority),
		"credit":      numeric,
		"assigned_to": numeric,
		"created_by":  numeric,
	},
	vo.EntityUser: {
		"id":        numeric,
		"full_name": search,
		"email":     text,
		"role":      enum(user.ParseRole),
		"credit":    numeric,
	},
}

// Conditions translates a field -> value map into predicates for entity.
// Numeric columns are coerced to integers, name-like columns match a
// case-insensitive substring and enum columns accept any casing. Null values
// are skipped; unknown columns are rejected.
func Conditions(entity vo.EntityKind, conds map[string]any) ([]query.Predicate, error) {
	known, ok := columns[entity]
	if !ok {
		return nil, errors.NewValidationError(fmt.Sprintf("Invalid entity type '%s'.", entity))
	}

	keys := make([]string, 0, len(conds))
	for k := range conds {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	preds := make([]query.Predicate, 0, len(keys))
	for _, key := range keys {
		value := conds[key]
		if value == nil {
			continue
		}
		col, ok := known[key]
		if !ok {
			return nil, errors.NewValidationError(fmt.Sprintf("Unknown %s field '%s'.", entity.Title(), key))
		}

		switch col.kind {
		case numericColumn:
			n, err := toInt(value)
			if err != nil {
				return nil, errors.NewValidationError(
					fmt.Sprintf("Invalid numeric value for %s '%s': '%v'.", entity.Title(), key, value))
			}
			preds = append(preds, query.Eq(key, n))
		case searchColumn:
			term := strings.TrimSpace(fmt.Sprint(value))
			if term != "" {
				preds = append(preds, query.ILike(key, term))
			}
		case enumColumn:
			s := fmt.Sprint(value)
			if canon, err := col.canon(s); err == nil {
				s = canon
			}
			preds = append(preds, query.Eq(key, s))
		default:
			preds = append(preds, query.Eq(key, fmt.Sprint(value)))
		}
	}
	return preds, nil
}

// toInt accepts JSON numbers without a fraction and integer strings.
func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("not an integer: %v", n)
		}
		return int(n), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(n))
	case bool:
		return 0, fmt.Errorf("not an integer: %v", n)
	default:
		return strconv.Atoi(fmt.Sprint(v))
	}
}

// DefaultOrder is the listing order used by the read tools.
func DefaultOrder(entity vo.EntityKind) query.Order {
	switch entity {
	case vo.EntityTicket:
		return query.Desc(CreatedAt)
	case vo.EntityUser:
		return query.Asc("full_name")
	default:
		return query.Asc("room_number")
	}
}

// Build composes the condition map with the time and credit phrases.
func Build(entity vo.EntityKind, conds map[string]any, timePhrase, creditPhrase string, now time.Time) ([]query.Predicate, error) {
	preds, err := Conditions(entity, conds)
	if err != nil {
		return nil, err
	}
	preds = append(preds, ParseTimeConstraint(timePhrase, now)...)
	preds = append(preds, CreditFilter(creditPhrase)...)
	return preds, nil
}
