package room

import (
	"fmt"
	"strings"
	"time"

	vo "hotelops/internal/domain/shared/valueobjects"
	"hotelops/internal/shared/optional"
	"hotelops/internal/shared/services/markdown"
)

const (
	DefaultRoomType       = "Standard"
	DefaultCapacity       = 2
	DefaultCleaningStatus = "Clean"
	DefaultCredit         = 0
)

// CreateInput is the payload accepted by prepare and confirm create. After
// Normalize every optional field carries its default, so the normalized input
// doubles as the staged proposal echoed back on confirm.
type CreateInput struct {
	RoomNumber       string     `json:"room_number" validate:"required,max=20"`
	Floor            *int       `json:"floor" validate:"required"`
	RoomType         string     `json:"room_type" validate:"max=50"`
	Capacity         *int       `json:"capacity" validate:"omitempty,gte=1"`
	RoomStatus       string     `json:"room_status"`
	CleaningStatus   string     `json:"cleaning_status" validate:"max=50"`
	CleaningPriority string     `json:"cleaning_priority"`
	Credit           *int       `json:"credit" validate:"omitempty,gte=0"`
	LastCleaned      *time.Time `json:"last_cleaned"`
	Notes            *string    `json:"notes"`
}

// NormalizeRoomNumber trims surrounding whitespace so " 101" and "101"
// name the same room.
func NormalizeRoomNumber(number string) string {
	return strings.TrimSpace(number)
}

// Normalize canonicalizes enum casing and applies defaults.
func (in *CreateInput) Normalize() error {
	in.RoomNumber = NormalizeRoomNumber(in.RoomNumber)
	if in.RoomNumber == "" {
		return fmt.Errorf("room_number cannot be empty")
	}
	if in.RoomType == "" {
		in.RoomType = DefaultRoomType
	}
	if in.Capacity == nil {
		c := DefaultCapacity
		in.Capacity = &c
	}
	if in.RoomStatus == "" {
		in.RoomStatus = string(StatusAvailable)
	}
	st, err := ParseStatus(in.RoomStatus)
	if err != nil {
		return err
	}
	in.RoomStatus = string(st)

	if in.CleaningStatus == "" {
		in.CleaningStatus = DefaultCleaningStatus
	}
	in.CleaningStatus = vo.TitleCase(in.CleaningStatus)

	if in.CleaningPriority == "" {
		in.CleaningPriority = string(vo.PriorityMedium)
	}
	p, err := vo.ParsePriority(in.CleaningPriority)
	if err != nil {
		return fmt.Errorf("cleaning_priority: %w", err)
	}
	in.CleaningPriority = string(p)

	if in.Credit == nil {
		c := DefaultCredit
		in.Credit = &c
	}
	if in.Notes != nil {
		n := markdown.PlainText(*in.Notes)
		in.Notes = &n
	}
	if in.LastCleaned != nil {
		t := in.LastCleaned.UTC()
		in.LastCleaned = &t
	}
	return nil
}

// ToRoom builds an unsaved room. Normalize must have been called.
func (in *CreateInput) ToRoom() *Room {
	r := &Room{
		RoomNumber:       in.RoomNumber,
		RoomType:         in.RoomType,
		RoomStatus:       Status(in.RoomStatus),
		CleaningStatus:   in.CleaningStatus,
		CleaningPriority: vo.Priority(in.CleaningPriority),
		LastCleaned:      in.LastCleaned,
		Notes:            in.Notes,
	}
	if in.Floor != nil {
		r.Floor = *in.Floor
	}
	if in.Capacity != nil {
		r.Capacity = *in.Capacity
	}
	if in.Credit != nil {
		r.Credit = *in.Credit
	}
	return r
}

// UpdateInput is a partial update. Only last_cleaned and notes accept null.
type UpdateInput struct {
	RoomNumber       optional.Value[string]    `json:"room_number"`
	Floor            optional.Value[int]       `json:"floor"`
	RoomType         optional.Value[string]    `json:"room_type"`
	Capacity         optional.Value[int]       `json:"capacity"`
	RoomStatus       optional.Value[string]    `json:"room_status"`
	CleaningStatus   optional.Value[string]    `json:"cleaning_status"`
	CleaningPriority optional.Value[string]    `json:"cleaning_priority"`
	Credit           optional.Value[int]       `json:"credit"`
	LastCleaned      optional.Value[time.Time] `json:"last_cleaned"`
	Notes            optional.Value[string]    `json:"notes"`
}

// Normalize canonicalizes enum casing and rejects invalid values, including
// null on a non-nullable column.
func (in *UpdateInput) Normalize() error {
	for _, f := range []struct {
		name string
		null bool
	}{
		{"room_number", in.RoomNumber.IsNull()},
		{"floor", in.Floor.IsNull()},
		{"room_type", in.RoomType.IsNull()},
		{"capacity", in.Capacity.IsNull()},
		{"room_status", in.RoomStatus.IsNull()},
		{"cleaning_status", in.CleaningStatus.IsNull()},
		{"cleaning_priority", in.CleaningPriority.IsNull()},
		{"credit", in.Credit.IsNull()},
	} {
		if f.null {
			return fmt.Errorf("%s cannot be null", f.name)
		}
	}

	if v, ok := in.RoomNumber.Get(); ok {
		v = NormalizeRoomNumber(v)
		if v == "" {
			return fmt.Errorf("room_number cannot be empty")
		}
		in.RoomNumber = optional.Of(v)
	}
	if v, ok := in.Capacity.Get(); ok && v < 1 {
		return fmt.Errorf("capacity must be at least 1")
	}
	if v, ok := in.Credit.Get(); ok && v < 0 {
		return fmt.Errorf("credit must be at least 0")
	}
	if v, ok := in.RoomStatus.Get(); ok {
		st, err := ParseStatus(v)
		if err != nil {
			return err
		}
		in.RoomStatus = optional.Of(string(st))
	}
	if v, ok := in.CleaningStatus.Get(); ok {
		in.CleaningStatus = optional.Of(vo.TitleCase(v))
	}
	if v, ok := in.CleaningPriority.Get(); ok {
		p, err := vo.ParsePriority(v)
		if err != nil {
			return fmt.Errorf("cleaning_priority: %w", err)
		}
		in.CleaningPriority = optional.Of(string(p))
	}
	if v, ok := in.Notes.Get(); ok {
		in.Notes = optional.Of(markdown.PlainText(v))
	}
	if v, ok := in.LastCleaned.Get(); ok {
		in.LastCleaned = optional.Of(v.UTC())
	}
	return nil
}

var fieldOrder = []string{
	"room_number", "floor", "room_type", "capacity", "room_status",
	"cleaning_status", "cleaning_priority", "credit", "last_cleaned", "notes",
}

// Payload returns the explicitly set fields keyed by column.
func (in *UpdateInput) Payload() map[string]any {
	fields := map[string]interface {
		IsSet() bool
		Any() any
	}{
		"room_number":       in.RoomNumber,
		"floor":             in.Floor,
		"room_type":         in.RoomType,
		"capacity":          in.Capacity,
		"room_status":       in.RoomStatus,
		"cleaning_status":   in.CleaningStatus,
		"cleaning_priority": in.CleaningPriority,
		"credit":            in.Credit,
		"last_cleaned":      in.LastCleaned,
		"notes":             in.Notes,
	}
	out := make(map[string]any)
	for _, name := range fieldOrder {
		if f := fields[name]; f.IsSet() {
			out[name] = f.Any()
		}
	}
	return out
}

func (in *UpdateInput) IsEmpty() bool {
	return len(in.Payload()) == 0
}

// Apply writes the set fields onto r.
func (in *UpdateInput) Apply(r *Room) {
	if v, ok := in.RoomNumber.Get(); ok {
		r.RoomNumber = v
	}
	if v, ok := in.Floor.Get(); ok {
		r.Floor = v
	}
	if v, ok := in.RoomType.Get(); ok {
		r.RoomType = v
	}
	if v, ok := in.Capacity.Get(); ok {
		r.Capacity = v
	}
	if v, ok := in.RoomStatus.Get(); ok {
		r.RoomStatus = Status(v)
	}
	if v, ok := in.CleaningStatus.Get(); ok {
		r.CleaningStatus = v
	}
	if v, ok := in.CleaningPriority.Get(); ok {
		r.CleaningPriority = vo.Priority(v)
	}
	if v, ok := in.Credit.Get(); ok {
		r.Credit = v
	}
	if in.LastCleaned.IsSet() {
		r.LastCleaned = in.LastCleaned.Ptr()
	}
	if in.Notes.IsSet() {
		r.Notes = in.Notes.Ptr()
	}
}
