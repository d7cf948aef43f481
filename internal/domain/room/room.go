package room

import (
	"time"

	vo "hotelops/internal/domain/shared/valueobjects"
)

// Room is a bookable room as stored in the rooms collection.
type Room struct {
	ID               uint        `json:"id"`
	RoomNumber       string      `json:"room_number"`
	Floor            int         `json:"floor"`
	RoomType         string      `json:"room_type"`
	Capacity         int         `json:"capacity"`
	RoomStatus       Status      `json:"room_status"`
	CleaningStatus   string      `json:"cleaning_status"`
	CleaningPriority vo.Priority `json:"cleaning_priority"`
	Credit           int         `json:"credit"`
	LastCleaned      *time.Time  `json:"last_cleaned"`
	Notes            *string     `json:"notes"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// Clone returns a deep copy.
func (r *Room) Clone() *Room {
	if r == nil {
		return nil
	}
	out := *r
	if r.LastCleaned != nil {
		t := *r.LastCleaned
		out.LastCleaned = &t
	}
	if r.Notes != nil {
		n := *r.Notes
		out.Notes = &n
	}
	return &out
}

// Label is how a room is referred to in user-facing messages.
func (r *Room) Label() string {
	return "Room " + r.RoomNumber
}

func (r *Room) NeedsCleaning() bool {
	return r.RoomStatus == StatusNeedsCleaning
}
