package models

import "time"

// RoomModel is the persistence shape of the rooms table. JSON tags mirror the
// column names so rows convert to and from store.Row losslessly.
type RoomModel struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	RoomNumber       string     `gorm:"uniqueIndex:uk_rooms_room_number;size:32;not null" json:"room_number"`
	Floor            int        `gorm:"not null" json:"floor"`
	RoomType         string     `gorm:"size:64;not null" json:"room_type"`
	Capacity         int        `gorm:"not null" json:"capacity"`
	RoomStatus       string     `gorm:"size:32;not null;index" json:"room_status"`
	CleaningStatus   string     `gorm:"size:64;not null" json:"cleaning_status"`
	CleaningPriority string     `gorm:"size:16;not null" json:"cleaning_priority"`
	Credit           int        `gorm:"not null" json:"credit"`
	LastCleaned      *time.Time `json:"last_cleaned"`
	Notes            *string    `gorm:"type:text" json:"notes"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (RoomModel) TableName() string {
	return TableRooms
}
