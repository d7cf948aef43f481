package models

import (
	"time"

	"gorm.io/datatypes"
)

// UserModel is the persistence shape of the users table.
type UserModel struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	FullName  string         `gorm:"size:128;not null" json:"full_name"`
	Email     string         `gorm:"uniqueIndex:uk_users_email;size:255;not null" json:"email"`
	Role      string         `gorm:"size:32;not null" json:"role"`
	StartTime datatypes.Time `gorm:"not null" json:"start_time"`
	EndTime   datatypes.Time `gorm:"not null" json:"end_time"`
	Credit    int            `gorm:"not null" json:"credit"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (UserModel) TableName() string {
	return TableUsers
}
