package models

import "time"

// TicketModel is the persistence shape of the tickets table. Denormalized
// display names are not stored; repositories join them at read time.
type TicketModel struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	RoomID      uint       `gorm:"not null;index" json:"room_id"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Status      string     `gorm:"size:32;not null;index" json:"status"`
	Priority    string     `gorm:"size:16;not null" json:"priority"`
	Credit      int        `gorm:"not null" json:"credit"`
	AssignedTo  *uint      `gorm:"index" json:"assigned_to"`
	CreatedBy   uint       `gorm:"not null;index" json:"created_by"`
	DueTime     *time.Time `json:"due_time"`
	Attachment  *string    `gorm:"type:text" json:"attachment"`
	CommentLog  *string    `gorm:"type:text" json:"comment_log"`
	Subtask     *string    `gorm:"type:text" json:"subtask"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (TicketModel) TableName() string {
	return TableTickets
}

type CommentModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TicketID  uint      `gorm:"not null;index" json:"ticket_id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func (CommentModel) TableName() string {
	return TableComments
}
