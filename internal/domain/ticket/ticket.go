package ticket

import (
	"fmt"
	"time"

	vo "hotelops/internal/domain/shared/valueobjects"
)

// Ticket is a work item against a room. RoomNumber, AssignedToName and
// CreatedByName are resolved at read time and never stored.
type Ticket struct {
	ID          uint        `json:"id"`
	RoomID      uint        `json:"room_id"`
	Description string      `json:"description"`
	Status      Status      `json:"status"`
	Priority    vo.Priority `json:"priority"`
	Credit      int         `json:"credit"`
	AssignedTo  *uint       `json:"assigned_to"`
	CreatedBy   uint        `json:"created_by"`
	DueTime     *time.Time  `json:"due_time"`
	Attachment  *string     `json:"attachment"`
	CommentLog  *string     `json:"comment_log"`
	Subtask     *string     `json:"subtask"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	RoomNumber     *string `json:"room_number"`
	AssignedToName *string `json:"assigned_to_name"`
	CreatedByName  *string `json:"created_by_name"`
}

func (t *Ticket) Clone() *Ticket {
	if t == nil {
		return nil
	}
	out := *t
	out.AssignedTo = clonePtr(t.AssignedTo)
	out.DueTime = clonePtr(t.DueTime)
	out.Attachment = clonePtr(t.Attachment)
	out.CommentLog = clonePtr(t.CommentLog)
	out.Subtask = clonePtr(t.Subtask)
	out.RoomNumber = clonePtr(t.RoomNumber)
	out.AssignedToName = clonePtr(t.AssignedToName)
	out.CreatedByName = clonePtr(t.CreatedByName)
	return &out
}

func (t *Ticket) Label() string {
	return fmt.Sprintf("Ticket %d", t.ID)
}

func (t *Ticket) IsActive() bool {
	return t.Status.IsActive()
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
