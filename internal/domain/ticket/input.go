package ticket

import (
	"fmt"
	"time"

	vo "hotelops/internal/domain/shared/valueobjects"
	"hotelops/internal/shared/optional"
	"hotelops/internal/shared/services/markdown"
)

const DefaultCredit = 1

// CreateInput accepts either room_id or room_number; the caller resolves
// room_number before Normalize.
type CreateInput struct {
	RoomID      *uint        `json:"room_id"`
	RoomNumber  string       `json:"room_number,omitempty"`
	Description string       `json:"description" validate:"required,max=2000"`
	Status      string       `json:"status"`
	Priority    string       `json:"priority"`
	Credit      *int         `json:"credit" validate:"omitempty,gte=0"`
	AssignedTo  *AssigneeRef `json:"assigned_to"`
	CreatedBy   uint         `json:"created_by" validate:"required"`
	DueTime     *time.Time   `json:"due_time"`
	Attachment  *string      `json:"attachment"`
	CommentLog  *string      `json:"comment_log"`
	Subtask     *string      `json:"subtask"`
}

func (in *CreateInput) Normalize() error {
	if in.RoomID == nil || *in.RoomID == 0 {
		return fmt.Errorf("room_id or room_number is required")
	}
	in.Description = markdown.PlainText(in.Description)
	if in.Description == "" {
		return fmt.Errorf("description cannot be empty")
	}

	if in.Status == "" {
		in.Status = string(StatusOpen)
	}
	st, err := ParseStatus(in.Status)
	if err != nil {
		return err
	}
	in.Status = string(st)

	if in.Priority == "" {
		in.Priority = string(vo.PriorityMedium)
	}
	p, err := vo.ParsePriority(in.Priority)
	if err != nil {
		return err
	}
	in.Priority = string(p)

	if in.Credit == nil {
		c := DefaultCredit
		in.Credit = &c
	}
	if in.AssignedTo != nil && in.AssignedTo.Ptr() == nil {
		in.AssignedTo = nil
	}
	if in.DueTime != nil {
		t := in.DueTime.UTC()
		in.DueTime = &t
	}
	return nil
}

// ToTicket builds an unsaved ticket. Normalize must have been called.
func (in *CreateInput) ToTicket() *Ticket {
	t := &Ticket{
		Description: in.Description,
		Status:      Status(in.Status),
		Priority:    vo.Priority(in.Priority),
		Credit:      DefaultCredit,
		AssignedTo:  in.AssignedTo.Ptr(),
		CreatedBy:   in.CreatedBy,
		DueTime:     in.DueTime,
		Attachment:  in.Attachment,
		CommentLog:  in.CommentLog,
		Subtask:     in.Subtask,
	}
	if in.RoomID != nil {
		t.RoomID = *in.RoomID
	}
	if in.Credit != nil {
		t.Credit = *in.Credit
	}
	return t
}

// UpdateInput is a partial ticket update. assigned_to, due_time, attachment,
// comment_log and subtask accept null.
type UpdateInput struct {
	RoomID      optional.Value[uint]        `json:"room_id"`
	Description optional.Value[string]      `json:"description"`
	Status      optional.Value[string]      `json:"status"`
	Priority    optional.Value[string]      `json:"priority"`
	Credit      optional.Value[int]         `json:"credit"`
	AssignedTo  optional.Value[AssigneeRef] `json:"assigned_to"`
	DueTime     optional.Value[time.Time]   `json:"due_time"`
	Attachment  optional.Value[string]      `json:"attachment"`
	CommentLog  optional.Value[string]      `json:"comment_log"`
	Subtask     optional.Value[string]      `json:"subtask"`
}

func (in *UpdateInput) Normalize() error {
	for _, f := range []struct {
		name string
		null bool
	}{
		{"room_id", in.RoomID.IsNull()},
		{"description", in.Description.IsNull()},
		{"status", in.Status.IsNull()},
		{"priority", in.Priority.IsNull()},
		{"credit", in.Credit.IsNull()},
	} {
		if f.null {
			return fmt.Errorf("%s cannot be null", f.name)
		}
	}

	if v, ok := in.RoomID.Get(); ok && v == 0 {
		return fmt.Errorf("room_id must be a positive integer")
	}
	if v, ok := in.Description.Get(); ok {
		v = markdown.PlainText(v)
		if v == "" {
			return fmt.Errorf("description cannot be empty")
		}
		in.Description = optional.Of(v)
	}
	if v, ok := in.Status.Get(); ok {
		st, err := ParseStatus(v)
		if err != nil {
			return err
		}
		in.Status = optional.Of(string(st))
	}
	if v, ok := in.Priority.Get(); ok {
		p, err := vo.ParsePriority(v)
		if err != nil {
			return err
		}
		in.Priority = optional.Of(string(p))
	}
	if v, ok := in.Credit.Get(); ok && v < 0 {
		return fmt.Errorf("credit must be at least 0")
	}
	if v, ok := in.AssignedTo.Get(); ok && v.Unassign {
		in.AssignedTo = optional.Null[AssigneeRef]()
	}
	if v, ok := in.DueTime.Get(); ok {
		in.DueTime = optional.Of(v.UTC())
	}
	return nil
}

// NewAssignee returns the user id being assigned, if any.
func (in *UpdateInput) NewAssignee() (uint, bool) {
	v, ok := in.AssignedTo.Get()
	if !ok || v.Unassign {
		return 0, false
	}
	return v.ID, true
}

// NewRoom returns the room id being moved to, if any.
func (in *UpdateInput) NewRoom() (uint, bool) {
	return in.RoomID.Get()
}

func (in *UpdateInput) Payload() map[string]any {
	out := make(map[string]any)
	set := func(name string, f interface {
		IsSet() bool
		Any() any
	}) {
		if f.IsSet() {
			out[name] = f.Any()
		}
	}
	set("room_id", in.RoomID)
	set("description", in.Description)
	set("status", in.Status)
	set("priority", in.Priority)
	set("credit", in.Credit)
	if in.AssignedTo.IsSet() {
		if id, ok := in.NewAssignee(); ok {
			out["assigned_to"] = id
		} else {
			out["assigned_to"] = nil
		}
	}
	set("due_time", in.DueTime)
	set("attachment", in.Attachment)
	set("comment_log", in.CommentLog)
	set("subtask", in.Subtask)
	return out
}

func (in *UpdateInput) IsEmpty() bool {
	return len(in.Payload()) == 0
}

// Apply writes the set fields onto t. Denormalized names are left for the
// caller to recompute.
func (in *UpdateInput) Apply(t *Ticket) {
	if v, ok := in.RoomID.Get(); ok {
		t.RoomID = v
	}
	if v, ok := in.Description.Get(); ok {
		t.Description = v
	}
	if v, ok := in.Status.Get(); ok {
		t.Status = Status(v)
	}
	if v, ok := in.Priority.Get(); ok {
		t.Priority = vo.Priority(v)
	}
	if v, ok := in.Credit.Get(); ok {
		t.Credit = v
	}
	if in.AssignedTo.IsSet() {
		if id, ok := in.NewAssignee(); ok {
			t.AssignedTo = &id
		} else {
			t.AssignedTo = nil
		}
	}
	if in.DueTime.IsSet() {
		t.DueTime = in.DueTime.Ptr()
	}
	if in.Attachment.IsSet() {
		t.Attachment = in.Attachment.Ptr()
	}
	if in.CommentLog.IsSet() {
		t.CommentLog = in.CommentLog.Ptr()
	}
	if in.Subtask.IsSet() {
		t.Subtask = in.Subtask.Ptr()
	}
}
