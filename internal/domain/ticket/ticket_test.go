package ticket

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "hotelops/internal/domain/shared/valueobjects"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{"open", StatusOpen, false},
		{"in progress", StatusInProgress, false},
		{"in_progress", StatusInProgress, false},
		{"IN-PROGRESS", StatusInProgress, false},
		{"resolved", StatusResolved, false},
		{"canceled", StatusCanceled, false},
		{"cancelled", StatusCanceled, false},
		{"closed", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusIsActive(t *testing.T) {
	assert.True(t, StatusOpen.IsActive())
	assert.True(t, StatusInProgress.IsActive())
	assert.False(t, StatusResolved.IsActive())
	assert.False(t, StatusCanceled.IsActive())
}

func TestAssigneeRef_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		raw      string
		wantID   uint
		unassign bool
		wantErr  bool
	}{
		{`7`, 7, false, false},
		{`"12"`, 12, false, false},
		{`0`, 0, true, false},
		{`"0"`, 0, true, false},
		{`""`, 0, true, false},
		{`"none"`, 0, true, false},
		{`"Unassigned"`, 0, true, false},
		{`"null"`, 0, true, false},
		{`-3`, 0, false, true},
		{`1.5`, 0, false, true},
		{`"bob"`, 0, false, true},
		{`true`, 0, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var a AssigneeRef
			err := json.Unmarshal([]byte(tt.raw), &a)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, a.ID)
			assert.Equal(t, tt.unassign, a.Unassign)
		})
	}
}

func TestCreateInput_Normalize(t *testing.T) {
	var in CreateInput
	require.NoError(t, json.Unmarshal([]byte(`{"room_id":4,"description":"AC <i>broken</i>","created_by":2,"assigned_to":"none"}`), &in))
	require.NoError(t, in.Normalize())

	tk := in.ToTicket()
	assert.Equal(t, uint(4), tk.RoomID)
	assert.Equal(t, "AC broken", tk.Description)
	assert.Equal(t, StatusOpen, tk.Status)
	assert.Equal(t, vo.PriorityMedium, tk.Priority)
	assert.Equal(t, DefaultCredit, tk.Credit)
	assert.Nil(t, tk.AssignedTo)

	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"assigned_to":null`)
}

func TestCreateInput_RequiresRoom(t *testing.T) {
	in := CreateInput{Description: "x", CreatedBy: 1}
	assert.Error(t, in.Normalize())
}

func TestUpdateInput_Unassign(t *testing.T) {
	for _, raw := range []string{`{"assigned_to":null}`, `{"assigned_to":"unassigned"}`, `{"assigned_to":0}`} {
		t.Run(raw, func(t *testing.T) {
			var in UpdateInput
			require.NoError(t, json.Unmarshal([]byte(raw), &in))
			require.NoError(t, in.Normalize())

			assert.Equal(t, map[string]any{"assigned_to": nil}, in.Payload())

			assignee := uint(5)
			tk := &Ticket{ID: 1, AssignedTo: &assignee}
			in.Apply(tk)
			assert.Nil(t, tk.AssignedTo)
		})
	}
}

func TestUpdateInput_Payload(t *testing.T) {
	var in UpdateInput
	require.NoError(t, json.Unmarshal([]byte(`{"status":"in_progress","priority":"high","assigned_to":"3","subtask":null}`), &in))
	require.NoError(t, in.Normalize())

	assert.Equal(t, map[string]any{
		"status":      "In Progress",
		"priority":    "High",
		"assigned_to": uint(3),
		"subtask":     nil,
	}, in.Payload())

	id, ok := in.NewAssignee()
	assert.True(t, ok)
	assert.Equal(t, uint(3), id)
}

func TestUpdateInput_NullOnRequired(t *testing.T) {
	var in UpdateInput
	require.NoError(t, json.Unmarshal([]byte(`{"status":null}`), &in))
	assert.EqualError(t, in.Normalize(), "status cannot be null")
}

func TestNewComment(t *testing.T) {
	tests := []struct {
		name     string
		ticketID uint
		userID   uint
		content  string
		errMsg   string
	}{
		{"valid", 1, 2, "Replaced bulb", ""},
		{"zero ticket", 0, 2, "x", "ticket ID is required"},
		{"zero user", 1, 0, "x", "user ID is required"},
		{"blank", 1, 2, "   ", "content cannot be empty"},
		{"too long", 1, 2, strings.Repeat("a", maxCommentLength+1), "content exceeds maximum length"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewComment(tt.ticketID, tt.userID, tt.content)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.content, c.Content)
		})
	}
}

func TestTicketClone(t *testing.T) {
	name := "Ana"
	orig := &Ticket{ID: 1, AssignedToName: &name}
	cp := orig.Clone()
	*cp.AssignedToName = "Bo"
	assert.Equal(t, "Ana", *orig.AssignedToName)
}
