package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMutationEvent(t *testing.T) {
	e := NewMutationEvent("ticket", ActionBatch, []uint{4, 5}, map[string]any{"status": "Resolved"})

	assert.Equal(t, "hotel.ticket.batch_updated", e.GetEventType())
	assert.True(t, IsMutationEventType(e.GetEventType()))
	assert.NotEmpty(t, e.GetEventID())
	assert.Equal(t, []uint{4, 5}, e.EntityIDs)
	assert.False(t, e.GetOccurredAt().IsZero())
}

func TestIsMutationEventType(t *testing.T) {
	tests := []struct {
		name      string
		eventType string
		want      bool
	}{
		{"created", "hotel.room.created", true},
		{"deleted", "hotel.user.deleted", true},
		{"namespace only", "hotel.", false},
		{"missing action", "hotel.room.", false},
		{"missing entity", "hotel..updated", false},
		{"too many segments", "hotel.room.updated.v2", false},
		{"other namespace", "billing.invoice.created", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsMutationEventType(tt.eventType))
		})
	}
}
