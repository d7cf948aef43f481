package envelope

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelops/internal/shared/errors"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		output     string
		wantType   Type
		wantEntity string
		wantMsg    string
	}{
		{
			name:     "whitelisted object kept",
			output:   `{"type":"confirmation_required","action":"delete","entity_type":"room","entity_id":3,"message":"Confirm DELETE Room 101?"}`,
			wantType: TypeConfirmationRequired, wantEntity: "room", wantMsg: "Confirm DELETE Room 101?",
		},
		{
			name:     "fenced object",
			output:   "```json\n{\"type\":\"message\",\"message\":\"STOP: No rooms found.\"}\n```",
			wantType: TypeMessage, wantMsg: "STOP: No rooms found.",
		},
		{
			name:     "list wrapped",
			output:   `[{"room":{"id":1},"tickets":[]},{"room":{"id":2},"tickets":[]}]`,
			wantType: TypeBatchReadResults, wantEntity: "room", wantMsg: "Found details for 2 items.",
		},
		{
			name:     "unknown type becomes message",
			output:   `{"type":"create_success","id":4}`,
			wantType: TypeMessage, wantMsg: `{"type":"create_success","id":4}`,
		},
		{
			name:     "plain text",
			output:   "  There are 3 open tickets.  ",
			wantType: TypeMessage, wantMsg: "There are 3 open tickets.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.output)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, tt.wantEntity, got.EntityType)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}
}

func TestFromError(t *testing.T) {
	amb := FromError(errors.NewAmbiguousError("Multiple users found for 'ann'."), "")
	assert.Equal(t, TypeClarificationNeeded, amb.Type)
	assert.Equal(t, "Multiple users found for 'ann'.", amb.Message)

	nf := FromError(errors.NewNotFoundError("Room 404 not found."), "ignored")
	assert.Equal(t, TypeError, nf.Type)
	assert.Equal(t, "Room 404 not found.", nf.Message)

	raw := FromError(fmt.Errorf("dial tcp: refused"), "Error reading rooms")
	assert.Equal(t, "Error reading rooms: dial tcp: refused", raw.Message)
}

func TestStopAndTerminal(t *testing.T) {
	stop := Stop("No tickets found with status '%s'.", "Open")
	assert.Equal(t, "STOP: No tickets found with status 'Open'.", stop.Message)
	assert.True(t, stop.IsStop())
	assert.True(t, stop.IsTerminal())

	assert.False(t, Message("Done.").IsTerminal())
	assert.True(t, Error("boom").IsTerminal())
	assert.True(t, Clarify("which one?").IsTerminal())
	assert.False(t, Read("room", []int{}, "Found 0 rooms.").IsTerminal())
}

func TestEnvelope_JSONOmitsEmptyFields(t *testing.T) {
	b, err := json.Marshal(Read("room", []string{"101"}, "Found 1 rooms matching criteria."))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"read_results","entity_type":"room","data":["101"],"message":"Found 1 rooms matching criteria."}`, string(b))
}
