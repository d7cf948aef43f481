package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelops/internal/application/envelope"
	"hotelops/internal/interfaces/http/handlers/testutil"
)

func TestQueryHandler_Query(t *testing.T) {
	t.Run("returns the bare envelope", func(t *testing.T) {
		runner := &mockQueryRunner{RunFunc: func(ctx context.Context, q string) *envelope.Envelope {
			assert.Equal(t, "which rooms need cleaning?", q)
			return envelope.Search("room", []map[string]any{{"room_number": "101"}}, "Found 1 room(s) with status 'Needs Cleaning'.")
		}}
		h := NewQueryHandler(runner, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodPost, "/query", map[string]string{"query": "which rooms need cleaning?"})
		h.Query(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var got map[string]any
		require.NoError(t, testutil.ParseResponse(w, &got))
		assert.Equal(t, "search_results", got["type"])
		assert.Equal(t, "room", got["entity_type"])
		assert.NotContains(t, got, "success")
	})

	t.Run("agent errors stay 200", func(t *testing.T) {
		runner := &mockQueryRunner{RunFunc: func(ctx context.Context, q string) *envelope.Envelope {
			return envelope.Error("An unexpected error occurred: upstream timeout")
		}}
		h := NewQueryHandler(runner, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodPost, "/query", map[string]string{"query": "rooms"})
		h.Query(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var got envelope.Envelope
		require.NoError(t, testutil.ParseResponse(w, &got))
		assert.Equal(t, envelope.TypeError, got.Type)
	})

	t.Run("missing query field", func(t *testing.T) {
		h := NewQueryHandler(&mockQueryRunner{}, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodPost, "/query", map[string]string{"q": "rooms"})
		h.Query(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var got envelope.Envelope
		require.NoError(t, testutil.ParseResponse(w, &got))
		assert.Equal(t, envelope.TypeError, got.Type)
	})
}
