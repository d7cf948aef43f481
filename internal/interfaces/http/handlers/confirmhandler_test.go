package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelops/internal/application/mutation"
	vo "hotelops/internal/domain/shared/valueobjects"
	"hotelops/internal/interfaces/http/handlers/testutil"
)

func TestConfirmHandler_EntityParsing(t *testing.T) {
	tests := []struct {
		name       string
		entity     string
		wantKind   vo.EntityKind
		wantStatus int
	}{
		{"singular", "room", vo.EntityRoom, http.StatusCreated},
		{"plural", "tickets", vo.EntityTicket, http.StatusCreated},
		{"mixed case", "User", vo.EntityUser, http.StatusCreated},
		{"unknown", "guest", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotKind vo.EntityKind
			committer := &testutil.MockCommitter{ConfirmCreateFunc: func(ctx context.Context, kind vo.EntityKind, raw json.RawMessage) (any, error) {
				gotKind = kind
				return map[string]any{"id": 1}, nil
			}}
			h := NewConfirmHandler(committer, testutil.NewMockLogger())

			c, w := testutil.NewTestContext(http.MethodPost, "/confirm/create/"+tt.entity, map[string]any{"x": 1})
			testutil.SetURLParam(c, "entity", tt.entity)
			h.ConfirmCreate(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantKind, gotKind)
			if tt.wantStatus == http.StatusBadRequest {
				var resp testutil.APIResponse
				require.NoError(t, testutil.ParseResponse(w, &resp))
				assert.Equal(t, "Invalid entity type 'guest'. Valid types are 'room', 'ticket', 'user'.", resp.Error.Message)
			}
		})
	}
}

func TestConfirmHandler_ConfirmUpdateAndDelete(t *testing.T) {
	committer := &testutil.MockCommitter{
		ConfirmUpdateFunc: func(ctx context.Context, kind vo.EntityKind, id uint, raw json.RawMessage) (any, error) {
			assert.Equal(t, vo.EntityRoom, kind)
			assert.Equal(t, uint(4), id)
			return map[string]any{"id": 4, "floor": 2}, nil
		},
		ConfirmDeleteFunc: func(ctx context.Context, kind vo.EntityKind, id uint) error {
			assert.Equal(t, vo.EntityTicket, kind)
			assert.Equal(t, uint(9), id)
			return nil
		},
	}
	h := NewConfirmHandler(committer, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPut, "/confirm/update/room/4", map[string]any{"floor": 2})
	testutil.SetURLParam(c, "entity", "room")
	testutil.SetURLParam(c, "id", "4")
	h.ConfirmUpdate(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, _ = testutil.NewTestContext(http.MethodDelete, "/confirm/delete/ticket/9", nil)
	testutil.SetURLParam(c, "entity", "ticket")
	testutil.SetURLParam(c, "id", "9")
	h.ConfirmDelete(c)
	assert.Equal(t, http.StatusNoContent, c.Writer.Status())
}

func TestConfirmHandler_ConfirmBatchUpdate(t *testing.T) {
	t.Run("partial failure is still a success", func(t *testing.T) {
		committer := &testutil.MockCommitter{ConfirmBatchUpdateFunc: func(ctx context.Context, kind vo.EntityKind, ids []uint, raw json.RawMessage) (*mutation.BatchResult, error) {
			assert.Equal(t, vo.EntityRoom, kind)
			assert.Equal(t, []uint{1, 2, 3}, ids)
			assert.JSONEq(t, `{"room_status":"Available"}`, string(raw))
			return &mutation.BatchResult{
				Message:      "Batch update completed. Updated 2 room(s). Failed for 1 room(s): 3.",
				SuccessCount: 2,
				FailCount:    1,
				FailedIDs:    []uint{3},
			}, nil
		}}
		h := NewConfirmHandler(committer, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodPut, "/confirm/batch_update/rooms", map[string]any{
			"ids":     []uint{1, 2, 3},
			"payload": map[string]any{"room_status": "Available"},
		})
		testutil.SetURLParam(c, "entity_type", "rooms")
		h.ConfirmBatchUpdate(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var result mutation.BatchResult
		resp, err := testutil.DecodeData(w, &result)
		require.NoError(t, err)
		assert.Contains(t, resp.Message, "Updated 2 room(s)")
		assert.Equal(t, 1, result.FailCount)
		assert.Equal(t, []uint{3}, result.FailedIDs)
	})

	t.Run("ids are required", func(t *testing.T) {
		h := NewConfirmHandler(&testutil.MockCommitter{}, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodPut, "/confirm/batch_update/user", map[string]any{
			"ids":     []uint{},
			"payload": map[string]any{"credit": 1},
		})
		testutil.SetURLParam(c, "entity_type", "user")
		h.ConfirmBatchUpdate(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
