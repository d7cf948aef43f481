package ticket

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ticketUsecases "hotelops/internal/application/ticket/usecases"
	vo "hotelops/internal/domain/shared/valueobjects"
	ticketDomain "hotelops/internal/domain/ticket"
	"hotelops/internal/interfaces/http/handlers/testutil"
	"hotelops/internal/shared/errors"
)

type ticketHandlerMocks struct {
	list         *mockListTicketsUC
	get          *mockGetTicketUC
	addComment   *mockAddCommentUC
	listComments *mockListCommentsUC
	committer    *testutil.MockCommitter
}

func newTestTicketHandler(m ticketHandlerMocks) *TicketHandler {
	if m.list == nil {
		m.list = &mockListTicketsUC{}
	}
	if m.get == nil {
		m.get = &mockGetTicketUC{}
	}
	if m.addComment == nil {
		m.addComment = &mockAddCommentUC{}
	}
	if m.listComments == nil {
		m.listComments = &mockListCommentsUC{}
	}
	if m.committer == nil {
		m.committer = &testutil.MockCommitter{}
	}
	return NewTicketHandler(m.list, m.get, m.addComment, m.listComments, m.committer, testutil.NewMockLogger())
}

func sampleTicket() *ticketDomain.Ticket {
	number := "101"
	return &ticketDomain.Ticket{
		ID:          3,
		RoomID:      7,
		Description: "Leaking tap",
		Status:      ticketDomain.StatusOpen,
		Priority:    vo.PriorityHigh,
		CreatedBy:   1,
		RoomNumber:  &number,
	}
}

func TestTicketHandler_ListTickets(t *testing.T) {
	h := newTestTicketHandler(ticketHandlerMocks{
		list: &mockListTicketsUC{result: []*ticketDomain.Ticket{sampleTicket()}},
	})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets", nil)
	h.ListTickets(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var tickets []map[string]any
	_, err := testutil.DecodeData(w, &tickets)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, "101", tickets[0]["room_number"])
}

func TestTicketHandler_GetTicket(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		mock       *mockGetTicketUC
		wantStatus int
	}{
		{"found", "3", &mockGetTicketUC{result: sampleTicket()}, http.StatusOK},
		{"zero id", "0", &mockGetTicketUC{}, http.StatusBadRequest},
		{"missing", "42", &mockGetTicketUC{err: errors.NewNotFoundError("Ticket not found")}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestTicketHandler(ticketHandlerMocks{get: tt.mock})

			c, w := testutil.NewTestContext(http.MethodGet, "/tickets/"+tt.id, nil)
			testutil.SetURLParam(c, "id", tt.id)
			h.GetTicket(c)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestTicketHandler_CreateTicket_UsesTicketKind(t *testing.T) {
	committer := &testutil.MockCommitter{ConfirmCreateFunc: func(ctx context.Context, kind vo.EntityKind, raw json.RawMessage) (any, error) {
		assert.Equal(t, vo.EntityTicket, kind)
		return sampleTicket(), nil
	}}
	h := newTestTicketHandler(ticketHandlerMocks{committer: committer})

	c, w := testutil.NewTestContext(http.MethodPost, "/tickets", map[string]any{
		"room_id":     7,
		"description": "Leaking tap",
		"created_by":  1,
	})
	h.CreateTicket(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestTicketHandler_AddComment(t *testing.T) {
	t.Run("added", func(t *testing.T) {
		author := "Jane Doe"
		add := &mockAddCommentUC{result: &ticketDomain.Comment{
			ID:           1,
			TicketID:     3,
			UserID:       2,
			Content:      "Plumber **called**",
			UserFullName: &author,
			ContentHTML:  "<p>Plumber <strong>called</strong></p>\n",
		}}
		h := newTestTicketHandler(ticketHandlerMocks{addComment: add})

		c, w := testutil.NewTestContext(http.MethodPost, "/tickets/3/comments", map[string]any{
			"user_id": 2,
			"content": "Plumber **called**",
		})
		testutil.SetURLParam(c, "id", "3")
		h.AddComment(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, ticketUsecases.AddCommentCommand{TicketID: 3, UserID: 2, Content: "Plumber **called**"}, add.cmd)

		var comment map[string]any
		_, err := testutil.DecodeData(w, &comment)
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", comment["user_full_name"])
		assert.Contains(t, comment["content_html"], "<strong>called</strong>")
	})

	t.Run("missing content", func(t *testing.T) {
		h := newTestTicketHandler(ticketHandlerMocks{})

		c, w := testutil.NewTestContext(http.MethodPost, "/tickets/3/comments", map[string]any{"user_id": 2})
		testutil.SetURLParam(c, "id", "3")
		h.AddComment(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		assert.Equal(t, "validation_error", resp.Error.Type)
	})

	t.Run("unknown author", func(t *testing.T) {
		add := &mockAddCommentUC{err: errors.NewNotFoundError("User not found")}
		h := newTestTicketHandler(ticketHandlerMocks{addComment: add})

		c, w := testutil.NewTestContext(http.MethodPost, "/tickets/3/comments", map[string]any{
			"user_id": 99,
			"content": "hello",
		})
		testutil.SetURLParam(c, "id", "3")
		h.AddComment(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTicketHandler_ListComments(t *testing.T) {
	h := newTestTicketHandler(ticketHandlerMocks{
		listComments: &mockListCommentsUC{result: []*ticketDomain.Comment{}},
	})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets/3/comments", nil)
	testutil.SetURLParam(c, "id", "3")
	h.ListComments(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
	assert.JSONEq(t, `[]`, string(resp.Data))
}
