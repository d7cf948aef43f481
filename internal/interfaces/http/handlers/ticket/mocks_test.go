package ticket

import (
	"context"

	ticketUsecases "hotelops/internal/application/ticket/usecases"
	ticketDomain "hotelops/internal/domain/ticket"
	"hotelops/internal/shared/query"
)

type mockListTicketsUC struct {
	result []*ticketDomain.Ticket
	err    error
}

func (m *mockListTicketsUC) Execute(ctx context.Context, page query.PageFilter) ([]*ticketDomain.Ticket, error) {
	return m.result, m.err
}

type mockGetTicketUC struct {
	result *ticketDomain.Ticket
	err    error
}

func (m *mockGetTicketUC) Execute(ctx context.Context, ticketID uint) (*ticketDomain.Ticket, error) {
	return m.result, m.err
}

type mockAddCommentUC struct {
	result *ticketDomain.Comment
	err    error
	cmd    ticketUsecases.AddCommentCommand
}

func (m *mockAddCommentUC) Execute(ctx context.Context, cmd ticketUsecases.AddCommentCommand) (*ticketDomain.Comment, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockListCommentsUC struct {
	result []*ticketDomain.Comment
	err    error
}

func (m *mockListCommentsUC) Execute(ctx context.Context, ticketID uint) ([]*ticketDomain.Comment, error) {
	return m.result, m.err
}
