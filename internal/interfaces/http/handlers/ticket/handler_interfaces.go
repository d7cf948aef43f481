package ticket

import (
	"context"

	ticketUsecases "hotelops/internal/application/ticket/usecases"
	ticketDomain "hotelops/internal/domain/ticket"
	"hotelops/internal/shared/query"
)

type listTicketsUseCase interface {
	Execute(ctx context.Context, page query.PageFilter) ([]*ticketDomain.Ticket, error)
}

type getTicketUseCase interface {
	Execute(ctx context.Context, ticketID uint) (*ticketDomain.Ticket, error)
}

type addCommentUseCase interface {
	Execute(ctx context.Context, cmd ticketUsecases.AddCommentCommand) (*ticketDomain.Comment, error)
}

type listCommentsUseCase interface {
	Execute(ctx context.Context, ticketID uint) ([]*ticketDomain.Comment, error)
}
