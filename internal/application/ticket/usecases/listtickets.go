package usecases

import (
	"context"

	"hotelops/internal/domain/ticket"
	"hotelops/internal/shared/logger"
	"hotelops/internal/shared/query"
)

type ListTicketsUseCase struct {
	ticketRepo ticket.Repository
	logger     logger.Interface
}

func NewListTicketsUseCase(ticketRepo ticket.Repository, logger logger.Interface) *ListTicketsUseCase {
	return &ListTicketsUseCase{ticketRepo: ticketRepo, logger: logger}
}

// Execute returns one page of tickets, newest first, with room number and
// user names resolved.
func (uc *ListTicketsUseCase) Execute(ctx context.Context, page query.PageFilter) ([]*ticket.Ticket, error) {
	tickets, err := uc.ticketRepo.List(ctx, page)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "skip", page.Skip, "limit", page.Limit, "error", err)
		return nil, err
	}
	return tickets, nil
}
