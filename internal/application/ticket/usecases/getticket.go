package usecases

import (
	"context"

	"hotelops/internal/domain/ticket"
	"hotelops/internal/shared/errors"
	"hotelops/internal/shared/logger"
)

type GetTicketUseCase struct {
	ticketRepo ticket.Repository
	logger     logger.Interface
}

func NewGetTicketUseCase(ticketRepo ticket.Repository, logger logger.Interface) *GetTicketUseCase {
	return &GetTicketUseCase{ticketRepo: ticketRepo, logger: logger}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	t, err := uc.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		uc.logger.Errorw("failed to load ticket", "ticket_id", ticketID, "error", err)
		return nil, err
	}
	if t == nil {
		return nil, errors.NewNotFoundError("Ticket not found")
	}
	return t, nil
}
