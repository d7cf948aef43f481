package usecases

import (
	"context"

	"golang.org/x/sync/errgroup"

	"hotelops/internal/domain/room"
	vo "hotelops/internal/domain/shared/valueobjects"
	"hotelops/internal/domain/ticket"
	"hotelops/internal/domain/user"
	"hotelops/internal/shared/errors"
	"hotelops/internal/shared/logger"
	"hotelops/internal/shared/query"
)

// SummaryResponse holds the headline counts for the front desk dashboard.
type SummaryResponse struct {
	TotalUsers        int64 `json:"total_users"`
	ActiveTickets     int64 `json:"active_tickets"`
	TotalRooms        int64 `json:"total_rooms"`
	RoomsToClean      int64 `json:"rooms_to_clean"`
	HighPriorityRooms int64 `json:"high_priority_rooms"`
}

// GetSummaryUseCase handles retrieving the dashboard summary
type GetSummaryUseCase struct {
	roomRepo   room.Repository
	ticketRepo ticket.Repository
	userRepo   user.Repository
	logger     logger.Interface
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase
func NewGetSummaryUseCase(
	roomRepo room.Repository,
	ticketRepo ticket.Repository,
	userRepo user.Repository,
	logger logger.Interface,
) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		roomRepo:   roomRepo,
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// Execute runs the five counts concurrently and fails if any of them does.
func (uc *GetSummaryUseCase) Execute(ctx context.Context) (*SummaryResponse, error) {
	var resp SummaryResponse
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		resp.TotalUsers, err = uc.userRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		resp.ActiveTickets, err = uc.ticketRepo.Count(gctx, query.In("status", ticket.ActiveStatuses()))
		return err
	})
	g.Go(func() (err error) {
		resp.TotalRooms, err = uc.roomRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		resp.RoomsToClean, err = uc.roomRepo.Count(gctx, query.Eq("room_status", room.StatusNeedsCleaning))
		return err
	})
	g.Go(func() (err error) {
		resp.HighPriorityRooms, err = uc.roomRepo.Count(gctx, query.Eq("cleaning_priority", vo.PriorityHigh))
		return err
	})

	if err := g.Wait(); err != nil {
		uc.logger.Errorw("failed to compute dashboard summary", "error", err)
		return nil, errors.NewInternalError("Failed to retrieve dashboard summary", err.Error())
	}
	return &resp, nil
}
