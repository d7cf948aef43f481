package usecases

import (
	"context"

	"hotelops/internal/domain/room"
	"hotelops/internal/shared/logger"
	"hotelops/internal/shared/query"
)

type ListRoomsUseCase struct {
	roomRepo room.Repository
	logger   logger.Interface
}

func NewListRoomsUseCase(roomRepo room.Repository, logger logger.Interface) *ListRoomsUseCase {
	return &ListRoomsUseCase{roomRepo: roomRepo, logger: logger}
}

// Execute returns one page of rooms ordered by room number.
func (uc *ListRoomsUseCase) Execute(ctx context.Context, page query.PageFilter) ([]*room.Room, error) {
	rooms, err := uc.roomRepo.List(ctx, page)
	if err != nil {
		uc.logger.Errorw("failed to list rooms", "skip", page.Skip, "limit", page.Limit, "error", err)
		return nil, err
	}
	return rooms, nil
}
