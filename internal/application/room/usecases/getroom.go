package usecases

import (
	"context"
	"fmt"

	"hotelops/internal/domain/room"
	"hotelops/internal/shared/errors"
	"hotelops/internal/shared/logger"
)

// GetRoomQuery looks a room up by id, or by room number when ID is zero.
type GetRoomQuery struct {
	ID         uint
	RoomNumber string
}

type GetRoomUseCase struct {
	roomRepo room.Repository
	logger   logger.Interface
}

func NewGetRoomUseCase(roomRepo room.Repository, logger logger.Interface) *GetRoomUseCase {
	return &GetRoomUseCase{roomRepo: roomRepo, logger: logger}
}

func (uc *GetRoomUseCase) Execute(ctx context.Context, q GetRoomQuery) (*room.Room, error) {
	var (
		r   *room.Room
		err error
	)
	switch {
	case q.ID != 0:
		r, err = uc.roomRepo.GetByID(ctx, q.ID)
	case q.RoomNumber != "":
		r, err = uc.roomRepo.GetByRoomNumber(ctx, q.RoomNumber)
	default:
		return nil, errors.NewValidationError("room id or room number is required")
	}
	if err != nil {
		uc.logger.Errorw("failed to get room", "room_id", q.ID, "room_number", q.RoomNumber, "error", err)
		return nil, err
	}
	if r == nil {
		if q.ID != 0 {
			return nil, errors.NewNotFoundError("Room not found")
		}
		return nil, errors.NewNotFoundError(fmt.Sprintf("Room with number %s not found", q.RoomNumber))
	}
	return r, nil
}
