package room

import (
	"context"

	roomUsecases "hotelops/internal/application/room/usecases"
	roomDomain "hotelops/internal/domain/room"
	"hotelops/internal/shared/query"
)

type listRoomsUseCase interface {
	Execute(ctx context.Context, page query.PageFilter) ([]*roomDomain.Room, error)
}

type getRoomUseCase interface {
	Execute(ctx context.Context, q roomUsecases.GetRoomQuery) (*roomDomain.Room, error)
}
