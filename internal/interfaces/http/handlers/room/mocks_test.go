package room

import (
	"context"

	roomUsecases "hotelops/internal/application/room/usecases"
	roomDomain "hotelops/internal/domain/room"
	"hotelops/internal/shared/query"
)

type mockListRoomsUC struct {
	result []*roomDomain.Room
	err    error
	page   query.PageFilter
}

func (m *mockListRoomsUC) Execute(ctx context.Context, page query.PageFilter) ([]*roomDomain.Room, error) {
	m.page = page
	return m.result, m.err
}

type mockGetRoomUC struct {
	result *roomDomain.Room
	err    error
	query  roomUsecases.GetRoomQuery
}

func (m *mockGetRoomUC) Execute(ctx context.Context, q roomUsecases.GetRoomQuery) (*roomDomain.Room, error) {
	m.query = q
	return m.result, m.err
}
