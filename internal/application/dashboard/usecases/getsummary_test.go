package usecases

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelops/internal/domain/room"
	"hotelops/internal/domain/ticket"
	"hotelops/internal/domain/user"
	"hotelops/internal/shared/errors"
	"hotelops/internal/shared/logger"
	"hotelops/internal/shared/query"
)

type mockRoomRepository struct {
	room.Repository
	CountFunc func(ctx context.Context, preds ...query.Predicate) (int64, error)
}

func (m *mockRoomRepository) Count(ctx context.Context, preds ...query.Predicate) (int64, error) {
	return m.CountFunc(ctx, preds...)
}

type mockTicketRepository struct {
	ticket.Repository
	CountFunc func(ctx context.Context, preds ...query.Predicate) (int64, error)
}

func (m *mockTicketRepository) Count(ctx context.Context, preds ...query.Predicate) (int64, error) {
	return m.CountFunc(ctx, preds...)
}

type mockUserRepository struct {
	user.Repository
	CountFunc func(ctx context.Context, preds ...query.Predicate) (int64, error)
}

func (m *mockUserRepository) Count(ctx context.Context, preds ...query.Predicate) (int64, error) {
	return m.CountFunc(ctx, preds...)
}

func TestGetSummaryUseCase_Execute(t *testing.T) {
	rooms := &mockRoomRepository{
		CountFunc: func(ctx context.Context, preds ...query.Predicate) (int64, error) {
			if len(preds) == 0 {
				return 40, nil
			}
			switch preds[0].Column {
			case "room_status":
				assert.Equal(t, room.StatusNeedsCleaning, preds[0].Value)
				return 6, nil
			case "cleaning_priority":
				return 3, nil
			}
			return 0, fmt.Errorf("unexpected predicate %v", preds[0])
		},
	}
	tickets := &mockTicketRepository{
		CountFunc: func(ctx context.Context, preds ...query.Predicate) (int64, error) {
			if assert.Len(t, preds, 1) {
				assert.Equal(t, query.OpIn, preds[0].Op)
			}
			return 11, nil
		},
	}
	users := &mockUserRepository{
		CountFunc: func(ctx context.Context, preds ...query.Predicate) (int64, error) {
			return 9, nil
		},
	}

	got, err := NewGetSummaryUseCase(rooms, tickets, users, logger.Nop()).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &SummaryResponse{
		TotalUsers:        9,
		ActiveTickets:     11,
		TotalRooms:        40,
		RoomsToClean:      6,
		HighPriorityRooms: 3,
	}, got)
}

func TestGetSummaryUseCase_CountFailure(t *testing.T) {
	ok := func(ctx context.Context, preds ...query.Predicate) (int64, error) { return 1, nil }
	rooms := &mockRoomRepository{CountFunc: ok}
	tickets := &mockTicketRepository{CountFunc: func(ctx context.Context, preds ...query.Predicate) (int64, error) {
		return 0, fmt.Errorf("store unavailable")
	}}
	users := &mockUserRepository{CountFunc: ok}

	_, err := NewGetSummaryUseCase(rooms, tickets, users, logger.Nop()).Execute(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeInternal, errors.GetAppError(err).Type)
}
