package room

import (
	"context"

	"hotelops/internal/shared/query"
)

// Repository reads and writes rooms. Lookups return nil, nil when the room
// does not exist.
type Repository interface {
	List(ctx context.Context, page query.PageFilter) ([]*Room, error)
	Find(ctx context.Context, q query.Query) ([]*Room, error)
	GetByID(ctx context.Context, id uint) (*Room, error)
	GetByRoomNumber(ctx context.Context, roomNumber string) (*Room, error)
	ListByIDs(ctx context.Context, ids []uint) ([]*Room, error)
	ListByRoomNumbers(ctx context.Context, roomNumbers []string) ([]*Room, error)
	Create(ctx context.Context, r *Room) (*Room, error)
	Update(ctx context.Context, id uint, patch map[string]any) (*Room, error)
	// UpdateMany applies patch to every id and returns the ids actually updated.
	UpdateMany(ctx context.Context, ids []uint, patch map[string]any) ([]uint, error)
	// Delete reports false both when the room is absent and when the store
	// refused the delete; callers disambiguate by re-fetching.
	Delete(ctx context.Context, id uint) bool
	Count(ctx context.Context, preds ...query.Predicate) (int64, error)
}
