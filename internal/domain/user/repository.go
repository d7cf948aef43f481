package user

import (
	"context"

	"hotelops/internal/shared/query"
)

// Repository reads and writes users. Lookups return nil, nil when absent.
type Repository interface {
	List(ctx context.Context, page query.PageFilter) ([]*User, error)
	Find(ctx context.Context, q query.Query) ([]*User, error)
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ListByIDs(ctx context.Context, ids []uint) ([]*User, error)
	Create(ctx context.Context, u *User) (*User, error)
	Update(ctx context.Context, id uint, patch map[string]any) (*User, error)
	UpdateMany(ctx context.Context, ids []uint, patch map[string]any) ([]uint, error)
	Delete(ctx context.Context, id uint) bool
	Count(ctx context.Context, preds ...query.Predicate) (int64, error)
}
