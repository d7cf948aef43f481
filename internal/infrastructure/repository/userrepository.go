package repository

import (
	"context"
	"strings"

	"hotelops/internal/domain/user"
	"hotelops/internal/infrastructure/persistence/models"
	"hotelops/internal/infrastructure/store"
	"hotelops/internal/shared/query"
)

var userDefaultOrder = query.Asc("full_name")

type UserRepository struct {
	users *table[user.User]
}

func NewUserRepository(s store.Store) *UserRepository {
	return &UserRepository{users: newTable[user.User](s, models.TableUsers, "user")}
}

func (r *UserRepository) List(ctx context.Context, page query.PageFilter) ([]*user.User, error) {
	return r.users.find(ctx, query.New(query.OrderBy(userDefaultOrder), query.WithPage(page)))
}

func (r *UserRepository) Find(ctx context.Context, q query.Query) ([]*user.User, error) {
	if len(q.Order) == 0 {
		q.Order = []query.Order{userDefaultOrder}
	}
	return r.users.find(ctx, q)
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	return r.users.first(ctx, query.Eq("id", id))
}

// GetByEmail matches the address case-insensitively after trimming.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.users.first(ctx, query.Eq("email", strings.ToLower(strings.TrimSpace(email))))
}

func (r *UserRepository) ListByIDs(ctx context.Context, ids []uint) ([]*user.User, error) {
	return r.users.byIDs(ctx, ids, userDefaultOrder)
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) (*user.User, error) {
	id, err := r.users.insert(ctx, u)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepository) Update(ctx context.Context, id uint, patch map[string]any) (*user.User, error) {
	if len(patch) == 0 {
		return r.GetByID(ctx, id)
	}
	users, err := r.users.update(ctx, []query.Predicate{query.Eq("id", id)}, patch)
	if err != nil || len(users) == 0 {
		return nil, err
	}
	return users[0], nil
}

func (r *UserRepository) UpdateMany(ctx context.Context, ids []uint, patch map[string]any) ([]uint, error) {
	return r.users.updateIDs(ctx, ids, patch)
}

func (r *UserRepository) Delete(ctx context.Context, id uint) bool {
	return r.users.delete(ctx, id)
}

func (r *UserRepository) Count(ctx context.Context, preds ...query.Predicate) (int64, error) {
	return r.users.count(ctx, preds...)
}
