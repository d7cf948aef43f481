package repository

import (
	"context"

	"hotelops/internal/domain/room"
	"hotelops/internal/infrastructure/persistence/models"
	"hotelops/internal/infrastructure/store"
	"hotelops/internal/shared/query"
)

var roomDefaultOrder = query.Asc("room_number")

type RoomRepository struct {
	rooms *table[room.Room]
}

func NewRoomRepository(s store.Store) *RoomRepository {
	return &RoomRepository{rooms: newTable[room.Room](s, models.TableRooms, "room")}
}

func (r *RoomRepository) List(ctx context.Context, page query.PageFilter) ([]*room.Room, error) {
	return r.rooms.find(ctx, query.New(query.OrderBy(roomDefaultOrder), query.WithPage(page)))
}

// Find applies the default room_number order when q has none.
func (r *RoomRepository) Find(ctx context.Context, q query.Query) ([]*room.Room, error) {
	if len(q.Order) == 0 {
		q.Order = []query.Order{roomDefaultOrder}
	}
	return r.rooms.find(ctx, q)
}

func (r *RoomRepository) GetByID(ctx context.Context, id uint) (*room.Room, error) {
	return r.rooms.first(ctx, query.Eq("id", id))
}

func (r *RoomRepository) GetByRoomNumber(ctx context.Context, roomNumber string) (*room.Room, error) {
	return r.rooms.first(ctx, query.Eq("room_number", room.NormalizeRoomNumber(roomNumber)))
}

func (r *RoomRepository) ListByIDs(ctx context.Context, ids []uint) ([]*room.Room, error) {
	return r.rooms.byIDs(ctx, ids, roomDefaultOrder)
}

func (r *RoomRepository) ListByRoomNumbers(ctx context.Context, roomNumbers []string) ([]*room.Room, error) {
	if len(roomNumbers) == 0 {
		return []*room.Room{}, nil
	}
	return r.rooms.find(ctx, query.New(
		query.Where(query.In("room_number", roomNumbers)),
		query.OrderBy(roomDefaultOrder),
	))
}

// Create inserts the room and re-reads it so server defaults are reflected.
func (r *RoomRepository) Create(ctx context.Context, rm *room.Room) (*room.Room, error) {
	id, err := r.rooms.insert(ctx, rm)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *RoomRepository) Update(ctx context.Context, id uint, patch map[string]any) (*room.Room, error) {
	if len(patch) == 0 {
		return r.GetByID(ctx, id)
	}
	rooms, err := r.rooms.update(ctx, []query.Predicate{query.Eq("id", id)}, patch)
	if err != nil || len(rooms) == 0 {
		return nil, err
	}
	return rooms[0], nil
}

func (r *RoomRepository) UpdateMany(ctx context.Context, ids []uint, patch map[string]any) ([]uint, error) {
	return r.rooms.updateIDs(ctx, ids, patch)
}

func (r *RoomRepository) Delete(ctx context.Context, id uint) bool {
	return r.rooms.delete(ctx, id)
}

func (r *RoomRepository) Count(ctx context.Context, preds ...query.Predicate) (int64, error) {
	return r.rooms.count(ctx, preds...)
}
