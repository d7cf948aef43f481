package mutation

import (
	"context"
	"sync"

	"hotelops/internal/domain/room"
	"hotelops/internal/domain/shared/events"
	"hotelops/internal/domain/user"
)

// mockRoomRepository overrides selected calls and delegates the rest to the
// embedded repository.
type mockRoomRepository struct {
	room.Repository
	DeleteFunc  func(ctx context.Context, id uint) bool
	GetByIDFunc func(ctx context.Context, id uint) (*room.Room, error)
}

func (m *mockRoomRepository) Delete(ctx context.Context, id uint) bool {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return m.Repository.Delete(ctx, id)
}

func (m *mockRoomRepository) GetByID(ctx context.Context, id uint) (*room.Room, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return m.Repository.GetByID(ctx, id)
}

type mockUserRepository struct {
	user.Repository
	UpdateManyFunc func(ctx context.Context, ids []uint, patch map[string]any) ([]uint, error)
}

func (m *mockUserRepository) UpdateMany(ctx context.Context, ids []uint, patch map[string]any) ([]uint, error) {
	if m.UpdateManyFunc != nil {
		return m.UpdateManyFunc(ctx, ids, patch)
	}
	return m.Repository.UpdateMany(ctx, ids, patch)
}

type mockPublisher struct {
	mu          sync.Mutex
	published   []events.DomainEvent
	PublishFunc func(event events.DomainEvent) error
}

func (m *mockPublisher) Publish(event events.DomainEvent) error {
	m.mu.Lock()
	m.published = append(m.published, event)
	m.mu.Unlock()
	if m.PublishFunc != nil {
		return m.PublishFunc(event)
	}
	return nil
}

func (m *mockPublisher) mutationEvents() []events.MutationEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]events.MutationEvent, 0, len(m.published))
	for _, e := range m.published {
		if me, ok := e.(events.MutationEvent); ok {
			out = append(out, me)
		}
	}
	return out
}
