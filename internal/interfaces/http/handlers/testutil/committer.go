package testutil

import (
	"context"
	"encoding/json"

	"hotelops/internal/application/mutation"
	vo "hotelops/internal/domain/shared/valueobjects"
)

// MockCommitter stands in for the mutation service behind the write routes.
// A nil func panics, so a test fails loudly if a request reaches a confirm
// step it should not.
type MockCommitter struct {
	ConfirmCreateFunc      func(ctx context.Context, kind vo.EntityKind, raw json.RawMessage) (any, error)
	ConfirmUpdateFunc      func(ctx context.Context, kind vo.EntityKind, id uint, raw json.RawMessage) (any, error)
	ConfirmDeleteFunc      func(ctx context.Context, kind vo.EntityKind, id uint) error
	ConfirmBatchUpdateFunc func(ctx context.Context, kind vo.EntityKind, ids []uint, raw json.RawMessage) (*mutation.BatchResult, error)
}

func (m *MockCommitter) ConfirmCreate(ctx context.Context, kind vo.EntityKind, raw json.RawMessage) (any, error) {
	return m.ConfirmCreateFunc(ctx, kind, raw)
}

func (m *MockCommitter) ConfirmUpdate(ctx context.Context, kind vo.EntityKind, id uint, raw json.RawMessage) (any, error) {
	return m.ConfirmUpdateFunc(ctx, kind, id, raw)
}

func (m *MockCommitter) ConfirmDelete(ctx context.Context, kind vo.EntityKind, id uint) error {
	return m.ConfirmDeleteFunc(ctx, kind, id)
}

func (m *MockCommitter) ConfirmBatchUpdate(ctx context.Context, kind vo.EntityKind, ids []uint, raw json.RawMessage) (*mutation.BatchResult, error) {
	return m.ConfirmBatchUpdateFunc(ctx, kind, ids, raw)
}
