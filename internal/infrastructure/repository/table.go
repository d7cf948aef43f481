// Package repository implements the domain repositories on top of the store
// primitives. Store failures are translated into application errors here;
// absent rows become nil results.
package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"hotelops/internal/infrastructure/store"
	"hotelops/internal/shared/errors"
	"hotelops/internal/shared/query"
)

// server-managed columns are never sent on insert.
var generatedColumns = []string{"id", "created_at", "updated_at"}

// table wraps one store collection and decodes its rows into T.
type table[T any] struct {
	store  store.Store
	name   string
	entity string
}

func newTable[T any](s store.Store, name, entity string) *table[T] {
	return &table[T]{store: s, name: name, entity: entity}
}

func (t *table[T]) find(ctx context.Context, q query.Query) ([]*T, error) {
	rows, err := t.store.Select(ctx, t.name, q)
	if err != nil {
		return nil, t.translate("list", err)
	}
	return t.decode(rows)
}

// first returns the first match or nil when nothing matches.
func (t *table[T]) first(ctx context.Context, preds ...query.Predicate) (*T, error) {
	items, err := t.find(ctx, query.New(query.Where(preds...), query.WithLimit(1)))
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return items[0], nil
}

func (t *table[T]) byIDs(ctx context.Context, ids []uint, order query.Order) ([]*T, error) {
	if len(ids) == 0 {
		return []*T{}, nil
	}
	return t.find(ctx, query.New(query.Where(query.In("id", ids)), query.OrderBy(order)))
}

// insert writes item without its generated columns and returns the new id.
func (t *table[T]) insert(ctx context.Context, item *T, omit ...string) (uint, error) {
	row, err := store.Encode(item)
	if err != nil {
		return 0, errors.NewInternalError(fmt.Sprintf("failed to encode %s", t.entity), err.Error())
	}
	for _, col := range generatedColumns {
		delete(row, col)
	}
	for _, col := range omit {
		delete(row, col)
	}

	created, err := t.store.Insert(ctx, t.name, row)
	if err != nil {
		return 0, t.translate("create", err)
	}
	id, err := rowID(created)
	if err != nil {
		return 0, errors.NewUpstreamError(fmt.Sprintf("failed to read new %s id", t.entity), err.Error())
	}
	return id, nil
}

// update patches the rows matching preds and returns them as updated.
func (t *table[T]) update(ctx context.Context, preds []query.Predicate, patch map[string]any) ([]*T, error) {
	rows, err := t.store.Update(ctx, t.name, preds, store.Row(patch))
	if err != nil {
		return nil, t.translate("update", err)
	}
	return t.decode(rows)
}

// updateIDs patches every id in one call and returns the ids the store
// reported as updated.
func (t *table[T]) updateIDs(ctx context.Context, ids []uint, patch map[string]any) ([]uint, error) {
	if len(ids) == 0 {
		return []uint{}, nil
	}
	rows, err := t.store.Update(ctx, t.name, []query.Predicate{query.In("id", ids)}, store.Row(patch))
	if err != nil {
		return nil, t.translate("update", err)
	}
	updated := make([]uint, 0, len(rows))
	for _, row := range rows {
		id, err := rowID(row)
		if err != nil {
			continue
		}
		updated = append(updated, id)
	}
	return updated, nil
}

// delete reports whether a row was removed. Any failure reads as false.
func (t *table[T]) delete(ctx context.Context, id uint) bool {
	rows, err := t.store.Delete(ctx, t.name, []query.Predicate{query.Eq("id", id)})
	return err == nil && len(rows) > 0
}

func (t *table[T]) count(ctx context.Context, preds ...query.Predicate) (int64, error) {
	rows, err := t.store.Select(ctx, t.name, query.New(query.Columns("id"), query.Where(preds...)))
	if err != nil {
		return 0, t.translate("count", err)
	}
	return int64(len(rows)), nil
}

func (t *table[T]) exists(ctx context.Context, preds ...query.Predicate) (bool, error) {
	rows, err := t.store.Select(ctx, t.name, query.New(query.Columns("id"), query.Where(preds...), query.WithLimit(1)))
	if err != nil {
		return false, t.translate("lookup", err)
	}
	return len(rows) > 0, nil
}

func (t *table[T]) decode(rows []store.Row) ([]*T, error) {
	out := make([]*T, 0, len(rows))
	for _, row := range rows {
		item := new(T)
		if err := store.Decode(row, item); err != nil {
			return nil, errors.NewUpstreamError(fmt.Sprintf("unexpected %s row", t.entity), err.Error())
		}
		out = append(out, item)
	}
	return out, nil
}

// translate maps store failures onto the application error taxonomy.
func (t *table[T]) translate(op string, err error) error {
	switch {
	case store.IsUniqueViolation(err):
		return errors.NewConflictError(fmt.Sprintf("%s already exists", t.entity), err.Error())
	case store.IsForeignKeyViolation(err):
		return errors.NewConstraintError(fmt.Sprintf("%s %s violates a reference constraint", t.entity, op), err.Error())
	case store.IsTransport(err):
		return errors.NewUpstreamError(fmt.Sprintf("failed to %s %s", op, t.entity), err.Error())
	case !isStoreError(err):
		return errors.NewInternalError(fmt.Sprintf("failed to %s %s", op, t.entity), err.Error())
	default:
		return errors.NewBadRequestError(fmt.Sprintf("failed to %s %s", op, t.entity), err.Error())
	}
}

func isStoreError(err error) bool {
	var se *store.Error
	return stderrors.As(err, &se)
}

func rowID(row store.Row) (uint, error) {
	var ref struct {
		ID uint `json:"id"`
	}
	if err := store.Decode(row, &ref); err != nil {
		return 0, err
	}
	if ref.ID == 0 {
		return 0, fmt.Errorf("row has no id")
	}
	return ref.ID, nil
}
