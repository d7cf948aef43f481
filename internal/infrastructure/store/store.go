// Package store provides the four row primitives (select, insert, update,
// delete) over a named table. Rows are loosely typed maps in the JSON shape of
// the backing service; repositories decode them into domain entities.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"hotelops/internal/shared/query"
)

// Row is one record keyed by column name.
type Row map[string]any

// Store is implemented by the PostgREST client and the gorm adapter.
type Store interface {
	Select(ctx context.Context, table string, q query.Query) ([]Row, error)
	Insert(ctx context.Context, table string, row Row) (Row, error)
	// Update applies patch to every row matching where and returns the rows
	// as they are after the update.
	Update(ctx context.Context, table string, where []query.Predicate, patch Row) ([]Row, error)
	// Delete removes every row matching where and returns the removed rows.
	Delete(ctx context.Context, table string, where []query.Predicate) ([]Row, error)
}

// Postgres SQLSTATE codes the repositories branch on.
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
	CodeNotNullViolation    = "23502"
)

// Error is a failed store call. Status is an HTTP status for the PostgREST
// backend and a synthesized one for the gorm backend; Status 0 means the
// request never got a response.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Message == "":
		return fmt.Sprintf("store: %v", e.Err)
	case e.Code != "":
		return fmt.Sprintf("store: %s (status %d, code %s)", e.Message, e.Status, e.Code)
	default:
		return fmt.Sprintf("store: %s (status %d)", e.Message, e.Status)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func asError(err error) (*Error, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

func IsUniqueViolation(err error) bool {
	se, ok := asError(err)
	return ok && se.Code == CodeUniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	se, ok := asError(err)
	return ok && se.Code == CodeForeignKeyViolation
}

// IsTransport reports whether the call failed before a response was received
// or the backend answered with a server error.
func IsTransport(err error) bool {
	se, ok := asError(err)
	if !ok {
		return false
	}
	return se.Status == 0 || se.Status >= http.StatusInternalServerError
}

// Decode converts a row into dst through its JSON tags.
func Decode(row Row, dst any) error {
	raw, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("encode row: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode row: %w", err)
	}
	return nil
}

// DecodeAll converts rows into a slice of T.
func DecodeAll[T any](rows []Row) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		var v T
		if err := Decode(row, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Encode converts src into a row through its JSON tags.
func Encode(src any) (Row, error) {
	raw, err := json.Marshal(src)
	if err != nil {
		return nil, fmt.Errorf("encode row: %w", err)
	}
	var row Row
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, fmt.Errorf("decode row: %w", err)
	}
	return row, nil
}
