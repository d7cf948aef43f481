package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelops/internal/infrastructure/database"
	"hotelops/internal/infrastructure/migration"
	"hotelops/internal/infrastructure/persistence/models"
	"hotelops/internal/shared/config"
	"hotelops/internal/shared/logger"
	"hotelops/internal/shared/query"
)

func setupGormStore(t *testing.T) *Gorm {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	m, err := migration.New(db, "sqlite", logger.Nop())
	require.NoError(t, err)
	require.NoError(t, m.Up(ctx))

	s, err := NewGorm(db, models.All(), logger.Nop())
	require.NoError(t, err)
	return s
}

func roomRow(number string, floor int) Row {
	return Row{
		"room_number":       number,
		"floor":             floor,
		"room_type":         "Standard",
		"capacity":          2,
		"room_status":       "Available",
		"cleaning_status":   "Clean",
		"cleaning_priority": "Medium",
		"credit":            0,
	}
}

func TestGorm_InsertAndSelect(t *testing.T) {
	s := setupGormStore(t)
	ctx := context.Background()

	inserted, err := s.Insert(ctx, models.TableRooms, roomRow("101", 1))
	require.NoError(t, err)
	assert.NotZero(t, inserted["id"])
	assert.Equal(t, "101", inserted["room_number"])
	assert.NotEmpty(t, inserted["created_at"])
	assert.Nil(t, inserted["notes"])

	_, err = s.Insert(ctx, models.TableRooms, roomRow("202", 2))
	require.NoError(t, err)
	_, err = s.Insert(ctx, models.TableRooms, roomRow("203", 2))
	require.NoError(t, err)

	tests := []struct {
		name  string
		q     query.Query
		want  []string
		limit int
	}{
		{
			name: "equality",
			q:    query.New(query.Where(query.Eq("floor", 2)), query.OrderBy(query.Asc("room_number"))),
			want: []string{"202", "203"},
		},
		{
			name: "in list with descending order",
			q:    query.New(query.Where(query.In("room_number", []string{"101", "203", "999"})), query.OrderBy(query.Desc("room_number"))),
			want: []string{"203", "101"},
		},
		{
			name: "case-insensitive substring",
			q:    query.New(query.Where(query.ILike("room_status", "AVAIL")), query.OrderBy(query.Asc("id")), query.WithLimit(1)),
			want: []string{"101"},
		},
		{
			name: "offset",
			q:    query.New(query.OrderBy(query.Asc("room_number")), query.WithPage(query.PageFilter{Skip: 2, Limit: 5})),
			want: []string{"203"},
		},
		{
			name: "empty in list matches nothing",
			q:    query.New(query.Where(query.In("id", []uint{}))),
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := s.Select(ctx, models.TableRooms, tt.q)
			require.NoError(t, err)
			got := make([]string, 0, len(rows))
			for _, r := range rows {
				got = append(got, r["room_number"].(string))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGorm_SelectColumnsProjects(t *testing.T) {
	s := setupGormStore(t)
	ctx := context.Background()
	_, err := s.Insert(ctx, models.TableRooms, roomRow("101", 1))
	require.NoError(t, err)

	rows, err := s.Select(ctx, models.TableRooms, query.New(query.Columns("id", "room_number")))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], 2)
}

func TestGorm_UniqueViolation(t *testing.T) {
	s := setupGormStore(t)
	ctx := context.Background()

	_, err := s.Insert(ctx, models.TableRooms, roomRow("101", 1))
	require.NoError(t, err)
	_, err = s.Insert(ctx, models.TableRooms, roomRow("101", 3))
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsTransport(err))
}

func TestGorm_UpdateReturnsChangedRows(t *testing.T) {
	s := setupGormStore(t)
	ctx := context.Background()

	a, err := s.Insert(ctx, models.TableRooms, roomRow("101", 1))
	require.NoError(t, err)
	_, err = s.Insert(ctx, models.TableRooms, roomRow("102", 1))
	require.NoError(t, err)

	cleaned := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	rows, err := s.Update(ctx, models.TableRooms,
		[]query.Predicate{query.In("id", []any{a["id"], 9999})},
		Row{"room_status": "Needs Cleaning", "last_cleaned": cleaned.Format(time.RFC3339), "notes": nil},
	)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Needs Cleaning", rows[0]["room_status"])
	assert.Equal(t, a["id"], rows[0]["id"])

	var room models.RoomModel
	require.NoError(t, Decode(rows[0], &room))
	require.NotNil(t, room.LastCleaned)
	assert.True(t, cleaned.Equal(*room.LastCleaned))

	none, err := s.Update(ctx, models.TableRooms, []query.Predicate{query.Eq("id", 9999)}, Row{"floor": 4})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGorm_UpdateRejectsUnknownColumn(t *testing.T) {
	s := setupGormStore(t)
	_, err := s.Update(context.Background(), models.TableRooms, []query.Predicate{query.Eq("id", 1)}, Row{"colour": "red"})
	require.Error(t, err)
	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, codeUndefinedColumn, se.Code)
}

func TestGorm_DeleteBlockedByForeignKey(t *testing.T) {
	s := setupGormStore(t)
	ctx := context.Background()

	room, err := s.Insert(ctx, models.TableRooms, roomRow("101", 1))
	require.NoError(t, err)
	user, err := s.Insert(ctx, models.TableUsers, Row{
		"full_name": "Ada Lovelace", "email": "ada@example.com", "role": "Manager",
		"start_time": "08:00:00", "end_time": "16:00:00", "credit": 100,
	})
	require.NoError(t, err)
	assert.Equal(t, "08:00:00", user["start_time"])

	_, err = s.Insert(ctx, models.TableTickets, Row{
		"room_id": room["id"], "description": "Leaky tap", "status": "Open",
		"priority": "Medium", "credit": 1, "created_by": user["id"],
	})
	require.NoError(t, err)

	_, err = s.Delete(ctx, models.TableRooms, []query.Predicate{query.Eq("id", room["id"])})
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err))

	_, err = s.Insert(ctx, models.TableTickets, Row{
		"room_id": 4242, "description": "Ghost", "status": "Open",
		"priority": "Medium", "credit": 1, "created_by": user["id"],
	})
	assert.True(t, IsForeignKeyViolation(err))
}

func TestGorm_DeleteReturnsRemovedRows(t *testing.T) {
	s := setupGormStore(t)
	ctx := context.Background()

	room, err := s.Insert(ctx, models.TableRooms, roomRow("101", 1))
	require.NoError(t, err)

	rows, err := s.Delete(ctx, models.TableRooms, []query.Predicate{query.Eq("id", room["id"])})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "101", rows[0]["room_number"])

	rows, err = s.Delete(ctx, models.TableRooms, []query.Predicate{query.Eq("id", room["id"])})
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = s.Delete(ctx, models.TableRooms, nil)
	assert.Error(t, err)
}

func TestGorm_UnknownTable(t *testing.T) {
	s := setupGormStore(t)
	_, err := s.Select(context.Background(), "guests", query.New())
	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, codeUndefinedTable, se.Code)
}
