package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"hotelops/internal/domain/room"
	vo "hotelops/internal/domain/shared/valueobjects"
	"hotelops/internal/domain/ticket"
	"hotelops/internal/domain/user"
	"hotelops/internal/infrastructure/database"
	"hotelops/internal/infrastructure/migration"
	"hotelops/internal/infrastructure/persistence/models"
	"hotelops/internal/infrastructure/store"
	"hotelops/internal/shared/config"
	"hotelops/internal/shared/errors"
	"hotelops/internal/shared/logger"
	"hotelops/internal/shared/query"
)

type fixture struct {
	rooms    *RoomRepository
	users    *UserRepository
	tickets  *TicketRepository
	comments *CommentRepository
}

func setupRepositories(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	m, err := migration.New(db, "sqlite", logger.Nop())
	require.NoError(t, err)
	require.NoError(t, m.Up(ctx))

	s, err := store.NewGorm(db, models.All(), logger.Nop())
	require.NoError(t, err)

	return &fixture{
		rooms:    NewRoomRepository(s),
		users:    NewUserRepository(s),
		tickets:  NewTicketRepository(s),
		comments: NewCommentRepository(s),
	}
}

func (f *fixture) room(t *testing.T, number string, floor int) *room.Room {
	t.Helper()
	r, err := f.rooms.Create(context.Background(), &room.Room{
		RoomNumber:       number,
		Floor:            floor,
		RoomType:         room.DefaultRoomType,
		Capacity:         room.DefaultCapacity,
		RoomStatus:       room.StatusAvailable,
		CleaningStatus:   room.DefaultCleaningStatus,
		CleaningPriority: vo.PriorityMedium,
	})
	require.NoError(t, err)
	require.NotNil(t, r)
	return r
}

func (f *fixture) user(t *testing.T, name, email string) *user.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), &user.User{
		FullName:  name,
		Email:     email,
		Role:      user.RoleHousekeeper,
		StartTime: datatypes.NewTime(8, 0, 0, 0),
		EndTime:   datatypes.NewTime(16, 0, 0, 0),
		Credit:    user.DefaultCredit,
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	return u
}

func (f *fixture) ticket(t *testing.T, roomID, creator uint, assignee *uint, desc string) *ticket.Ticket {
	t.Helper()
	tk, err := f.tickets.Create(context.Background(), &ticket.Ticket{
		RoomID:      roomID,
		Description: desc,
		Status:      ticket.StatusOpen,
		Priority:    vo.PriorityMedium,
		Credit:      ticket.DefaultCredit,
		AssignedTo:  assignee,
		CreatedBy:   creator,
	})
	require.NoError(t, err)
	require.NotNil(t, tk)
	return tk
}

func TestRoomRepository_CRUD(t *testing.T) {
	f := setupRepositories(t)
	ctx := context.Background()

	created := f.room(t, "101", 1)
	assert.NotZero(t, created.ID)
	assert.Equal(t, room.StatusAvailable, created.RoomStatus)
	assert.False(t, created.CreatedAt.IsZero())

	byNumber, err := f.rooms.GetByRoomNumber(ctx, "101")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byNumber.ID)

	missing, err := f.rooms.GetByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = f.rooms.Create(ctx, &room.Room{RoomNumber: "101", Floor: 2, RoomStatus: room.StatusAvailable})
	assert.True(t, errors.IsConflictError(err))

	notes := "Balcony door sticks"
	updated, err := f.rooms.Update(ctx, created.ID, map[string]any{
		"room_status": room.StatusNeedsCleaning,
		"notes":       notes,
	})
	require.NoError(t, err)
	assert.Equal(t, room.StatusNeedsCleaning, updated.RoomStatus)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, notes, *updated.Notes)

	gone, err := f.rooms.Update(ctx, 9999, map[string]any{"floor": 3})
	require.NoError(t, err)
	assert.Nil(t, gone)

	assert.True(t, f.rooms.Delete(ctx, created.ID))
	assert.False(t, f.rooms.Delete(ctx, created.ID))
}

func TestRoomRepository_ListAndUpdateMany(t *testing.T) {
	f := setupRepositories(t)
	ctx := context.Background()

	r2 := f.room(t, "202", 2)
	r1 := f.room(t, "101", 1)
	r3 := f.room(t, "303", 3)

	list, err := f.rooms.List(ctx, query.PageFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "101", list[0].RoomNumber)
	assert.Equal(t, "202", list[1].RoomNumber)

	byNumbers, err := f.rooms.ListByRoomNumbers(ctx, []string{"303", "999", "101"})
	require.NoError(t, err)
	assert.Len(t, byNumbers, 2)

	ids, err := f.rooms.UpdateMany(ctx, []uint{r1.ID, r3.ID, 4242}, map[string]any{"cleaning_priority": vo.PriorityHigh})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{r1.ID, r3.ID}, ids)

	count, err := f.rooms.Count(ctx, query.Eq("cleaning_priority", vo.PriorityHigh))
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	untouched, err := f.rooms.GetByID(ctx, r2.ID)
	require.NoError(t, err)
	assert.Equal(t, vo.PriorityMedium, untouched.CleaningPriority)
}

func TestUserRepository_EmailLookupAndShiftTimes(t *testing.T) {
	f := setupRepositories(t)
	ctx := context.Background()

	u := f.user(t, "Grace Hopper", "grace@example.com")
	assert.Equal(t, "08:00:00", u.StartTime.String())
	assert.Equal(t, user.DefaultCredit, u.Credit)

	found, err := f.users.GetByEmail(ctx, "  GRACE@example.com ")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, u.ID, found.ID)

	updated, err := f.users.Update(ctx, u.ID, map[string]any{"end_time": "18:30:00"})
	require.NoError(t, err)
	assert.Equal(t, "18:30:00", updated.EndTime.String())

	_, err = f.users.Create(ctx, &user.User{FullName: "Dup", Email: "grace@example.com", Role: user.RoleAdmin})
	assert.True(t, errors.IsConflictError(err))
}

func TestTicketRepository_Denormalization(t *testing.T) {
	f := setupRepositories(t)
	ctx := context.Background()

	r := f.room(t, "101", 1)
	creator := f.user(t, "Ann Manager", "ann@example.com")
	worker := f.user(t, "Bob Cleaner", "bob@example.com")

	tk := f.ticket(t, r.ID, creator.ID, &worker.ID, "Replace towels")
	require.NotNil(t, tk.RoomNumber)
	assert.Equal(t, "101", *tk.RoomNumber)
	require.NotNil(t, tk.CreatedByName)
	assert.Equal(t, "Ann Manager", *tk.CreatedByName)
	require.NotNil(t, tk.AssignedToName)
	assert.Equal(t, "Bob Cleaner", *tk.AssignedToName)

	unassigned, err := f.tickets.Update(ctx, tk.ID, map[string]any{"assigned_to": nil})
	require.NoError(t, err)
	assert.Nil(t, unassigned.AssignedTo)
	assert.Nil(t, unassigned.AssignedToName)
	assert.Equal(t, "101", *unassigned.RoomNumber)
}

func TestTicketRepository_ReferencesAndConstraints(t *testing.T) {
	f := setupRepositories(t)
	ctx := context.Background()

	r := f.room(t, "101", 1)
	empty := f.room(t, "102", 1)
	creator := f.user(t, "Ann Manager", "ann@example.com")
	worker := f.user(t, "Bob Cleaner", "bob@example.com")
	idle := f.user(t, "Cid Idle", "cid@example.com")

	first := f.ticket(t, r.ID, creator.ID, nil, "Fix lamp")
	time.Sleep(5 * time.Millisecond)
	second := f.ticket(t, r.ID, creator.ID, &worker.ID, "Fix sink")

	exists, err := f.tickets.ExistsForRoom(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = f.tickets.ExistsForRoom(ctx, empty.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	for _, tc := range []struct {
		user uint
		want bool
	}{{creator.ID, true}, {worker.ID, true}, {idle.ID, false}} {
		got, err := f.tickets.ExistsForUser(ctx, tc.user)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	mine, err := f.tickets.ListForUser(ctx, creator.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)

	assert.False(t, f.rooms.Delete(ctx, r.ID), "room with tickets must not be deleted")
	still, err := f.rooms.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.NotNil(t, still)

	_, err = f.tickets.Create(ctx, &ticket.Ticket{
		RoomID: 4242, Description: "x", Status: ticket.StatusOpen,
		Priority: vo.PriorityLow, CreatedBy: creator.ID,
	})
	assert.True(t, errors.IsConstraintError(err))

	open, err := f.tickets.Find(ctx, query.New(query.Where(query.In("status", ticket.ActiveStatuses()))))
	require.NoError(t, err)
	assert.Len(t, open, 2)
}

func TestCommentRepository(t *testing.T) {
	f := setupRepositories(t)
	ctx := context.Background()

	r := f.room(t, "101", 1)
	author := f.user(t, "Ann Manager", "ann@example.com")
	tk := f.ticket(t, r.ID, author.ID, nil, "Noise complaint")

	c, err := ticket.NewComment(tk.ID, author.ID, "Spoke to **guest**")
	require.NoError(t, err)

	created, err := f.comments.Create(ctx, c)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	require.NotNil(t, created.UserFullName)
	assert.Equal(t, "Ann Manager", *created.UserFullName)

	list, err := f.comments.ListByTicket(ctx, tk.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Spoke to **guest**", list[0].Content)

	none, err := f.comments.ListByTicket(ctx, 9999)
	require.NoError(t, err)
	assert.Empty(t, none)
}
