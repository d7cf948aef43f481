package repository

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"hotelops/internal/domain/ticket"
	"hotelops/internal/infrastructure/persistence/models"
	"hotelops/internal/infrastructure/store"
	"hotelops/internal/shared/query"
	"hotelops/internal/shared/utils/setutil"
)

var ticketDefaultOrder = []query.Order{query.Desc("created_at"), query.Desc("id")}

// denormalized ticket fields, never written to the tickets table
var ticketJoinedColumns = []string{"room_number", "assigned_to_name", "created_by_name"}

type roomRef struct {
	ID         uint   `json:"id"`
	RoomNumber string `json:"room_number"`
}

type userRef struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
}

type TicketRepository struct {
	tickets *table[ticket.Ticket]
	rooms   *table[roomRef]
	users   *table[userRef]
}

func NewTicketRepository(s store.Store) *TicketRepository {
	return &TicketRepository{
		tickets: newTable[ticket.Ticket](s, models.TableTickets, "ticket"),
		rooms:   newTable[roomRef](s, models.TableRooms, "room"),
		users:   newTable[userRef](s, models.TableUsers, "user"),
	}
}

func (r *TicketRepository) List(ctx context.Context, page query.PageFilter) ([]*ticket.Ticket, error) {
	return r.Find(ctx, query.New(query.WithPage(page)))
}

// Find applies newest-first order when q has none.
func (r *TicketRepository) Find(ctx context.Context, q query.Query) ([]*ticket.Ticket, error) {
	if len(q.Order) == 0 {
		q.Order = ticketDefaultOrder
	}
	items, err := r.tickets.find(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := r.enrich(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	t, err := r.tickets.first(ctx, query.Eq("id", id))
	if err != nil || t == nil {
		return nil, err
	}
	if err := r.enrich(ctx, []*ticket.Ticket{t}); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TicketRepository) ListByIDs(ctx context.Context, ids []uint) ([]*ticket.Ticket, error) {
	if len(ids) == 0 {
		return []*ticket.Ticket{}, nil
	}
	return r.Find(ctx, query.New(query.Where(query.In("id", ids)), query.OrderBy(query.Asc("id"))))
}

func (r *TicketRepository) ListForUser(ctx context.Context, userID uint) ([]*ticket.Ticket, error) {
	var assigned, created []*ticket.Ticket
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		assigned, err = r.tickets.find(gctx, query.New(query.Where(query.Eq("assigned_to", userID))))
		return err
	})
	g.Go(func() error {
		var err error
		created, err = r.tickets.find(gctx, query.New(query.Where(query.Eq("created_by", userID))))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := setutil.NewIDSet()
	items := make([]*ticket.Ticket, 0, len(assigned)+len(created))
	for _, t := range append(assigned, created...) {
		if seen.Has(t.ID) {
			continue
		}
		seen.Add(t.ID)
		items = append(items, t)
	}
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})

	if err := r.enrich(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) (*ticket.Ticket, error) {
	id, err := r.tickets.insert(ctx, t, ticketJoinedColumns...)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *TicketRepository) Update(ctx context.Context, id uint, patch map[string]any) (*ticket.Ticket, error) {
	if len(patch) == 0 {
		return r.GetByID(ctx, id)
	}
	items, err := r.tickets.update(ctx, []query.Predicate{query.Eq("id", id)}, patch)
	if err != nil || len(items) == 0 {
		return nil, err
	}
	if err := r.enrich(ctx, items[:1]); err != nil {
		return nil, err
	}
	return items[0], nil
}

func (r *TicketRepository) UpdateMany(ctx context.Context, ids []uint, patch map[string]any) ([]uint, error) {
	return r.tickets.updateIDs(ctx, ids, patch)
}

func (r *TicketRepository) Delete(ctx context.Context, id uint) bool {
	return r.tickets.delete(ctx, id)
}

func (r *TicketRepository) Count(ctx context.Context, preds ...query.Predicate) (int64, error) {
	return r.tickets.count(ctx, preds...)
}

func (r *TicketRepository) ExistsForRoom(ctx context.Context, roomID uint) (bool, error) {
	return r.tickets.exists(ctx, query.Eq("room_id", roomID))
}

func (r *TicketRepository) ExistsForUser(ctx context.Context, userID uint) (bool, error) {
	assigned, err := r.tickets.exists(ctx, query.Eq("assigned_to", userID))
	if err != nil || assigned {
		return assigned, err
	}
	return r.tickets.exists(ctx, query.Eq("created_by", userID))
}

// enrich resolves room numbers and user names with one lookup per table.
func (r *TicketRepository) enrich(ctx context.Context, items []*ticket.Ticket) error {
	if len(items) == 0 {
		return nil
	}

	roomIDs := setutil.NewIDSet()
	userIDs := setutil.NewIDSet()
	for _, t := range items {
		roomIDs.Add(t.RoomID)
		userIDs.Add(t.CreatedBy)
		userIDs.AddRef(t.AssignedTo)
	}

	var rooms []*roomRef
	var users []*userRef
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rooms, err = r.rooms.find(gctx, query.New(
			query.Columns("id", "room_number"),
			query.Where(query.In("id", roomIDs.Sorted())),
		))
		return err
	})
	g.Go(func() error {
		var err error
		users, err = r.users.find(gctx, query.New(
			query.Columns("id", "full_name"),
			query.Where(query.In("id", userIDs.Sorted())),
		))
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	roomNumbers := make(map[uint]string, len(rooms))
	for _, rm := range rooms {
		roomNumbers[rm.ID] = rm.RoomNumber
	}
	names := make(map[uint]string, len(users))
	for _, u := range users {
		names[u.ID] = u.FullName
	}

	for _, t := range items {
		t.RoomNumber = lookup(roomNumbers, t.RoomID)
		t.CreatedByName = lookup(names, t.CreatedBy)
		t.AssignedToName = nil
		if t.AssignedTo != nil {
			t.AssignedToName = lookup(names, *t.AssignedTo)
		}
	}
	return nil
}

func lookup(m map[uint]string, id uint) *string {
	v, ok := m[id]
	if !ok {
		return nil
	}
	return &v
}
