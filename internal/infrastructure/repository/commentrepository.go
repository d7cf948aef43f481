package repository

import (
	"context"

	"hotelops/internal/domain/ticket"
	"hotelops/internal/infrastructure/persistence/models"
	"hotelops/internal/infrastructure/store"
	"hotelops/internal/shared/query"
	"hotelops/internal/shared/utils/setutil"
)

type CommentRepository struct {
	comments *table[ticket.Comment]
	users    *table[userRef]
}

func NewCommentRepository(s store.Store) *CommentRepository {
	return &CommentRepository{
		comments: newTable[ticket.Comment](s, models.TableComments, "comment"),
		users:    newTable[userRef](s, models.TableUsers, "user"),
	}
}

// ListByTicket returns the ticket's comments oldest first with author names.
func (r *CommentRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Comment, error) {
	items, err := r.comments.find(ctx, query.New(
		query.Where(query.Eq("ticket_id", ticketID)),
		query.OrderBy(query.Asc("created_at"), query.Asc("id")),
	))
	if err != nil {
		return nil, err
	}
	if err := r.withAuthors(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CommentRepository) Create(ctx context.Context, c *ticket.Comment) (*ticket.Comment, error) {
	id, err := r.comments.insert(ctx, c, "user_full_name", "content_html")
	if err != nil {
		return nil, err
	}
	created, err := r.comments.first(ctx, query.Eq("id", id))
	if err != nil || created == nil {
		return nil, err
	}
	if err := r.withAuthors(ctx, []*ticket.Comment{created}); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *CommentRepository) withAuthors(ctx context.Context, items []*ticket.Comment) error {
	if len(items) == 0 {
		return nil
	}
	ids := setutil.NewIDSet()
	for _, c := range items {
		ids.Add(c.UserID)
	}
	users, err := r.users.find(ctx, query.New(
		query.Columns("id", "full_name"),
		query.Where(query.In("id", ids.Sorted())),
	))
	if err != nil {
		return err
	}
	names := make(map[uint]string, len(users))
	for _, u := range users {
		names[u.ID] = u.FullName
	}
	for _, c := range items {
		c.UserFullName = lookup(names, c.UserID)
	}
	return nil
}
