package ticket

import (
	"context"

	"hotelops/internal/shared/query"
)

// Repository reads and writes tickets. Every ticket it returns has its room
// number and user names resolved; a missing referenced row leaves the field nil.
type Repository interface {
	List(ctx context.Context, page query.PageFilter) ([]*Ticket, error)
	Find(ctx context.Context, q query.Query) ([]*Ticket, error)
	GetByID(ctx context.Context, id uint) (*Ticket, error)
	ListByIDs(ctx context.Context, ids []uint) ([]*Ticket, error)
	// ListForUser returns tickets assigned to or created by the user, newest first.
	ListForUser(ctx context.Context, userID uint) ([]*Ticket, error)
	Create(ctx context.Context, t *Ticket) (*Ticket, error)
	Update(ctx context.Context, id uint, patch map[string]any) (*Ticket, error)
	UpdateMany(ctx context.Context, ids []uint, patch map[string]any) ([]uint, error)
	Delete(ctx context.Context, id uint) bool
	Count(ctx context.Context, preds ...query.Predicate) (int64, error)
	ExistsForRoom(ctx context.Context, roomID uint) (bool, error)
	// ExistsForUser reports whether the user is assignee or creator of any ticket.
	ExistsForUser(ctx context.Context, userID uint) (bool, error)
}

type CommentRepository interface {
	ListByTicket(ctx context.Context, ticketID uint) ([]*Comment, error)
	Create(ctx context.Context, c *Comment) (*Comment, error)
}
