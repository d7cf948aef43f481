package usecases

import (
	"context"

	"hotelops/internal/domain/ticket"
	"hotelops/internal/domain/user"
)

type mockTicketRepository struct {
	ticket.Repository
	GetByIDFunc func(ctx context.Context, id uint) (*ticket.Ticket, error)
}

func (m *mockTicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

type mockCommentRepository struct {
	ListByTicketFunc func(ctx context.Context, ticketID uint) ([]*ticket.Comment, error)
	CreateFunc       func(ctx context.Context, c *ticket.Comment) (*ticket.Comment, error)
}

func (m *mockCommentRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Comment, error) {
	if m.ListByTicketFunc != nil {
		return m.ListByTicketFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockCommentRepository) Create(ctx context.Context, c *ticket.Comment) (*ticket.Comment, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	out := *c
	out.ID = 1
	return &out, nil
}

type mockUserRepository struct {
	user.Repository
	GetByIDFunc func(ctx context.Context, id uint) (*user.User, error)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}
