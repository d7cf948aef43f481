package usecases

import (
	"context"

	"hotelops/internal/domain/ticket"
	"hotelops/internal/domain/user"
	"hotelops/internal/shared/errors"
	"hotelops/internal/shared/logger"
	"hotelops/internal/shared/services/markdown"
)

type AddCommentCommand struct {
	TicketID uint
	UserID   uint
	Content  string
}

// AddCommentUseCase stores a comment on an existing ticket and returns it
// with the author name and rendered HTML filled in.
type AddCommentUseCase struct {
	ticketRepo  ticket.Repository
	commentRepo ticket.CommentRepository
	userRepo    user.Repository
	markdown    markdown.MarkdownService
	logger      logger.Interface
}

func NewAddCommentUseCase(
	ticketRepo ticket.Repository,
	commentRepo ticket.CommentRepository,
	userRepo user.Repository,
	md markdown.MarkdownService,
	logger logger.Interface,
) *AddCommentUseCase {
	return &AddCommentUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		markdown:    md,
		logger:      logger,
	}
}

func (uc *AddCommentUseCase) Execute(ctx context.Context, cmd AddCommentCommand) (*ticket.Comment, error) {
	uc.logger.Infow("executing add comment use case", "ticket_id", cmd.TicketID, "user_id", cmd.UserID)

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}
	if t == nil {
		return nil, errors.NewNotFoundError("Ticket not found")
	}

	author, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, errors.NewNotFoundError("User not found")
	}

	comment, err := ticket.NewComment(cmd.TicketID, cmd.UserID, cmd.Content)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	created, err := uc.commentRepo.Create(ctx, comment)
	if err != nil {
		uc.logger.Errorw("failed to create comment", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}
	if err := created.RenderHTML(uc.markdown); err != nil {
		uc.logger.Warnw("failed to render comment", "comment_id", created.ID, "error", err)
	}

	uc.logger.Infow("comment added", "ticket_id", cmd.TicketID, "comment_id", created.ID)
	return created, nil
}

type ListCommentsUseCase struct {
	commentRepo ticket.CommentRepository
	markdown    markdown.MarkdownService
	logger      logger.Interface
}

func NewListCommentsUseCase(commentRepo ticket.CommentRepository, md markdown.MarkdownService, logger logger.Interface) *ListCommentsUseCase {
	return &ListCommentsUseCase{commentRepo: commentRepo, markdown: md, logger: logger}
}

// Execute lists a ticket's comments oldest first. An unknown ticket simply
// has no comments.
func (uc *ListCommentsUseCase) Execute(ctx context.Context, ticketID uint) ([]*ticket.Comment, error) {
	comments, err := uc.commentRepo.ListByTicket(ctx, ticketID)
	if err != nil {
		uc.logger.Errorw("failed to list comments", "ticket_id", ticketID, "error", err)
		return nil, err
	}
	for _, c := range comments {
		if err := c.RenderHTML(uc.markdown); err != nil {
			uc.logger.Warnw("failed to render comment", "comment_id", c.ID, "error", err)
		}
	}
	return comments, nil
}
