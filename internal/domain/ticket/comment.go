package ticket

import (
	"fmt"
	"strings"
	"time"

	"hotelops/internal/shared/services/markdown"
)

const maxCommentLength = 5000

// Comment is a note on a ticket. UserFullName is resolved at read time and
// ContentHTML is rendered from the markdown content for display.
type Comment struct {
	ID           uint      `json:"id"`
	TicketID     uint      `json:"ticket_id"`
	UserID       uint      `json:"user_id"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
	UserFullName *string   `json:"user_full_name"`
	ContentHTML  string    `json:"content_html,omitempty"`
}

// CommentInput is the body of POST /tickets/:id/comments.
type CommentInput struct {
	UserID  uint   `json:"user_id" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// NewComment validates and builds an unsaved comment.
func NewComment(ticketID, userID uint, content string) (*Comment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	content = strings.TrimSpace(content)
	if len(content) == 0 {
		return nil, fmt.Errorf("content cannot be empty")
	}
	if len(content) > maxCommentLength {
		return nil, fmt.Errorf("content exceeds maximum length of %d characters", maxCommentLength)
	}
	return &Comment{TicketID: ticketID, UserID: userID, Content: content}, nil
}

// RenderHTML fills ContentHTML from Content.
func (c *Comment) RenderHTML(md markdown.MarkdownService) error {
	out, err := md.ToHTMLSanitized(c.Content)
	if err != nil {
		return err
	}
	c.ContentHTML = out
	return nil
}
