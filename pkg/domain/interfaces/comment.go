package interfaces

import (
	"context"

	"github.com/mweegram/tickful/pkg/domain/model"
	"github.com/mweegram/tickful/pkg/domain/types"
)

// CommentRepository defines the interface for Comment data access
type CommentRepository interface {
	// Create creates a new comment with auto-generated ID. CreatedAt is
	// respected when set, otherwise the store assigns the current time.
	Create(ctx context.Context, c *model.Comment) (*model.Comment, error)

	// Get retrieves a comment by ID
	Get(ctx context.Context, id types.CommentID) (*model.Comment, error)

	// Update overwrites an existing comment
	Update(ctx context.Context, c *model.Comment) (*model.Comment, error)

	// Delete deletes a comment by ID
	Delete(ctx context.Context, id types.CommentID) error

	// ListByTicket retrieves a ticket's comments in timestamp order
	ListByTicket(ctx context.Context, ticketID types.TicketID) ([]*model.Comment, error)

	// SearchText retrieves comments whose text contains the term
	SearchText(ctx context.Context, term string) ([]*model.Comment, error)
}
