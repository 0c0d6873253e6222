package interfaces

import (
	"context"
	"time"

	"github.com/mweegram/tickful/pkg/domain/model"
	"github.com/mweegram/tickful/pkg/domain/types"
)

// TicketRepository defines the interface for Ticket data access. Window
// queries take an explicit lower bound so the analytics engine controls the
// anchor; a zero queueID means "all queues".
type TicketRepository interface {
	// Create creates a new ticket with auto-generated ID. CreatedAt is
	// respected when set, otherwise the store assigns the current time.
	Create(ctx context.Context, t *model.Ticket) (*model.Ticket, error)

	// Get retrieves a ticket by ID
	Get(ctx context.Context, id types.TicketID) (*model.Ticket, error)

	// Update overwrites an existing ticket
	Update(ctx context.Context, t *model.Ticket) (*model.Ticket, error)

	// Exists reports whether a ticket with the given ID exists
	Exists(ctx context.Context, id types.TicketID) (bool, error)

	// ListOpenByOwner retrieves a user's unresolved tickets, oldest first
	ListOpenByOwner(ctx context.Context, ownerID types.UserID) ([]*model.Ticket, error)

	// ListOpenByQueue retrieves a queue's unresolved tickets
	ListOpenByQueue(ctx context.Context, queueID types.QueueID) ([]*model.Ticket, error)

	// ListCreatedSince retrieves tickets created after the given instant
	ListCreatedSince(ctx context.Context, since time.Time, queueID types.QueueID) ([]*model.Ticket, error)

	// ListStartedSince retrieves tickets with a started timestamp after the
	// given instant
	ListStartedSince(ctx context.Context, since time.Time, queueID types.QueueID) ([]*model.Ticket, error)

	// ListResolvedSince retrieves resolved tickets completed after the given
	// instant
	ListResolvedSince(ctx context.Context, since time.Time) ([]*model.Ticket, error)

	// ListByTitleToken retrieves tickets whose title contains the token
	// immediately followed by a space, so "INC1" does not match "INC10"
	ListByTitleToken(ctx context.Context, token string) ([]*model.Ticket, error)

	// SearchTitleContent retrieves tickets whose title or content contains
	// the term
	SearchTitleContent(ctx context.Context, term string) ([]*model.Ticket, error)
}
