package interfaces

import (
	"context"

	"github.com/mweegram/tickful/pkg/domain/model"
	"github.com/mweegram/tickful/pkg/domain/types"
)

// KeyInfoRepository defines the interface for key information data access.
// The dedup key is (ticket, value); uniqueness is enforced by the evidence
// usecase via GetByTicketValue before writes.
type KeyInfoRepository interface {
	// Create creates a new key information record with auto-generated ID
	Create(ctx context.Context, k *model.KeyInfo) (*model.KeyInfo, error)

	// Get retrieves a key information record by ID
	Get(ctx context.Context, id types.KeyInfoID) (*model.KeyInfo, error)

	// GetByTicketValue retrieves the record for a (ticket, value) pair
	GetByTicketValue(ctx context.Context, ticketID types.TicketID, value string) (*model.KeyInfo, error)

	// Update overwrites an existing key information record
	Update(ctx context.Context, k *model.KeyInfo) (*model.KeyInfo, error)

	// Delete deletes a key information record by ID
	Delete(ctx context.Context, id types.KeyInfoID) error

	// ListByTicket retrieves all key information on a ticket
	ListByTicket(ctx context.Context, ticketID types.TicketID) ([]*model.KeyInfo, error)

	// ListByValue retrieves all occurrences of a value across tickets
	ListByValue(ctx context.Context, value string) ([]*model.KeyInfo, error)

	// SearchValueTag retrieves records whose value or tag contains the term
	SearchValueTag(ctx context.Context, term string) ([]*model.KeyInfo, error)
}

// RelationshipRepository defines the interface for ticket relationship data
// access
type RelationshipRepository interface {
	// Create creates a new relationship with auto-generated ID
	Create(ctx context.Context, r *model.Relationship) (*model.Relationship, error)

	// Get retrieves a relationship by ID
	Get(ctx context.Context, id types.RelationshipID) (*model.Relationship, error)

	// Delete deletes a relationship by ID
	Delete(ctx context.Context, id types.RelationshipID) error

	// Exists reports whether the unordered pair is already linked. Both
	// orderings are checked.
	Exists(ctx context.Context, a, b types.TicketID) (bool, error)

	// ListByTicket retrieves all relationships touching a ticket
	ListByTicket(ctx context.Context, ticketID types.TicketID) ([]*model.Relationship, error)
}
