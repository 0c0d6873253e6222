package interfaces

import (
	"context"

	"github.com/mweegram/tickful/pkg/domain/model/auth"
)

// Repository defines the interface for data persistence. Implementations
// must make each single-row mutation atomic; composite operations are
// composed by the usecase layer and are not all-or-nothing.
type Repository interface {
	Ticket() TicketRepository
	Queue() QueueRepository
	User() UserRepository
	Comment() CommentRepository
	KeyInfo() KeyInfoRepository
	Relationship() RelationshipRepository
	Knowledge() KnowledgeRepository

	// Session token methods
	PutToken(ctx context.Context, token *auth.Token) error
	GetToken(ctx context.Context, tokenID auth.TokenID) (*auth.Token, error)
	DeleteToken(ctx context.Context, tokenID auth.TokenID) error

	// Close releases the underlying store
	Close() error
}
