package interfaces

import (
	"context"

	"github.com/mweegram/tickful/pkg/domain/model"
	"github.com/mweegram/tickful/pkg/domain/types"
)

// QueueRepository defines the interface for Queue data access
type QueueRepository interface {
	// Create creates a new queue with auto-generated ID
	Create(ctx context.Context, q *model.Queue) (*model.Queue, error)

	// Get retrieves a queue by ID
	Get(ctx context.Context, id types.QueueID) (*model.Queue, error)

	// GetByName retrieves a queue by its unique name
	GetByName(ctx context.Context, name string) (*model.Queue, error)

	// List retrieves all queues, ID ascending
	List(ctx context.Context) ([]*model.Queue, error)
}

// UserRepository defines the interface for User data access
type UserRepository interface {
	// Create creates a new user with auto-generated ID
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// Get retrieves a user by ID
	Get(ctx context.Context, id types.UserID) (*model.User, error)

	// GetByName retrieves a user by its unique name
	GetByName(ctx context.Context, name string) (*model.User, error)

	// Update overwrites an existing user
	Update(ctx context.Context, u *model.User) (*model.User, error)

	// List retrieves all users, ID ascending
	List(ctx context.Context) ([]*model.User, error)
}
