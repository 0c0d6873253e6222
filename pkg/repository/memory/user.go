package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mweegram/tickful/pkg/domain/model"
	"github.com/mweegram/tickful/pkg/domain/types"
)

type userRepository struct {
	mu     sync.RWMutex
	users  map[types.UserID]*model.User
	nextID types.UserID
}

func newUserRepository() *userRepository {
	return &userRepository{
		users:  make(map[types.UserID]*model.User),
		nextID: 1,
	}
}

func copyUser(u *model.User) *model.User {
	return &model.User{
		ID:             u.ID,
		Name:           u.Name,
		CredentialHash: u.CredentialHash,
		Email:          u.Email,
		QueueID:        u.QueueID,
	}
}

func (r *userRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyUser(u)
	created.ID = r.nextID
	r.nextID++

	r.users[created.ID] = created
	return copyUser(created), nil
}

func (r *userRepository) Get(ctx context.Context, id types.UserID) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, exists := r.users[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", id))
	}

	return copyUser(u), nil
}

func (r *userRepository) GetByName(ctx context.Context, name string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Name == name {
			return copyUser(u), nil
		}
	}

	return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("name", name))
}

func (r *userRepository) Update(ctx context.Context, u *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[u.ID]; !exists {
		return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", u.ID))
	}

	updated := copyUser(u)
	r.users[updated.ID] = updated
	return copyUser(updated), nil
}

func (r *userRepository) List(ctx context.Context) ([]*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.User, 0, len(r.users))
	for _, u := range r.users {
		result = append(result, copyUser(u))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}
