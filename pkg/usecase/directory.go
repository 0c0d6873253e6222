package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mweegram/tickful/pkg/domain/interfaces"
	"github.com/mweegram/tickful/pkg/domain/model"
	"github.com/mweegram/tickful/pkg/domain/types"
	"golang.org/x/crypto/bcrypt"
)

// DirectoryUseCase manages analyst accounts and queues.
type DirectoryUseCase struct {
	repo interfaces.Repository
}

func NewDirectoryUseCase(repo interfaces.Repository) *DirectoryUseCase {
	return &DirectoryUseCase{repo: repo}
}

// Bootstrap ensures the default queue and the sentinel account exist. It is
// idempotent and safe to call on every startup.
func (uc *DirectoryUseCase) Bootstrap(ctx context.Context) error {
	queue, err := uc.repo.Queue().GetByName(ctx, model.DefaultQueueName)
	if err != nil {
		if !errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(err, "failed to look up default queue")
		}
		queue, err = uc.repo.Queue().Create(ctx, &model.Queue{Name: model.DefaultQueueName})
		if err != nil {
			return goerr.Wrap(err, "failed to create default queue")
		}
	}

	if _, err := uc.repo.User().GetByName(ctx, model.SentinelUserName); err != nil {
		if !errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(err, "failed to look up sentinel user")
		}
		sentinel := &model.User{
			Name:    model.SentinelUserName,
			QueueID: queue.ID,
		}
		if _, err := uc.repo.User().Create(ctx, sentinel); err != nil {
			return goerr.Wrap(err, "failed to create sentinel user")
		}
	}

	return nil
}

// Register creates an analyst account with a bcrypt credential hash. The
// name must be unique.
func (uc *DirectoryUseCase) Register(ctx context.Context, name, password, email string, queueID types.QueueID) (*model.User, error) {
	if _, err := uc.repo.User().GetByName(ctx, name); err == nil {
		return nil, goerr.Wrap(ErrDuplicateName, "user name already taken", goerr.V("name", name))
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		return nil, goerr.Wrap(err, "failed to look up user name")
	}

	if queueID != 0 {
		if _, err := uc.repo.Queue().Get(ctx, queueID); err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				return nil, goerr.Wrap(ErrQueueNotFound, "queue not found", goerr.V("queue_id", queueID))
			}
			return nil, goerr.Wrap(err, "failed to look up queue")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to hash credential")
	}

	user := &model.User{
		Name:           name,
		CredentialHash: string(hash),
		Email:          email,
		QueueID:        queueID,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	created, err := uc.repo.User().Create(ctx, user)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create user")
	}
	return created, nil
}

func (uc *DirectoryUseCase) GetUser(ctx context.Context, id types.UserID) (*model.User, error) {
	user, err := uc.repo.User().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrUserNotFound, "user not found", goerr.V("user_id", id))
		}
		return nil, goerr.Wrap(err, "failed to get user")
	}
	return user, nil
}

func (uc *DirectoryUseCase) GetUserByName(ctx context.Context, name string) (*model.User, error) {
	user, err := uc.repo.User().GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrUserNotFound, "user not found", goerr.V("name", name))
		}
		return nil, goerr.Wrap(err, "failed to get user by name")
	}
	return user, nil
}

func (uc *DirectoryUseCase) ListUsers(ctx context.Context) ([]*model.User, error) {
	users, err := uc.repo.User().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list users")
	}
	return users, nil
}

// UpdateUserQueue reassigns a user's home queue.
func (uc *DirectoryUseCase) UpdateUserQueue(ctx context.Context, userID types.UserID, queueID types.QueueID) (*model.User, error) {
	user, err := uc.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.repo.Queue().Get(ctx, queueID); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrQueueNotFound, "queue not found", goerr.V("queue_id", queueID))
		}
		return nil, goerr.Wrap(err, "failed to look up queue")
	}

	user.QueueID = queueID
	updated, err := uc.repo.User().Update(ctx, user)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update user")
	}
	return updated, nil
}

// CreateQueue creates a queue with a unique name.
func (uc *DirectoryUseCase) CreateQueue(ctx context.Context, name string) (*model.Queue, error) {
	if _, err := uc.repo.Queue().GetByName(ctx, name); err == nil {
		return nil, goerr.Wrap(ErrDuplicateName, "queue name already taken", goerr.V("name", name))
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		return nil, goerr.Wrap(err, "failed to look up queue name")
	}

	queue := &model.Queue{Name: name}
	if err := queue.Validate(); err != nil {
		return nil, err
	}

	created, err := uc.repo.Queue().Create(ctx, queue)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create queue")
	}
	return created, nil
}

func (uc *DirectoryUseCase) GetQueue(ctx context.Context, id types.QueueID) (*model.Queue, error) {
	queue, err := uc.repo.Queue().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrQueueNotFound, "queue not found", goerr.V("queue_id", id))
		}
		return nil, goerr.Wrap(err, "failed to get queue")
	}
	return queue, nil
}

func (uc *DirectoryUseCase) ListQueues(ctx context.Context) ([]*model.Queue, error) {
	queues, err := uc.repo.Queue().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list queues")
	}
	return queues, nil
}
