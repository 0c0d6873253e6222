package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mweegram/tickful/pkg/domain/model"
	"github.com/mweegram/tickful/pkg/usecase"
	"golang.org/x/crypto/bcrypt"
)

func TestDirectoryUseCase_Bootstrap(t *testing.T) {
	t.Run("creates the default queue and sentinel user once", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()

		// newTestUseCases already bootstrapped; a second run must not duplicate.
		gt.NoError(t, uc.Directory.Bootstrap(ctx)).Required()

		queues, err := uc.Directory.ListQueues(ctx)
		gt.NoError(t, err).Required()
		gt.A(t, queues).Length(1)
		gt.V(t, queues[0].Name).Equal(model.DefaultQueueName)

		users, err := uc.Directory.ListUsers(ctx)
		gt.NoError(t, err).Required()
		gt.A(t, users).Length(1)
		gt.True(t, users[0].IsSentinel())
	})
}

func TestDirectoryUseCase_Register(t *testing.T) {
	t.Run("stores a bcrypt hash, never the password", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		queue := defaultQueue(t, uc)

		user, err := uc.Directory.Register(ctx, "alice", "hunter2", "alice@example.com", queue.ID)
		gt.NoError(t, err).Required()

		gt.V(t, user.Name).Equal("alice")
		gt.V(t, user.QueueID).Equal(queue.ID)
		gt.V(t, user.CredentialHash).NotEqual("hunter2")
		gt.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.CredentialHash), []byte("hunter2")))
	})

	t.Run("names are unique", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()

		_, err := uc.Directory.Register(ctx, "alice", "one", "a@example.com", 0)
		gt.NoError(t, err).Required()

		_, err = uc.Directory.Register(ctx, "alice", "two", "b@example.com", 0)
		gt.True(t, errors.Is(err, usecase.ErrDuplicateName))
	})

	t.Run("unknown home queue is rejected", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		_, err := uc.Directory.Register(context.Background(), "bob", "pw", "b@example.com", 404)
		gt.True(t, errors.Is(err, usecase.ErrQueueNotFound))
	})
}

func TestDirectoryUseCase_Queues(t *testing.T) {
	t.Run("queue names are unique", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()

		_, err := uc.Directory.CreateQueue(ctx, "Forensics")
		gt.NoError(t, err).Required()

		_, err = uc.Directory.CreateQueue(ctx, "Forensics")
		gt.True(t, errors.Is(err, usecase.ErrDuplicateName))
	})

	t.Run("user reassignment checks the target queue", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		alice := registerUser(t, uc, "alice")

		forensics, err := uc.Directory.CreateQueue(ctx, "Forensics")
		gt.NoError(t, err).Required()

		moved, err := uc.Directory.UpdateUserQueue(ctx, alice.ID, forensics.ID)
		gt.NoError(t, err).Required()
		gt.V(t, moved.QueueID).Equal(forensics.ID)

		_, err = uc.Directory.UpdateUserQueue(ctx, alice.ID, 404)
		gt.True(t, errors.Is(err, usecase.ErrQueueNotFound))
	})
}
