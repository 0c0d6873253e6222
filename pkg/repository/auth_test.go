package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mweegram/tickful/pkg/domain/interfaces"
	"github.com/mweegram/tickful/pkg/domain/model/auth"
)

func runTokenStoreTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Put and Get round trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		token := auth.NewToken(42, "alice", time.Hour)
		if err := repo.PutToken(ctx, token); err != nil {
			t.Fatalf("failed to put token: %v", err)
		}

		got, err := repo.GetToken(ctx, token.ID)
		if err != nil {
			t.Fatalf("failed to get token: %v", err)
		}
		if got.UserID != 42 || got.UserName != "alice" {
			t.Errorf("expected user 42/alice, got %d/%s", got.UserID, got.UserName)
		}
		if got.Secret != token.Secret {
			t.Error("expected secret to round trip")
		}
		if got.IsExpired(time.Now()) {
			t.Error("expected token to be valid")
		}
	})

	t.Run("Get returns ErrNotFound for unknown token", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if _, err := repo.GetToken(ctx, "no-such-token"); !errors.Is(err, interfaces.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Delete invalidates the token", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		token := auth.NewToken(7, "bob", time.Hour)
		if err := repo.PutToken(ctx, token); err != nil {
			t.Fatalf("failed to put token: %v", err)
		}

		if err := repo.DeleteToken(ctx, token.ID); err != nil {
			t.Fatalf("failed to delete token: %v", err)
		}
		if _, err := repo.GetToken(ctx, token.ID); !errors.Is(err, interfaces.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
		if err := repo.DeleteToken(ctx, token.ID); !errors.Is(err, interfaces.ErrNotFound) {
			t.Errorf("expected ErrNotFound on double delete, got %v", err)
		}
	})
}

func TestMemoryTokenStore(t *testing.T) {
	runTokenStoreTest(t, newMemoryRepository)
}

func TestSQLiteTokenStore(t *testing.T) {
	runTokenStoreTest(t, newSQLiteRepository)
}
