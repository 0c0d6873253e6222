package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/mweegram/tickful/pkg/usecase"
)

func TestAuthUseCase_Login(t *testing.T) {
	t.Run("issues a token for valid credentials", func(t *testing.T) {
		uc, clock := newTestUseCases(t)
		ctx := context.Background()
		alice := registerUser(t, uc, "alice")

		token, err := uc.Auth.Login(ctx, "alice", "s3cret-alice")
		gt.NoError(t, err).Required()

		gt.V(t, token.UserID).Equal(alice.ID)
		gt.V(t, token.UserName).Equal("alice")
		gt.V(t, token.ExpiresAt).Equal(clock.Now().Add(12 * time.Hour))

		resolved, err := uc.Auth.Validate(ctx, token.ID, token.Secret)
		gt.NoError(t, err).Required()
		gt.V(t, resolved.UserID).Equal(alice.ID)
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		registerUser(t, uc, "alice")

		_, err := uc.Auth.Login(ctx, "alice", "wrong")
		gt.True(t, errors.Is(err, usecase.ErrInvalidCredentials))

		_, err = uc.Auth.Login(ctx, "nobody-knows", "wrong")
		gt.True(t, errors.Is(err, usecase.ErrInvalidCredentials))
	})
}

func TestAuthUseCase_Validate(t *testing.T) {
	t.Run("rejects secret mismatch", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		registerUser(t, uc, "alice")

		token, err := uc.Auth.Login(ctx, "alice", "s3cret-alice")
		gt.NoError(t, err).Required()

		_, err = uc.Auth.Validate(ctx, token.ID, "forged")
		gt.True(t, errors.Is(err, usecase.ErrInvalidToken))
	})

	t.Run("rejects expired sessions", func(t *testing.T) {
		uc, clock := newTestUseCases(t)
		ctx := context.Background()
		registerUser(t, uc, "alice")

		token, err := uc.Auth.Login(ctx, "alice", "s3cret-alice")
		gt.NoError(t, err).Required()

		clock.Advance(12*time.Hour + time.Minute)
		_, err = uc.Auth.Validate(ctx, token.ID, token.Secret)
		gt.True(t, errors.Is(err, usecase.ErrInvalidToken))
	})

	t.Run("rejects unknown token IDs", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		_, err := uc.Auth.Validate(context.Background(), "no-such-token", "secret")
		gt.True(t, errors.Is(err, usecase.ErrInvalidToken))
	})
}

func TestAuthUseCase_Logout(t *testing.T) {
	t.Run("revokes the session and is idempotent", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		registerUser(t, uc, "alice")

		token, err := uc.Auth.Login(ctx, "alice", "s3cret-alice")
		gt.NoError(t, err).Required()

		gt.NoError(t, uc.Auth.Logout(ctx, token.ID)).Required()

		_, err = uc.Auth.Validate(ctx, token.ID, token.Secret)
		gt.True(t, errors.Is(err, usecase.ErrInvalidToken))

		gt.NoError(t, uc.Auth.Logout(ctx, token.ID))
	})
}
