package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mweegram/tickful/pkg/domain/interfaces"
	"github.com/mweegram/tickful/pkg/domain/model/auth"
	"golang.org/x/crypto/bcrypt"
)

// AuthUseCase issues and validates session tokens. Tokens are opaque
// ID/secret pairs with a fixed TTL; there is no refresh.
type AuthUseCase struct {
	repo interfaces.Repository
	now  func() time.Time
	ttl  time.Duration
}

func NewAuthUseCase(repo interfaces.Repository, now func() time.Time, ttl time.Duration) *AuthUseCase {
	return &AuthUseCase{
		repo: repo,
		now:  now,
		ttl:  ttl,
	}
}

// Login verifies a name/password pair and issues a session token. Unknown
// users and wrong passwords both report ErrInvalidCredentials so the caller
// cannot distinguish them.
func (uc *AuthUseCase) Login(ctx context.Context, name, password string) (*auth.Token, error) {
	user, err := uc.repo.User().GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrInvalidCredentials, "login failed")
		}
		return nil, goerr.Wrap(err, "failed to look up user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.CredentialHash), []byte(password)); err != nil {
		return nil, goerr.Wrap(ErrInvalidCredentials, "login failed")
	}

	token := auth.NewToken(user.ID, user.Name, uc.ttl)
	token.ExpiresAt = uc.now().Add(uc.ttl)
	if err := uc.repo.PutToken(ctx, token); err != nil {
		return nil, goerr.Wrap(err, "failed to store token")
	}

	return token, nil
}

// Validate resolves a token ID/secret pair to the stored token, rejecting
// unknown IDs, secret mismatches and expired sessions.
func (uc *AuthUseCase) Validate(ctx context.Context, tokenID auth.TokenID, secret auth.TokenSecret) (*auth.Token, error) {
	token, err := uc.repo.GetToken(ctx, tokenID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrInvalidToken, "unknown token")
		}
		return nil, goerr.Wrap(err, "failed to look up token")
	}

	if token.Secret != secret {
		return nil, goerr.Wrap(ErrInvalidToken, "token secret mismatch")
	}
	if token.IsExpired(uc.now()) {
		return nil, goerr.Wrap(ErrInvalidToken, "token expired")
	}

	return token, nil
}

// Logout revokes a session token. Revoking an unknown token is not an error.
func (uc *AuthUseCase) Logout(ctx context.Context, tokenID auth.TokenID) error {
	if err := uc.repo.DeleteToken(ctx, tokenID); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil
		}
		return goerr.Wrap(err, "failed to delete token")
	}
	return nil
}
