package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mweegram/tickful/pkg/domain/types"
)

// TokenID identifies a session token
type TokenID string

// Validate checks if the TokenID is valid
func (id TokenID) Validate() error {
	if id == "" {
		return goerr.New("token ID cannot be empty")
	}
	return nil
}

// TokenSecret is the bearer secret paired with a TokenID
type TokenSecret string

// Token is an opaque session credential for an authenticated actor. The
// engine only cares that an actor exists and which user it resolves to.
type Token struct {
	ID        TokenID
	Secret    TokenSecret `masq:"secret"`
	UserID    types.UserID
	UserName  string
	ExpiresAt time.Time
}

// NewToken issues a fresh token for the given user
func NewToken(userID types.UserID, userName string, ttl time.Duration) *Token {
	return &Token{
		ID:        TokenID(uuid.NewString()),
		Secret:    TokenSecret(uuid.NewString()),
		UserID:    userID,
		UserName:  userName,
		ExpiresAt: time.Now().Add(ttl),
	}
}

// Validate checks if the token is valid
func (t *Token) Validate() error {
	if err := t.ID.Validate(); err != nil {
		return err
	}
	if t.Secret == "" {
		return goerr.New("token secret cannot be empty")
	}
	if t.UserID == 0 {
		return goerr.New("token must reference a user")
	}
	return nil
}

// IsExpired reports whether the token has passed its expiry
func (t *Token) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

type ctxTokenKey struct{}

// ContextWithToken stores the token of the authenticated actor in the context
func ContextWithToken(ctx context.Context, token *Token) context.Context {
	return context.WithValue(ctx, ctxTokenKey{}, token)
}

// TokenFromContext extracts the authenticated actor's token from the context
func TokenFromContext(ctx context.Context) (*Token, error) {
	token, ok := ctx.Value(ctxTokenKey{}).(*Token)
	if !ok || token == nil {
		return nil, goerr.New("no authenticated actor in context")
	}
	return token, nil
}
