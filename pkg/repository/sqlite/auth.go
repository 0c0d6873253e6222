package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mweegram/tickful/pkg/domain/model/auth"
	"github.com/mweegram/tickful/pkg/domain/types"
)

// PutToken stores a session token, replacing an existing one with the same ID
func (c *Client) PutToken(ctx context.Context, token *auth.Token) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO tokens (id, secret, user_id, user_name, expires_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET secret = excluded.secret, user_id = excluded.user_id,
		 user_name = excluded.user_name, expires_at = excluded.expires_at`,
		string(token.ID), string(token.Secret), token.UserID, token.UserName, encodeTime(token.ExpiresAt))
	if err != nil {
		return goerr.Wrap(err, "failed to store token", goerr.V("token_id", token.ID))
	}
	return nil
}

// GetToken retrieves a session token by ID
func (c *Client) GetToken(ctx context.Context, tokenID auth.TokenID) (*auth.Token, error) {
	var token auth.Token
	var id, secret, expiresAt string
	var userID int64

	err := c.db.QueryRowContext(ctx,
		"SELECT id, secret, user_id, user_name, expires_at FROM tokens WHERE id = ?", string(tokenID)).
		Scan(&id, &secret, &userID, &token.UserName, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(ErrNotFound, "token not found", goerr.V("token_id", tokenID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get token", goerr.V("token_id", tokenID))
	}

	token.ID = auth.TokenID(id)
	token.Secret = auth.TokenSecret(secret)
	token.UserID = types.UserID(userID)
	if token.ExpiresAt, err = decodeTime(expiresAt); err != nil {
		return nil, err
	}

	return &token, nil
}

// DeleteToken removes a session token by ID
func (c *Client) DeleteToken(ctx context.Context, tokenID auth.TokenID) error {
	res, err := c.db.ExecContext(ctx, "DELETE FROM tokens WHERE id = ?", string(tokenID))
	if err != nil {
		return goerr.Wrap(err, "failed to delete token", goerr.V("token_id", tokenID))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return goerr.Wrap(err, "failed to check deleted rows")
	}
	if affected == 0 {
		return goerr.Wrap(ErrNotFound, "token not found", goerr.V("token_id", tokenID))
	}

	return nil
}
