package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mweegram/tickful/pkg/domain/model"
	"github.com/mweegram/tickful/pkg/domain/types"
)

type userRepository struct {
	db *sql.DB
}

const userColumns = "id, name, credential_hash, email, queue_id"

func (r *userRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO users (name, credential_hash, email, queue_id) VALUES (?, ?, ?, ?)",
		u.Name, u.CredentialHash, u.Email, u.QueueID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to insert user", goerr.V("name", u.Name))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get inserted user ID")
	}

	created := *u
	created.ID = types.UserID(id)
	return &created, nil
}

func (r *userRepository) Get(ctx context.Context, id types.UserID) (*model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id).
		Scan(&u.ID, &u.Name, &u.CredentialHash, &u.Email, &u.QueueID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", id))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("id", id))
	}
	return &u, nil
}

func (r *userRepository) GetByName(ctx context.Context, name string) (*model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE name = ?", name).
		Scan(&u.ID, &u.Name, &u.CredentialHash, &u.Email, &u.QueueID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("name", name))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("name", name))
	}
	return &u, nil
}

func (r *userRepository) Update(ctx context.Context, u *model.User) (*model.User, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET name = ?, credential_hash = ?, email = ?, queue_id = ? WHERE id = ?",
		u.Name, u.CredentialHash, u.Email, u.QueueID, u.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update user", goerr.V("id", u.ID))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to check updated rows")
	}
	if affected == 0 {
		return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", u.ID))
	}

	updated := *u
	return &updated, nil
}

func (r *userRepository) List(ctx context.Context) ([]*model.User, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY id ASC")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list users")
	}
	defer rows.Close()

	result := []*model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.CredentialHash, &u.Email, &u.QueueID); err != nil {
			return nil, goerr.Wrap(err, "failed to scan user row")
		}
		result = append(result, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate user rows")
	}

	return result, nil
}
