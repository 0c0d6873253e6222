package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mweegram/tickful/pkg/domain/model"
	"github.com/mweegram/tickful/pkg/domain/types"
)

type queueRepository struct {
	db *sql.DB
}

func (r *queueRepository) Create(ctx context.Context, q *model.Queue) (*model.Queue, error) {
	res, err := r.db.ExecContext(ctx, "INSERT INTO queues (name) VALUES (?)", q.Name)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to insert queue", goerr.V("name", q.Name))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get inserted queue ID")
	}

	created := *q
	created.ID = types.QueueID(id)
	return &created, nil
}

func (r *queueRepository) Get(ctx context.Context, id types.QueueID) (*model.Queue, error) {
	var q model.Queue
	err := r.db.QueryRowContext(ctx, "SELECT id, name FROM queues WHERE id = ?", id).
		Scan(&q.ID, &q.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(ErrNotFound, "queue not found", goerr.V("id", id))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get queue", goerr.V("id", id))
	}
	return &q, nil
}

func (r *queueRepository) GetByName(ctx context.Context, name string) (*model.Queue, error) {
	var q model.Queue
	err := r.db.QueryRowContext(ctx, "SELECT id, name FROM queues WHERE name = ?", name).
		Scan(&q.ID, &q.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(ErrNotFound, "queue not found", goerr.V("name", name))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get queue", goerr.V("name", name))
	}
	return &q, nil
}

func (r *queueRepository) List(ctx context.Context) ([]*model.Queue, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM queues ORDER BY id ASC")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list queues")
	}
	defer rows.Close()

	result := []*model.Queue{}
	for rows.Next() {
		var q model.Queue
		if err := rows.Scan(&q.ID, &q.Name); err != nil {
			return nil, goerr.Wrap(err, "failed to scan queue row")
		}
		result = append(result, &q)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate queue rows")
	}

	return result, nil
}
