package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mweegram/tickful/pkg/domain/model"
	"github.com/mweegram/tickful/pkg/domain/types"
)

type commentRepository struct {
	db *sql.DB
}

const commentColumns = "id, ticket_id, author_id, text, stage, created_at"

func (r *commentRepository) queryComments(ctx context.Context, query string, args ...any) ([]*model.Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query comments")
	}
	defer rows.Close()

	result := []*model.Comment{}
	for rows.Next() {
		var c model.Comment
		var createdAt string
		if err := rows.Scan(&c.ID, &c.TicketID, &c.AuthorID, &c.Text, &c.Stage, &createdAt); err != nil {
			return nil, goerr.Wrap(err, "failed to scan comment row")
		}
		if c.CreatedAt, err = decodeTime(createdAt); err != nil {
			return nil, err
		}
		result = append(result, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate comment rows")
	}

	return result, nil
}

func (r *commentRepository) Create(ctx context.Context, c *model.Comment) (*model.Comment, error) {
	created := *c
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO comments (ticket_id, author_id, text, stage, created_at) VALUES (?, ?, ?, ?, ?)",
		created.TicketID, created.AuthorID, created.Text, int(created.Stage), encodeTime(created.CreatedAt))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to insert comment", goerr.V("ticket_id", c.TicketID))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get inserted comment ID")
	}
	created.ID = types.CommentID(id)

	return &created, nil
}

func (r *commentRepository) Get(ctx context.Context, id types.CommentID) (*model.Comment, error) {
	var c model.Comment
	var createdAt string
	err := r.db.QueryRowContext(ctx,
		"SELECT "+commentColumns+" FROM comments WHERE id = ?", id).
		Scan(&c.ID, &c.TicketID, &c.AuthorID, &c.Text, &c.Stage, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(ErrNotFound, "comment not found", goerr.V("id", id))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get comment", goerr.V("id", id))
	}
	if c.CreatedAt, err = decodeTime(createdAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *commentRepository) Update(ctx context.Context, c *model.Comment) (*model.Comment, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE comments SET ticket_id = ?, author_id = ?, text = ?, stage = ?, created_at = ? WHERE id = ?",
		c.TicketID, c.AuthorID, c.Text, int(c.Stage), encodeTime(c.CreatedAt), c.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update comment", goerr.V("id", c.ID))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to check updated rows")
	}
	if affected == 0 {
		return nil, goerr.Wrap(ErrNotFound, "comment not found", goerr.V("id", c.ID))
	}

	updated := *c
	return &updated, nil
}

func (r *commentRepository) Delete(ctx context.Context, id types.CommentID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM comments WHERE id = ?", id)
	if err != nil {
		return goerr.Wrap(err, "failed to delete comment", goerr.V("id", id))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return goerr.Wrap(err, "failed to check deleted rows")
	}
	if affected == 0 {
		return goerr.Wrap(ErrNotFound, "comment not found", goerr.V("id", id))
	}

	return nil
}

func (r *commentRepository) ListByTicket(ctx context.Context, ticketID types.TicketID) ([]*model.Comment, error) {
	return r.queryComments(ctx,
		"SELECT "+commentColumns+" FROM comments WHERE ticket_id = ? ORDER BY created_at ASC, id ASC",
		ticketID)
}

func (r *commentRepository) SearchText(ctx context.Context, term string) ([]*model.Comment, error) {
	return r.queryComments(ctx,
		"SELECT "+commentColumns+" FROM comments WHERE instr(text, ?) > 0 ORDER BY id ASC",
		term)
}
