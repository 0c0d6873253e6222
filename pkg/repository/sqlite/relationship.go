package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mweegram/tickful/pkg/domain/model"
	"github.com/mweegram/tickful/pkg/domain/types"
)

type relationshipRepository struct {
	db *sql.DB
}

func (r *relationshipRepository) Create(ctx context.Context, rel *model.Relationship) (*model.Relationship, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO relationships (ticket_one, ticket_two) VALUES (?, ?)",
		rel.TicketOne, rel.TicketTwo)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to insert relationship",
			goerr.V("ticket_one", rel.TicketOne), goerr.V("ticket_two", rel.TicketTwo))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get inserted relationship ID")
	}

	created := *rel
	created.ID = types.RelationshipID(id)
	return &created, nil
}

func (r *relationshipRepository) Get(ctx context.Context, id types.RelationshipID) (*model.Relationship, error) {
	var rel model.Relationship
	err := r.db.QueryRowContext(ctx,
		"SELECT id, ticket_one, ticket_two FROM relationships WHERE id = ?", id).
		Scan(&rel.ID, &rel.TicketOne, &rel.TicketTwo)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(ErrNotFound, "relationship not found", goerr.V("id", id))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get relationship", goerr.V("id", id))
	}
	return &rel, nil
}

func (r *relationshipRepository) Delete(ctx context.Context, id types.RelationshipID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM relationships WHERE id = ?", id)
	if err != nil {
		return goerr.Wrap(err, "failed to delete relationship", goerr.V("id", id))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return goerr.Wrap(err, "failed to check deleted rows")
	}
	if affected == 0 {
		return goerr.Wrap(ErrNotFound, "relationship not found", goerr.V("id", id))
	}

	return nil
}

func (r *relationshipRepository) Exists(ctx context.Context, a, b types.TicketID) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM relationships
		 WHERE (ticket_one = ? AND ticket_two = ?) OR (ticket_one = ? AND ticket_two = ?)`,
		a, b, b, a).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, goerr.Wrap(err, "failed to check relationship existence",
			goerr.V("ticket_one", a), goerr.V("ticket_two", b))
	}
	return true, nil
}

func (r *relationshipRepository) ListByTicket(ctx context.Context, ticketID types.TicketID) ([]*model.Relationship, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, ticket_one, ticket_two FROM relationships WHERE ticket_one = ? OR ticket_two = ? ORDER BY id ASC",
		ticketID, ticketID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query relationships", goerr.V("ticket_id", ticketID))
	}
	defer rows.Close()

	result := []*model.Relationship{}
	for rows.Next() {
		var rel model.Relationship
		if err := rows.Scan(&rel.ID, &rel.TicketOne, &rel.TicketTwo); err != nil {
			return nil, goerr.Wrap(err, "failed to scan relationship row")
		}
		result = append(result, &rel)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate relationship rows")
	}

	return result, nil
}
