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

type ticketRepository struct {
	db *sql.DB
}

const ticketColumns = "id, title, content, status, owner_id, queue_id, created_at, started_at, completed_at, determination"

func scanTicket(row interface{ Scan(...any) error }) (*model.Ticket, error) {
	var t model.Ticket
	var createdAt string
	var startedAt, completedAt sql.NullString

	err := row.Scan(&t.ID, &t.Title, &t.Content, &t.Status, &t.OwnerID, &t.QueueID,
		&createdAt, &startedAt, &completedAt, &t.Determination)
	if err != nil {
		return nil, err
	}

	if t.CreatedAt, err = decodeTime(createdAt); err != nil {
		return nil, err
	}
	if t.StartedAt, err = decodeTimePtr(startedAt); err != nil {
		return nil, err
	}
	if t.CompletedAt, err = decodeTimePtr(completedAt); err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *ticketRepository) queryTickets(ctx context.Context, query string, args ...any) ([]*model.Ticket, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query tickets")
	}
	defer rows.Close()

	result := []*model.Ticket{}
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to scan ticket row")
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate ticket rows")
	}

	return result, nil
}

func (r *ticketRepository) Create(ctx context.Context, t *model.Ticket) (*model.Ticket, error) {
	created := *t
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO tickets (title, content, status, owner_id, queue_id, created_at, started_at, completed_at, determination)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		created.Title, created.Content, string(created.Status), created.OwnerID, created.QueueID,
		encodeTime(created.CreatedAt), encodeTimePtr(created.StartedAt), encodeTimePtr(created.CompletedAt),
		string(created.Determination))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to insert ticket")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get inserted ticket ID")
	}
	created.ID = types.TicketID(id)

	return &created, nil
}

func (r *ticketRepository) Get(ctx context.Context, id types.TicketID) (*model.Ticket, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+ticketColumns+" FROM tickets WHERE id = ?", id)

	t, err := scanTicket(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(ErrNotFound, "ticket not found", goerr.V("id", id))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get ticket", goerr.V("id", id))
	}

	return t, nil
}

func (r *ticketRepository) Update(ctx context.Context, t *model.Ticket) (*model.Ticket, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tickets SET title = ?, content = ?, status = ?, owner_id = ?, queue_id = ?,
		 created_at = ?, started_at = ?, completed_at = ?, determination = ? WHERE id = ?`,
		t.Title, t.Content, string(t.Status), t.OwnerID, t.QueueID,
		encodeTime(t.CreatedAt), encodeTimePtr(t.StartedAt), encodeTimePtr(t.CompletedAt),
		string(t.Determination), t.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update ticket", goerr.V("id", t.ID))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to check updated rows")
	}
	if affected == 0 {
		return nil, goerr.Wrap(ErrNotFound, "ticket not found", goerr.V("id", t.ID))
	}

	updated := *t
	return &updated, nil
}

func (r *ticketRepository) Exists(ctx context.Context, id types.TicketID) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM tickets WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, goerr.Wrap(err, "failed to check ticket existence", goerr.V("id", id))
	}
	return true, nil
}

func (r *ticketRepository) ListOpenByOwner(ctx context.Context, ownerID types.UserID) ([]*model.Ticket, error) {
	return r.queryTickets(ctx,
		"SELECT "+ticketColumns+" FROM tickets WHERE owner_id = ? AND status != ? ORDER BY created_at ASC",
		ownerID, string(types.TicketStatusResolved))
}

func (r *ticketRepository) ListOpenByQueue(ctx context.Context, queueID types.QueueID) ([]*model.Ticket, error) {
	return r.queryTickets(ctx,
		"SELECT "+ticketColumns+" FROM tickets WHERE queue_id = ? AND status != ? ORDER BY id ASC",
		queueID, string(types.TicketStatusResolved))
}

func (r *ticketRepository) ListCreatedSince(ctx context.Context, since time.Time, queueID types.QueueID) ([]*model.Ticket, error) {
	if queueID == 0 {
		return r.queryTickets(ctx,
			"SELECT "+ticketColumns+" FROM tickets WHERE created_at > ? ORDER BY id ASC",
			encodeTime(since))
	}
	return r.queryTickets(ctx,
		"SELECT "+ticketColumns+" FROM tickets WHERE created_at > ? AND queue_id = ? ORDER BY id ASC",
		encodeTime(since), queueID)
}

func (r *ticketRepository) ListStartedSince(ctx context.Context, since time.Time, queueID types.QueueID) ([]*model.Ticket, error) {
	if queueID == 0 {
		return r.queryTickets(ctx,
			"SELECT "+ticketColumns+" FROM tickets WHERE started_at IS NOT NULL AND started_at > ? ORDER BY id ASC",
			encodeTime(since))
	}
	return r.queryTickets(ctx,
		"SELECT "+ticketColumns+" FROM tickets WHERE started_at IS NOT NULL AND started_at > ? AND queue_id = ? ORDER BY id ASC",
		encodeTime(since), queueID)
}

func (r *ticketRepository) ListResolvedSince(ctx context.Context, since time.Time) ([]*model.Ticket, error) {
	return r.queryTickets(ctx,
		"SELECT "+ticketColumns+" FROM tickets WHERE status = ? AND completed_at IS NOT NULL AND completed_at > ? ORDER BY id ASC",
		string(types.TicketStatusResolved), encodeTime(since))
}

func (r *ticketRepository) ListByTitleToken(ctx context.Context, token string) ([]*model.Ticket, error) {
	// Trailing space keeps "INC1" from matching "INC10"
	return r.queryTickets(ctx,
		"SELECT "+ticketColumns+" FROM tickets WHERE instr(title, ?) > 0 ORDER BY id ASC",
		token+" ")
}

func (r *ticketRepository) SearchTitleContent(ctx context.Context, term string) ([]*model.Ticket, error) {
	return r.queryTickets(ctx,
		"SELECT "+ticketColumns+" FROM tickets WHERE instr(title, ?) > 0 OR instr(content, ?) > 0 ORDER BY id ASC",
		term, term)
}
