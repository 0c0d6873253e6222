package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mweegram/tickful/pkg/domain/model"
	"github.com/mweegram/tickful/pkg/domain/types"
)

type keyInfoRepository struct {
	db *sql.DB
}

const keyInfoColumns = "id, ticket_id, value, tag"

func (r *keyInfoRepository) queryKeyInfo(ctx context.Context, query string, args ...any) ([]*model.KeyInfo, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query key info")
	}
	defer rows.Close()

	result := []*model.KeyInfo{}
	for rows.Next() {
		var k model.KeyInfo
		if err := rows.Scan(&k.ID, &k.TicketID, &k.Value, &k.Tag); err != nil {
			return nil, goerr.Wrap(err, "failed to scan key info row")
		}
		result = append(result, &k)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate key info rows")
	}

	return result, nil
}

func (r *keyInfoRepository) Create(ctx context.Context, k *model.KeyInfo) (*model.KeyInfo, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO key_info (ticket_id, value, tag) VALUES (?, ?, ?)",
		k.TicketID, k.Value, k.Tag)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to insert key info", goerr.V("ticket_id", k.TicketID))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get inserted key info ID")
	}

	created := *k
	created.ID = types.KeyInfoID(id)
	return &created, nil
}

func (r *keyInfoRepository) Get(ctx context.Context, id types.KeyInfoID) (*model.KeyInfo, error) {
	var k model.KeyInfo
	err := r.db.QueryRowContext(ctx,
		"SELECT "+keyInfoColumns+" FROM key_info WHERE id = ?", id).
		Scan(&k.ID, &k.TicketID, &k.Value, &k.Tag)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(ErrNotFound, "key info not found", goerr.V("id", id))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get key info", goerr.V("id", id))
	}
	return &k, nil
}

func (r *keyInfoRepository) GetByTicketValue(ctx context.Context, ticketID types.TicketID, value string) (*model.KeyInfo, error) {
	var k model.KeyInfo
	err := r.db.QueryRowContext(ctx,
		"SELECT "+keyInfoColumns+" FROM key_info WHERE ticket_id = ? AND value = ?", ticketID, value).
		Scan(&k.ID, &k.TicketID, &k.Value, &k.Tag)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(ErrNotFound, "key info not found",
			goerr.V("ticket_id", ticketID), goerr.V("value", value))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get key info", goerr.V("ticket_id", ticketID))
	}
	return &k, nil
}

func (r *keyInfoRepository) Update(ctx context.Context, k *model.KeyInfo) (*model.KeyInfo, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE key_info SET ticket_id = ?, value = ?, tag = ? WHERE id = ?",
		k.TicketID, k.Value, k.Tag, k.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update key info", goerr.V("id", k.ID))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to check updated rows")
	}
	if affected == 0 {
		return nil, goerr.Wrap(ErrNotFound, "key info not found", goerr.V("id", k.ID))
	}

	updated := *k
	return &updated, nil
}

func (r *keyInfoRepository) Delete(ctx context.Context, id types.KeyInfoID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM key_info WHERE id = ?", id)
	if err != nil {
		return goerr.Wrap(err, "failed to delete key info", goerr.V("id", id))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return goerr.Wrap(err, "failed to check deleted rows")
	}
	if affected == 0 {
		return goerr.Wrap(ErrNotFound, "key info not found", goerr.V("id", id))
	}

	return nil
}

func (r *keyInfoRepository) ListByTicket(ctx context.Context, ticketID types.TicketID) ([]*model.KeyInfo, error) {
	return r.queryKeyInfo(ctx,
		"SELECT "+keyInfoColumns+" FROM key_info WHERE ticket_id = ? ORDER BY id ASC", ticketID)
}

func (r *keyInfoRepository) ListByValue(ctx context.Context, value string) ([]*model.KeyInfo, error) {
	return r.queryKeyInfo(ctx,
		"SELECT "+keyInfoColumns+" FROM key_info WHERE value = ? ORDER BY id ASC", value)
}

func (r *keyInfoRepository) SearchValueTag(ctx context.Context, term string) ([]*model.KeyInfo, error) {
	return r.queryKeyInfo(ctx,
		"SELECT "+keyInfoColumns+" FROM key_info WHERE instr(value, ?) > 0 OR instr(tag, ?) > 0 ORDER BY id ASC",
		term, term)
}
