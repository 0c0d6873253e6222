package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mweegram/tickful/pkg/domain/model"
	"github.com/mweegram/tickful/pkg/domain/types"
)

type knowledgeRepository struct {
	db *sql.DB
}

func (r *knowledgeRepository) CreateMap(ctx context.Context, m *model.KnowledgeMap) (*model.KnowledgeMap, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO knowledge_maps (title, body) VALUES (?, ?)", m.Title, m.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to insert knowledge mapping", goerr.V("title", m.Title))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get inserted knowledge mapping ID")
	}

	created := *m
	created.ID = types.KnowledgeMapID(id)
	return &created, nil
}

func (r *knowledgeRepository) GetMap(ctx context.Context, id types.KnowledgeMapID) (*model.KnowledgeMap, error) {
	var m model.KnowledgeMap
	err := r.db.QueryRowContext(ctx,
		"SELECT id, title, body FROM knowledge_maps WHERE id = ?", id).
		Scan(&m.ID, &m.Title, &m.Body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(ErrNotFound, "knowledge mapping not found", goerr.V("id", id))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get knowledge mapping", goerr.V("id", id))
	}
	return &m, nil
}

func (r *knowledgeRepository) GetMapByTitle(ctx context.Context, title string) (*model.KnowledgeMap, error) {
	var m model.KnowledgeMap
	err := r.db.QueryRowContext(ctx,
		"SELECT id, title, body FROM knowledge_maps WHERE title = ?", title).
		Scan(&m.ID, &m.Title, &m.Body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(ErrNotFound, "knowledge mapping not found", goerr.V("title", title))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get knowledge mapping", goerr.V("title", title))
	}
	return &m, nil
}

func (r *knowledgeRepository) UpdateMap(ctx context.Context, m *model.KnowledgeMap) (*model.KnowledgeMap, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE knowledge_maps SET title = ?, body = ? WHERE id = ?", m.Title, m.Body, m.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update knowledge mapping", goerr.V("id", m.ID))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to check updated rows")
	}
	if affected == 0 {
		return nil, goerr.Wrap(ErrNotFound, "knowledge mapping not found", goerr.V("id", m.ID))
	}

	updated := *m
	return &updated, nil
}

func (r *knowledgeRepository) DeleteMap(ctx context.Context, id types.KnowledgeMapID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM knowledge_maps WHERE id = ?", id)
	if err != nil {
		return goerr.Wrap(err, "failed to delete knowledge mapping", goerr.V("id", id))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return goerr.Wrap(err, "failed to check deleted rows")
	}
	if affected == 0 {
		return goerr.Wrap(ErrNotFound, "knowledge mapping not found", goerr.V("id", id))
	}

	return nil
}

func (r *knowledgeRepository) ListMaps(ctx context.Context) ([]*model.KnowledgeMap, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, title, body FROM knowledge_maps ORDER BY id ASC")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list knowledge mappings")
	}
	defer rows.Close()

	result := []*model.KnowledgeMap{}
	for rows.Next() {
		var m model.KnowledgeMap
		if err := rows.Scan(&m.ID, &m.Title, &m.Body); err != nil {
			return nil, goerr.Wrap(err, "failed to scan knowledge mapping row")
		}
		result = append(result, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate knowledge mapping rows")
	}

	return result, nil
}

func (r *knowledgeRepository) CreateGuidance(ctx context.Context, g *model.Guidance) (*model.Guidance, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO guidance (knowledge_map_id, title, body) VALUES (?, ?, ?)",
		g.KnowledgeMapID, g.Title, g.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to insert guidance", goerr.V("title", g.Title))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get inserted guidance ID")
	}

	created := *g
	created.ID = types.GuidanceID(id)
	return &created, nil
}

func (r *knowledgeRepository) GetGuidance(ctx context.Context, id types.GuidanceID) (*model.Guidance, error) {
	var g model.Guidance
	err := r.db.QueryRowContext(ctx,
		"SELECT id, knowledge_map_id, title, body FROM guidance WHERE id = ?", id).
		Scan(&g.ID, &g.KnowledgeMapID, &g.Title, &g.Body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(ErrNotFound, "guidance not found", goerr.V("id", id))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get guidance", goerr.V("id", id))
	}
	return &g, nil
}

func (r *knowledgeRepository) GetGuidanceByTitle(ctx context.Context, mapID types.KnowledgeMapID, title string) (*model.Guidance, error) {
	var g model.Guidance
	err := r.db.QueryRowContext(ctx,
		"SELECT id, knowledge_map_id, title, body FROM guidance WHERE knowledge_map_id = ? AND title = ?",
		mapID, title).
		Scan(&g.ID, &g.KnowledgeMapID, &g.Title, &g.Body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(ErrNotFound, "guidance not found",
			goerr.V("map_id", mapID), goerr.V("title", title))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get guidance", goerr.V("title", title))
	}
	return &g, nil
}

func (r *knowledgeRepository) UpdateGuidance(ctx context.Context, g *model.Guidance) (*model.Guidance, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE guidance SET knowledge_map_id = ?, title = ?, body = ? WHERE id = ?",
		g.KnowledgeMapID, g.Title, g.Body, g.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update guidance", goerr.V("id", g.ID))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to check updated rows")
	}
	if affected == 0 {
		return nil, goerr.Wrap(ErrNotFound, "guidance not found", goerr.V("id", g.ID))
	}

	updated := *g
	return &updated, nil
}

func (r *knowledgeRepository) DeleteGuidance(ctx context.Context, id types.GuidanceID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM guidance WHERE id = ?", id)
	if err != nil {
		return goerr.Wrap(err, "failed to delete guidance", goerr.V("id", id))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return goerr.Wrap(err, "failed to check deleted rows")
	}
	if affected == 0 {
		return goerr.Wrap(ErrNotFound, "guidance not found", goerr.V("id", id))
	}

	return nil
}

func (r *knowledgeRepository) ListGuidanceByMap(ctx context.Context, mapID types.KnowledgeMapID) ([]*model.Guidance, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, knowledge_map_id, title, body FROM guidance WHERE knowledge_map_id = ? ORDER BY id ASC",
		mapID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list guidance", goerr.V("map_id", mapID))
	}
	defer rows.Close()

	result := []*model.Guidance{}
	for rows.Next() {
		var g model.Guidance
		if err := rows.Scan(&g.ID, &g.KnowledgeMapID, &g.Title, &g.Body); err != nil {
			return nil, goerr.Wrap(err, "failed to scan guidance row")
		}
		result = append(result, &g)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate guidance rows")
	}

	return result, nil
}

func (r *knowledgeRepository) DeleteGuidanceByMap(ctx context.Context, mapID types.KnowledgeMapID) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM guidance WHERE knowledge_map_id = ?", mapID); err != nil {
		return goerr.Wrap(err, "failed to delete guidance for mapping", goerr.V("map_id", mapID))
	}
	return nil
}
