package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mweegram/tickful/pkg/domain/model"
	"github.com/mweegram/tickful/pkg/domain/types"
)

type knowledgeRepository struct {
	mu             sync.RWMutex
	maps           map[types.KnowledgeMapID]*model.KnowledgeMap
	guidance       map[types.GuidanceID]*model.Guidance
	nextMapID      types.KnowledgeMapID
	nextGuidanceID types.GuidanceID
}

func newKnowledgeRepository() *knowledgeRepository {
	return &knowledgeRepository{
		maps:           make(map[types.KnowledgeMapID]*model.KnowledgeMap),
		guidance:       make(map[types.GuidanceID]*model.Guidance),
		nextMapID:      1,
		nextGuidanceID: 1,
	}
}

func copyKnowledgeMap(m *model.KnowledgeMap) *model.KnowledgeMap {
	return &model.KnowledgeMap{
		ID:    m.ID,
		Title: m.Title,
		Body:  m.Body,
	}
}

func copyGuidance(g *model.Guidance) *model.Guidance {
	return &model.Guidance{
		ID:             g.ID,
		KnowledgeMapID: g.KnowledgeMapID,
		Title:          g.Title,
		Body:           g.Body,
	}
}

func (r *knowledgeRepository) CreateMap(ctx context.Context, m *model.KnowledgeMap) (*model.KnowledgeMap, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyKnowledgeMap(m)
	created.ID = r.nextMapID
	r.nextMapID++

	r.maps[created.ID] = created
	return copyKnowledgeMap(created), nil
}

func (r *knowledgeRepository) GetMap(ctx context.Context, id types.KnowledgeMapID) (*model.KnowledgeMap, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, exists := r.maps[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "knowledge mapping not found", goerr.V("id", id))
	}

	return copyKnowledgeMap(m), nil
}

func (r *knowledgeRepository) GetMapByTitle(ctx context.Context, title string) (*model.KnowledgeMap, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.maps {
		if m.Title == title {
			return copyKnowledgeMap(m), nil
		}
	}

	return nil, goerr.Wrap(ErrNotFound, "knowledge mapping not found", goerr.V("title", title))
}

func (r *knowledgeRepository) UpdateMap(ctx context.Context, m *model.KnowledgeMap) (*model.KnowledgeMap, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.maps[m.ID]; !exists {
		return nil, goerr.Wrap(ErrNotFound, "knowledge mapping not found", goerr.V("id", m.ID))
	}

	updated := copyKnowledgeMap(m)
	r.maps[updated.ID] = updated
	return copyKnowledgeMap(updated), nil
}

func (r *knowledgeRepository) DeleteMap(ctx context.Context, id types.KnowledgeMapID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.maps[id]; !exists {
		return goerr.Wrap(ErrNotFound, "knowledge mapping not found", goerr.V("id", id))
	}

	delete(r.maps, id)
	return nil
}

func (r *knowledgeRepository) ListMaps(ctx context.Context) ([]*model.KnowledgeMap, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*model.KnowledgeMap{}
	for _, m := range r.maps {
		result = append(result, copyKnowledgeMap(m))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *knowledgeRepository) CreateGuidance(ctx context.Context, g *model.Guidance) (*model.Guidance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyGuidance(g)
	created.ID = r.nextGuidanceID
	r.nextGuidanceID++

	r.guidance[created.ID] = created
	return copyGuidance(created), nil
}

func (r *knowledgeRepository) GetGuidance(ctx context.Context, id types.GuidanceID) (*model.Guidance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, exists := r.guidance[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "guidance not found", goerr.V("id", id))
	}

	return copyGuidance(g), nil
}

func (r *knowledgeRepository) GetGuidanceByTitle(ctx context.Context, mapID types.KnowledgeMapID, title string) (*model.Guidance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, g := range r.guidance {
		if g.KnowledgeMapID == mapID && g.Title == title {
			return copyGuidance(g), nil
		}
	}

	return nil, goerr.Wrap(ErrNotFound, "guidance not found",
		goerr.V("map_id", mapID), goerr.V("title", title))
}

func (r *knowledgeRepository) UpdateGuidance(ctx context.Context, g *model.Guidance) (*model.Guidance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.guidance[g.ID]; !exists {
		return nil, goerr.Wrap(ErrNotFound, "guidance not found", goerr.V("id", g.ID))
	}

	updated := copyGuidance(g)
	r.guidance[updated.ID] = updated
	return copyGuidance(updated), nil
}

func (r *knowledgeRepository) DeleteGuidance(ctx context.Context, id types.GuidanceID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.guidance[id]; !exists {
		return goerr.Wrap(ErrNotFound, "guidance not found", goerr.V("id", id))
	}

	delete(r.guidance, id)
	return nil
}

func (r *knowledgeRepository) ListGuidanceByMap(ctx context.Context, mapID types.KnowledgeMapID) ([]*model.Guidance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*model.Guidance{}
	for _, g := range r.guidance {
		if g.KnowledgeMapID == mapID {
			result = append(result, copyGuidance(g))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *knowledgeRepository) DeleteGuidanceByMap(ctx context.Context, mapID types.KnowledgeMapID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, g := range r.guidance {
		if g.KnowledgeMapID == mapID {
			delete(r.guidance, id)
		}
	}

	return nil
}
