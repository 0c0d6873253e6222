package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mweegram/tickful/pkg/domain/model"
	"github.com/mweegram/tickful/pkg/domain/types"
)

type relationshipRepository struct {
	mu      sync.RWMutex
	records map[types.RelationshipID]*model.Relationship
	nextID  types.RelationshipID
}

func newRelationshipRepository() *relationshipRepository {
	return &relationshipRepository{
		records: make(map[types.RelationshipID]*model.Relationship),
		nextID:  1,
	}
}

func copyRelationship(rel *model.Relationship) *model.Relationship {
	return &model.Relationship{
		ID:        rel.ID,
		TicketOne: rel.TicketOne,
		TicketTwo: rel.TicketTwo,
	}
}

func (r *relationshipRepository) Create(ctx context.Context, rel *model.Relationship) (*model.Relationship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyRelationship(rel)
	created.ID = r.nextID
	r.nextID++

	r.records[created.ID] = created
	return copyRelationship(created), nil
}

func (r *relationshipRepository) Get(ctx context.Context, id types.RelationshipID) (*model.Relationship, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rel, exists := r.records[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "relationship not found", goerr.V("id", id))
	}

	return copyRelationship(rel), nil
}

func (r *relationshipRepository) Delete(ctx context.Context, id types.RelationshipID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[id]; !exists {
		return goerr.Wrap(ErrNotFound, "relationship not found", goerr.V("id", id))
	}

	delete(r.records, id)
	return nil
}

func (r *relationshipRepository) Exists(ctx context.Context, a, b types.TicketID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rel := range r.records {
		if (rel.TicketOne == a && rel.TicketTwo == b) ||
			(rel.TicketOne == b && rel.TicketTwo == a) {
			return true, nil
		}
	}

	return false, nil
}

func (r *relationshipRepository) ListByTicket(ctx context.Context, ticketID types.TicketID) ([]*model.Relationship, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*model.Relationship{}
	for _, rel := range r.records {
		if rel.TicketOne == ticketID || rel.TicketTwo == ticketID {
			result = append(result, copyRelationship(rel))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}
