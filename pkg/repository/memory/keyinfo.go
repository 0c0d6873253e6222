package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mweegram/tickful/pkg/domain/model"
	"github.com/mweegram/tickful/pkg/domain/types"
)

type keyInfoRepository struct {
	mu      sync.RWMutex
	records map[types.KeyInfoID]*model.KeyInfo
	nextID  types.KeyInfoID
}

func newKeyInfoRepository() *keyInfoRepository {
	return &keyInfoRepository{
		records: make(map[types.KeyInfoID]*model.KeyInfo),
		nextID:  1,
	}
}

func copyKeyInfo(k *model.KeyInfo) *model.KeyInfo {
	return &model.KeyInfo{
		ID:       k.ID,
		TicketID: k.TicketID,
		Value:    k.Value,
		Tag:      k.Tag,
	}
}

func (r *keyInfoRepository) Create(ctx context.Context, k *model.KeyInfo) (*model.KeyInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyKeyInfo(k)
	created.ID = r.nextID
	r.nextID++

	r.records[created.ID] = created
	return copyKeyInfo(created), nil
}

func (r *keyInfoRepository) Get(ctx context.Context, id types.KeyInfoID) (*model.KeyInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	k, exists := r.records[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "key info not found", goerr.V("id", id))
	}

	return copyKeyInfo(k), nil
}

func (r *keyInfoRepository) GetByTicketValue(ctx context.Context, ticketID types.TicketID, value string) (*model.KeyInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, k := range r.records {
		if k.TicketID == ticketID && k.Value == value {
			return copyKeyInfo(k), nil
		}
	}

	return nil, goerr.Wrap(ErrNotFound, "key info not found",
		goerr.V("ticket_id", ticketID), goerr.V("value", value))
}

func (r *keyInfoRepository) Update(ctx context.Context, k *model.KeyInfo) (*model.KeyInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[k.ID]; !exists {
		return nil, goerr.Wrap(ErrNotFound, "key info not found", goerr.V("id", k.ID))
	}

	updated := copyKeyInfo(k)
	r.records[updated.ID] = updated
	return copyKeyInfo(updated), nil
}

func (r *keyInfoRepository) Delete(ctx context.Context, id types.KeyInfoID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[id]; !exists {
		return goerr.Wrap(ErrNotFound, "key info not found", goerr.V("id", id))
	}

	delete(r.records, id)
	return nil
}

func (r *keyInfoRepository) ListByTicket(ctx context.Context, ticketID types.TicketID) ([]*model.KeyInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*model.KeyInfo{}
	for _, k := range r.records {
		if k.TicketID == ticketID {
			result = append(result, copyKeyInfo(k))
		}
	}

	sortKeyInfo(result)
	return result, nil
}

func (r *keyInfoRepository) ListByValue(ctx context.Context, value string) ([]*model.KeyInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*model.KeyInfo{}
	for _, k := range r.records {
		if k.Value == value {
			result = append(result, copyKeyInfo(k))
		}
	}

	sortKeyInfo(result)
	return result, nil
}

func (r *keyInfoRepository) SearchValueTag(ctx context.Context, term string) ([]*model.KeyInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*model.KeyInfo{}
	for _, k := range r.records {
		if strings.Contains(k.Value, term) || strings.Contains(k.Tag, term) {
			result = append(result, copyKeyInfo(k))
		}
	}

	sortKeyInfo(result)
	return result, nil
}

func sortKeyInfo(records []*model.KeyInfo) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].ID < records[j].ID
	})
}
