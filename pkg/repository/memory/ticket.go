package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mweegram/tickful/pkg/domain/model"
	"github.com/mweegram/tickful/pkg/domain/types"
)

type ticketRepository struct {
	mu      sync.RWMutex
	tickets map[types.TicketID]*model.Ticket
	nextID  types.TicketID
}

func newTicketRepository() *ticketRepository {
	return &ticketRepository{
		tickets: make(map[types.TicketID]*model.Ticket),
		nextID:  1,
	}
}

// copyTicket creates a deep copy of a ticket
func copyTicket(t *model.Ticket) *model.Ticket {
	copied := &model.Ticket{
		ID:            t.ID,
		Title:         t.Title,
		Content:       t.Content,
		Status:        t.Status,
		OwnerID:       t.OwnerID,
		QueueID:       t.QueueID,
		CreatedAt:     t.CreatedAt,
		Determination: t.Determination,
	}
	if t.StartedAt != nil {
		started := *t.StartedAt
		copied.StartedAt = &started
	}
	if t.CompletedAt != nil {
		completed := *t.CompletedAt
		copied.CompletedAt = &completed
	}
	return copied
}

func (r *ticketRepository) Create(ctx context.Context, t *model.Ticket) (*model.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyTicket(t)
	created.ID = r.nextID
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}
	r.nextID++

	r.tickets[created.ID] = created
	return copyTicket(created), nil
}

func (r *ticketRepository) Get(ctx context.Context, id types.TicketID) (*model.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, exists := r.tickets[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "ticket not found", goerr.V("id", id))
	}

	return copyTicket(t), nil
}

func (r *ticketRepository) Update(ctx context.Context, t *model.Ticket) (*model.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tickets[t.ID]; !exists {
		return nil, goerr.Wrap(ErrNotFound, "ticket not found", goerr.V("id", t.ID))
	}

	updated := copyTicket(t)
	r.tickets[updated.ID] = updated
	return copyTicket(updated), nil
}

func (r *ticketRepository) Exists(ctx context.Context, id types.TicketID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.tickets[id]
	return exists, nil
}

func (r *ticketRepository) ListOpenByOwner(ctx context.Context, ownerID types.UserID) ([]*model.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*model.Ticket{}
	for _, t := range r.tickets {
		if t.OwnerID == ownerID && t.Status != types.TicketStatusResolved {
			result = append(result, copyTicket(t))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

func (r *ticketRepository) ListOpenByQueue(ctx context.Context, queueID types.QueueID) ([]*model.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*model.Ticket{}
	for _, t := range r.tickets {
		if t.QueueID == queueID && t.Status != types.TicketStatusResolved {
			result = append(result, copyTicket(t))
		}
	}

	sortByID(result)
	return result, nil
}

func (r *ticketRepository) ListCreatedSince(ctx context.Context, since time.Time, queueID types.QueueID) ([]*model.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*model.Ticket{}
	for _, t := range r.tickets {
		if !t.CreatedAt.After(since) {
			continue
		}
		if queueID != 0 && t.QueueID != queueID {
			continue
		}
		result = append(result, copyTicket(t))
	}

	sortByID(result)
	return result, nil
}

func (r *ticketRepository) ListStartedSince(ctx context.Context, since time.Time, queueID types.QueueID) ([]*model.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*model.Ticket{}
	for _, t := range r.tickets {
		if t.StartedAt == nil || !t.StartedAt.After(since) {
			continue
		}
		if queueID != 0 && t.QueueID != queueID {
			continue
		}
		result = append(result, copyTicket(t))
	}

	sortByID(result)
	return result, nil
}

func (r *ticketRepository) ListResolvedSince(ctx context.Context, since time.Time) ([]*model.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*model.Ticket{}
	for _, t := range r.tickets {
		if t.Status != types.TicketStatusResolved {
			continue
		}
		if t.CompletedAt == nil || !t.CompletedAt.After(since) {
			continue
		}
		result = append(result, copyTicket(t))
	}

	sortByID(result)
	return result, nil
}

func (r *ticketRepository) ListByTitleToken(ctx context.Context, token string) ([]*model.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Trailing space keeps "INC1" from matching "INC10"
	needle := token + " "

	result := []*model.Ticket{}
	for _, t := range r.tickets {
		if strings.Contains(t.Title, needle) {
			result = append(result, copyTicket(t))
		}
	}

	sortByID(result)
	return result, nil
}

func (r *ticketRepository) SearchTitleContent(ctx context.Context, term string) ([]*model.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*model.Ticket{}
	for _, t := range r.tickets {
		if strings.Contains(t.Title, term) || strings.Contains(t.Content, term) {
			result = append(result, copyTicket(t))
		}
	}

	sortByID(result)
	return result, nil
}

func sortByID(tickets []*model.Ticket) {
	sort.Slice(tickets, func(i, j int) bool {
		return tickets[i].ID < tickets[j].ID
	})
}
