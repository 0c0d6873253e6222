package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mweegram/tickful/pkg/domain/model"
	"github.com/mweegram/tickful/pkg/domain/types"
)

type queueRepository struct {
	mu     sync.RWMutex
	queues map[types.QueueID]*model.Queue
	nextID types.QueueID
}

func newQueueRepository() *queueRepository {
	return &queueRepository{
		queues: make(map[types.QueueID]*model.Queue),
		nextID: 1,
	}
}

func copyQueue(q *model.Queue) *model.Queue {
	return &model.Queue{
		ID:   q.ID,
		Name: q.Name,
	}
}

func (r *queueRepository) Create(ctx context.Context, q *model.Queue) (*model.Queue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyQueue(q)
	created.ID = r.nextID
	r.nextID++

	r.queues[created.ID] = created
	return copyQueue(created), nil
}

func (r *queueRepository) Get(ctx context.Context, id types.QueueID) (*model.Queue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q, exists := r.queues[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "queue not found", goerr.V("id", id))
	}

	return copyQueue(q), nil
}

func (r *queueRepository) GetByName(ctx context.Context, name string) (*model.Queue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, q := range r.queues {
		if q.Name == name {
			return copyQueue(q), nil
		}
	}

	return nil, goerr.Wrap(ErrNotFound, "queue not found", goerr.V("name", name))
}

func (r *queueRepository) List(ctx context.Context) ([]*model.Queue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Queue, 0, len(r.queues))
	for _, q := range r.queues {
		result = append(result, copyQueue(q))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}
