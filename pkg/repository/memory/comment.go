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

type commentRepository struct {
	mu       sync.RWMutex
	comments map[types.CommentID]*model.Comment
	nextID   types.CommentID
}

func newCommentRepository() *commentRepository {
	return &commentRepository{
		comments: make(map[types.CommentID]*model.Comment),
		nextID:   1,
	}
}

func copyComment(c *model.Comment) *model.Comment {
	return &model.Comment{
		ID:        c.ID,
		TicketID:  c.TicketID,
		AuthorID:  c.AuthorID,
		Text:      c.Text,
		Stage:     c.Stage,
		CreatedAt: c.CreatedAt,
	}
}

func (r *commentRepository) Create(ctx context.Context, c *model.Comment) (*model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyComment(c)
	created.ID = r.nextID
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}
	r.nextID++

	r.comments[created.ID] = created
	return copyComment(created), nil
}

func (r *commentRepository) Get(ctx context.Context, id types.CommentID) (*model.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.comments[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "comment not found", goerr.V("id", id))
	}

	return copyComment(c), nil
}

func (r *commentRepository) Update(ctx context.Context, c *model.Comment) (*model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.comments[c.ID]; !exists {
		return nil, goerr.Wrap(ErrNotFound, "comment not found", goerr.V("id", c.ID))
	}

	updated := copyComment(c)
	r.comments[updated.ID] = updated
	return copyComment(updated), nil
}

func (r *commentRepository) Delete(ctx context.Context, id types.CommentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.comments[id]; !exists {
		return goerr.Wrap(ErrNotFound, "comment not found", goerr.V("id", id))
	}

	delete(r.comments, id)
	return nil
}

func (r *commentRepository) ListByTicket(ctx context.Context, ticketID types.TicketID) ([]*model.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*model.Comment{}
	for _, c := range r.comments {
		if c.TicketID == ticketID {
			result = append(result, copyComment(c))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

func (r *commentRepository) SearchText(ctx context.Context, term string) ([]*model.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*model.Comment{}
	for _, c := range r.comments {
		if strings.Contains(c.Text, term) {
			result = append(result, copyComment(c))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}
