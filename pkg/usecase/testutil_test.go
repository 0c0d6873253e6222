package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/mweegram/tickful/pkg/domain/model"
	"github.com/mweegram/tickful/pkg/repository/memory"
	"github.com/mweegram/tickful/pkg/usecase"
)

// testClock is a mutable clock injected through WithNow so tests can anchor
// the rolling analytics windows.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// newTestUseCases builds a bootstrapped engine on the in-memory backend with
// a controllable clock.
func newTestUseCases(t *testing.T) (*usecase.UseCases, *testClock) {
	t.Helper()

	repo := memory.New()
	clock := newTestClock()
	uc := usecase.New(repo, usecase.WithNow(clock.Now))

	gt.NoError(t, uc.Directory.Bootstrap(context.Background())).Required()

	return uc, clock
}

func registerUser(t *testing.T, uc *usecase.UseCases, name string) *model.User {
	t.Helper()

	user, err := uc.Directory.Register(context.Background(), name, "s3cret-"+name, name+"@example.com", 0)
	gt.NoError(t, err).Required()
	return user
}

func defaultQueue(t *testing.T, uc *usecase.UseCases) *model.Queue {
	t.Helper()

	queue, err := uc.Repo().Queue().GetByName(context.Background(), model.DefaultQueueName)
	gt.NoError(t, err).Required()
	return queue
}
