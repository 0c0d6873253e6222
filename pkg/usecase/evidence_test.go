package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/mweegram/tickful/pkg/domain/model"
	"github.com/mweegram/tickful/pkg/domain/types"
	"github.com/mweegram/tickful/pkg/usecase"
)

func TestEvidenceUseCase_Upsert(t *testing.T) {
	t.Run("repeating a value keeps one record with the latest tag", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		alice := registerUser(t, uc, "alice")
		queue := defaultQueue(t, uc)

		ticket, err := uc.Ticket.CreateManual(ctx, "Dedup", "body", queue.ID, alice.ID, time.Time{})
		gt.NoError(t, err).Required()

		first, err := uc.Evidence.Upsert(ctx, ticket.ID, "203.0.113.9", "first sighting")
		gt.NoError(t, err).Required()

		second, err := uc.Evidence.Upsert(ctx, ticket.ID, "203.0.113.9", "confirmed C2")
		gt.NoError(t, err).Required()
		gt.V(t, second.ID).Equal(first.ID)
		gt.V(t, second.Tag).Equal("confirmed C2")

		records, err := uc.Evidence.ListByTicket(ctx, ticket.ID)
		gt.NoError(t, err).Required()
		gt.A(t, records).Length(1)
		gt.V(t, records[0].Tag).Equal("confirmed C2")
	})

	t.Run("the same value on different tickets is independent", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		alice := registerUser(t, uc, "alice")
		queue := defaultQueue(t, uc)

		one, err := uc.Ticket.CreateManual(ctx, "One", "body", queue.ID, alice.ID, time.Time{})
		gt.NoError(t, err).Required()
		two, err := uc.Ticket.CreateManual(ctx, "Two", "body", queue.ID, alice.ID, time.Time{})
		gt.NoError(t, err).Required()

		_, err = uc.Evidence.Upsert(ctx, one.ID, "203.0.113.9", "seen here")
		gt.NoError(t, err).Required()
		_, err = uc.Evidence.Upsert(ctx, two.ID, "203.0.113.9", "seen there")
		gt.NoError(t, err).Required()

		records, err := uc.Evidence.ListByValue(ctx, "203.0.113.9")
		gt.NoError(t, err).Required()
		gt.A(t, records).Length(2)
	})
}

func TestEvidenceUseCase_BulkAutoInsert(t *testing.T) {
	t.Run("skips empties and values already present", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		alice := registerUser(t, uc, "alice")
		queue := defaultQueue(t, uc)

		ticket, err := uc.Ticket.CreateManual(ctx, "Bulk", "body", queue.ID, alice.ID, time.Time{})
		gt.NoError(t, err).Required()

		_, err = uc.Evidence.Upsert(ctx, ticket.ID, "10.0.0.1", "manually entered")
		gt.NoError(t, err).Required()

		inserted, err := uc.Evidence.BulkAutoInsert(ctx, ticket.ID, []string{"10.0.0.1", "", "10.0.0.2", "10.0.0.2"})
		gt.NoError(t, err).Required()
		gt.V(t, inserted).Equal(1)

		records, err := uc.Evidence.ListByTicket(ctx, ticket.ID)
		gt.NoError(t, err).Required()
		gt.A(t, records).Length(2)

		for _, record := range records {
			if record.Value == "10.0.0.1" {
				// The manual record is untouched by the automated pass.
				gt.V(t, record.Tag).Equal("manually entered")
			} else {
				gt.V(t, record.Tag).Equal(model.AutoExtractedTag)
			}
		}
	})

	t.Run("empty candidate list is a no-op", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		inserted, err := uc.Evidence.BulkAutoInsert(context.Background(), 1, nil)
		gt.NoError(t, err)
		gt.V(t, inserted).Equal(0)
	})
}

func TestEvidenceUseCase_Update(t *testing.T) {
	t.Run("colliding with a sibling value is a duplicate outcome", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		alice := registerUser(t, uc, "alice")
		queue := defaultQueue(t, uc)

		ticket, err := uc.Ticket.CreateManual(ctx, "Collide", "body", queue.ID, alice.ID, time.Time{})
		gt.NoError(t, err).Required()

		_, err = uc.Evidence.Upsert(ctx, ticket.ID, "alpha", "a")
		gt.NoError(t, err).Required()
		target, err := uc.Evidence.Upsert(ctx, ticket.ID, "beta", "b")
		gt.NoError(t, err).Required()

		ok, err := uc.Evidence.Update(ctx, target.ID, "alpha", "renamed")
		gt.NoError(t, err)
		gt.False(t, ok)

		unchanged, err := uc.Repo().KeyInfo().Get(ctx, target.ID)
		gt.NoError(t, err).Required()
		gt.V(t, unchanged.Value).Equal("beta")
	})

	t.Run("rewriting to itself with a new tag succeeds", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		alice := registerUser(t, uc, "alice")
		queue := defaultQueue(t, uc)

		ticket, err := uc.Ticket.CreateManual(ctx, "Self", "body", queue.ID, alice.ID, time.Time{})
		gt.NoError(t, err).Required()

		record, err := uc.Evidence.Upsert(ctx, ticket.ID, "alpha", "a")
		gt.NoError(t, err).Required()

		ok, err := uc.Evidence.Update(ctx, record.ID, "alpha", "retagged")
		gt.NoError(t, err)
		gt.True(t, ok)

		updated, err := uc.Repo().KeyInfo().Get(ctx, record.ID)
		gt.NoError(t, err).Required()
		gt.V(t, updated.Tag).Equal("retagged")
	})

	t.Run("missing record is an error", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		_, err := uc.Evidence.Update(context.Background(), 404, "x", "y")
		gt.True(t, errors.Is(err, usecase.ErrKeyInfoNotFound))
	})
}

func TestEvidenceUseCase_Stats(t *testing.T) {
	t.Run("false positive percentage covers resolved carriers only", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		alice := registerUser(t, uc, "alice")
		queue := defaultQueue(t, uc)

		carriers := make([]*model.Ticket, 0, 3)
		for _, title := range []string{"T5", "T6", "T7"} {
			ticket, err := uc.Ticket.CreateManual(ctx, title, "body", queue.ID, alice.ID, time.Time{})
			gt.NoError(t, err).Required()
			_, err = uc.Evidence.Upsert(ctx, ticket.ID, "badguy@evil.example", "sender")
			gt.NoError(t, err).Required()
			carriers = append(carriers, ticket)
		}

		gt.NoError(t, uc.Ticket.Resolve(ctx, carriers[0].ID, types.DeterminationFalsePositive)).Required()
		gt.NoError(t, uc.Ticket.Resolve(ctx, carriers[1].ID, types.DeterminationTruePositive)).Required()
		// carriers[2] stays open and must not dilute the percentage.

		stats, err := uc.Evidence.Stats(ctx, "badguy@evil.example")
		gt.NoError(t, err).Required()
		gt.V(t, stats.Total).Equal(3)
		gt.V(t, stats.FalsePositivePct).Equal(50)
		gt.V(t, stats.Volume7d).Equal(3)
	})

	t.Run("no resolved carriers means zero percent", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		alice := registerUser(t, uc, "alice")
		queue := defaultQueue(t, uc)

		ticket, err := uc.Ticket.CreateManual(ctx, "Open carrier", "body", queue.ID, alice.ID, time.Time{})
		gt.NoError(t, err).Required()
		_, err = uc.Evidence.Upsert(ctx, ticket.ID, "10.0.0.9", "host")
		gt.NoError(t, err).Required()

		stats, err := uc.Evidence.Stats(ctx, "10.0.0.9")
		gt.NoError(t, err).Required()
		gt.V(t, stats.Total).Equal(1)
		gt.V(t, stats.FalsePositivePct).Equal(0)
	})

	t.Run("old carriers fall out of the seven day volume", func(t *testing.T) {
		uc, clock := newTestUseCases(t)
		ctx := context.Background()
		alice := registerUser(t, uc, "alice")
		queue := defaultQueue(t, uc)

		old := clock.Now().Add(-8 * 24 * time.Hour)
		stale, err := uc.Ticket.CreateManual(ctx, "Stale", "body", queue.ID, alice.ID, old)
		gt.NoError(t, err).Required()
		_, err = uc.Evidence.Upsert(ctx, stale.ID, "shared-value", "old")
		gt.NoError(t, err).Required()

		fresh, err := uc.Ticket.CreateManual(ctx, "Fresh", "body", queue.ID, alice.ID, time.Time{})
		gt.NoError(t, err).Required()
		_, err = uc.Evidence.Upsert(ctx, fresh.ID, "shared-value", "new")
		gt.NoError(t, err).Required()

		stats, err := uc.Evidence.Stats(ctx, "shared-value")
		gt.NoError(t, err).Required()
		gt.V(t, stats.Total).Equal(2)
		gt.V(t, stats.Volume7d).Equal(1)
	})
}
