package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/mweegram/tickful/pkg/domain/types"
	"github.com/mweegram/tickful/pkg/usecase"
)

func TestKnowledgeUseCase_MapFromTitle(t *testing.T) {
	uc, _ := newTestUseCases(t)
	ctx := context.Background()

	mapping, err := uc.Knowledge.CreateMap(ctx, "Phishing campaign", "playbook body")
	gt.NoError(t, err).Required()

	t.Run("resolves the token to its mapping", func(t *testing.T) {
		found, err := uc.Knowledge.MapFromTitle(ctx, "INC"+mapping.ID.String()+" phishing reported by finance")
		gt.NoError(t, err).Required()
		gt.V(t, found).NotNil()
		gt.V(t, found.ID).Equal(mapping.ID)
	})

	t.Run("token anywhere in the title works", func(t *testing.T) {
		found, err := uc.Knowledge.MapFromTitle(ctx, "urgent INC"+mapping.ID.String()+" escalation")
		gt.NoError(t, err).Required()
		gt.V(t, found).NotNil()
	})

	t.Run("non numeric remainder means no mapping", func(t *testing.T) {
		found, err := uc.Knowledge.MapFromTitle(ctx, "INCIDENT in the payment flow")
		gt.NoError(t, err)
		gt.V(t, found).Nil()
	})

	t.Run("unknown mapping id means no mapping", func(t *testing.T) {
		found, err := uc.Knowledge.MapFromTitle(ctx, "INC9999 unexplained alert")
		gt.NoError(t, err)
		gt.V(t, found).Nil()
	})

	t.Run("title without a token means no mapping", func(t *testing.T) {
		found, err := uc.Knowledge.MapFromTitle(ctx, "plain suspicious email")
		gt.NoError(t, err)
		gt.V(t, found).Nil()
	})
}

func TestKnowledgeUseCase_StatsForMapping(t *testing.T) {
	t.Run("counts referencing tickets and their outcomes", func(t *testing.T) {
		uc, clock := newTestUseCases(t)
		ctx := context.Background()
		alice := registerUser(t, uc, "alice")
		queue := defaultQueue(t, uc)

		mapping, err := uc.Knowledge.CreateMap(ctx, "Malware family X", "body")
		gt.NoError(t, err).Required()
		token := "INC" + mapping.ID.String()

		old := clock.Now().Add(-10 * 24 * time.Hour)
		stale, err := uc.Ticket.CreateManual(ctx, token+" old wave", "body", queue.ID, alice.ID, old)
		gt.NoError(t, err).Required()
		gt.NoError(t, uc.Ticket.Resolve(ctx, stale.ID, types.DeterminationFalsePositive)).Required()

		fresh, err := uc.Ticket.CreateManual(ctx, token+" new wave", "body", queue.ID, alice.ID, time.Time{})
		gt.NoError(t, err).Required()
		gt.NoError(t, uc.Ticket.Resolve(ctx, fresh.ID, types.DeterminationTruePositive)).Required()

		// INC<id> followed by more digits is a different token.
		_, err = uc.Ticket.CreateManual(ctx, token+"0 unrelated", "body", queue.ID, alice.ID, time.Time{})
		gt.NoError(t, err).Required()

		stats, err := uc.Knowledge.StatsForMapping(ctx, mapping.ID)
		gt.NoError(t, err).Required()
		gt.V(t, stats.Total).Equal(2)
		gt.V(t, stats.FalsePositivePct).Equal(50)
		gt.V(t, stats.Volume7d).Equal(1)
	})

	t.Run("missing mapping is an error", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		_, err := uc.Knowledge.StatsForMapping(context.Background(), 404)
		gt.True(t, errors.Is(err, usecase.ErrKnowledgeMapNotFound))
	})
}

func TestKnowledgeUseCase_MapCRUD(t *testing.T) {
	t.Run("titles are unique across mappings", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()

		_, err := uc.Knowledge.CreateMap(ctx, "Ransomware", "body")
		gt.NoError(t, err).Required()

		_, err = uc.Knowledge.CreateMap(ctx, "Ransomware", "other body")
		gt.True(t, errors.Is(err, usecase.ErrDuplicateTitle))
	})

	t.Run("update keeps uniqueness but allows keeping its own title", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()

		first, err := uc.Knowledge.CreateMap(ctx, "First", "body")
		gt.NoError(t, err).Required()
		second, err := uc.Knowledge.CreateMap(ctx, "Second", "body")
		gt.NoError(t, err).Required()

		gt.NoError(t, uc.Knowledge.UpdateMap(ctx, second.ID, "Second", "revised")).Required()

		err = uc.Knowledge.UpdateMap(ctx, second.ID, "First", "revised")
		gt.True(t, errors.Is(err, usecase.ErrDuplicateTitle))

		_ = first
	})

	t.Run("deleting a mapping removes its guidance", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()

		doomed, err := uc.Knowledge.CreateMap(ctx, "Doomed", "body")
		gt.NoError(t, err).Required()
		survivor, err := uc.Knowledge.CreateMap(ctx, "Survivor", "body")
		gt.NoError(t, err).Required()

		_, err = uc.Knowledge.AddGuidance(ctx, doomed.ID, "Step one", "isolate")
		gt.NoError(t, err).Required()
		kept, err := uc.Knowledge.AddGuidance(ctx, survivor.ID, "Step one", "observe")
		gt.NoError(t, err).Required()

		gt.NoError(t, uc.Knowledge.DeleteMap(ctx, doomed.ID)).Required()

		_, err = uc.Knowledge.GetMap(ctx, doomed.ID)
		gt.True(t, errors.Is(err, usecase.ErrKnowledgeMapNotFound))

		entries, err := uc.Knowledge.ListGuidance(ctx, doomed.ID)
		gt.NoError(t, err).Required()
		gt.A(t, entries).Length(0)

		entries, err = uc.Knowledge.ListGuidance(ctx, survivor.ID)
		gt.NoError(t, err).Required()
		gt.A(t, entries).Length(1)
		gt.V(t, entries[0].ID).Equal(kept.ID)
	})
}

func TestKnowledgeUseCase_Guidance(t *testing.T) {
	t.Run("titles are unique within a mapping only", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()

		one, err := uc.Knowledge.CreateMap(ctx, "One", "body")
		gt.NoError(t, err).Required()
		two, err := uc.Knowledge.CreateMap(ctx, "Two", "body")
		gt.NoError(t, err).Required()

		_, err = uc.Knowledge.AddGuidance(ctx, one.ID, "Containment", "steps")
		gt.NoError(t, err).Required()

		_, err = uc.Knowledge.AddGuidance(ctx, one.ID, "Containment", "other steps")
		gt.True(t, errors.Is(err, usecase.ErrDuplicateTitle))

		_, err = uc.Knowledge.AddGuidance(ctx, two.ID, "Containment", "steps elsewhere")
		gt.NoError(t, err)
	})

	t.Run("guidance under an unknown mapping is rejected", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		_, err := uc.Knowledge.AddGuidance(context.Background(), 404, "Orphan", "body")
		gt.True(t, errors.Is(err, usecase.ErrKnowledgeMapNotFound))
	})

	t.Run("update and removal round trip", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()

		mapping, err := uc.Knowledge.CreateMap(ctx, "Mapping", "body")
		gt.NoError(t, err).Required()
		entry, err := uc.Knowledge.AddGuidance(ctx, mapping.ID, "Draft", "wip")
		gt.NoError(t, err).Required()

		gt.NoError(t, uc.Knowledge.UpdateGuidance(ctx, entry.ID, "Final", "done")).Required()

		entries, err := uc.Knowledge.ListGuidance(ctx, mapping.ID)
		gt.NoError(t, err).Required()
		gt.A(t, entries).Length(1)
		gt.V(t, entries[0].Title).Equal("Final")

		gt.NoError(t, uc.Knowledge.RemoveGuidance(ctx, entry.ID)).Required()
		err = uc.Knowledge.RemoveGuidance(ctx, entry.ID)
		gt.True(t, errors.Is(err, usecase.ErrGuidanceNotFound))
	})
}
