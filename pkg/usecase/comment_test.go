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

func TestCommentUseCase(t *testing.T) {
	t.Run("notes require an existing ticket", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		alice := registerUser(t, uc, "alice")

		_, err := uc.Comment.Add(context.Background(), 404, alice.ID, "orphan note", types.StagePreparation)
		gt.True(t, errors.Is(err, usecase.ErrTicketNotFound))
	})

	t.Run("round trip with stage reassignment", func(t *testing.T) {
		uc, clock := newTestUseCases(t)
		ctx := context.Background()
		alice := registerUser(t, uc, "alice")
		queue := defaultQueue(t, uc)

		ticket, err := uc.Ticket.CreateManual(ctx, "Noted", "body", queue.ID, alice.ID, time.Time{})
		gt.NoError(t, err).Required()

		comment, err := uc.Comment.Add(ctx, ticket.ID, alice.ID, "initial triage", types.StageDetectionAnalysis)
		gt.NoError(t, err).Required()
		gt.V(t, comment.CreatedAt).Equal(clock.Now())

		gt.NoError(t, uc.Comment.Update(ctx, comment.ID, "triage complete", types.StageContainmentRecovery)).Required()

		ticketID, err := uc.Comment.TicketOf(ctx, comment.ID)
		gt.NoError(t, err).Required()
		gt.V(t, ticketID).Equal(ticket.ID)

		gt.NoError(t, uc.Comment.Remove(ctx, comment.ID)).Required()
		err = uc.Comment.Remove(ctx, comment.ID)
		gt.True(t, errors.Is(err, usecase.ErrCommentNotFound))
	})

	t.Run("rejects an out of range stage", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		alice := registerUser(t, uc, "alice")
		queue := defaultQueue(t, uc)

		ticket, err := uc.Ticket.CreateManual(ctx, "Staged", "body", queue.ID, alice.ID, time.Time{})
		gt.NoError(t, err).Required()

		_, err = uc.Comment.Add(ctx, ticket.ID, alice.ID, "bad stage", types.Stage(5))
		gt.Error(t, err)
	})
}
