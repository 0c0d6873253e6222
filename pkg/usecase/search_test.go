package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/mweegram/tickful/pkg/domain/types"
)

func TestSearchUseCase_Search(t *testing.T) {
	t.Run("unions ticket, comment and key info matches per ticket", func(t *testing.T) {
		uc, clock := newTestUseCases(t)
		ctx := context.Background()
		alice := registerUser(t, uc, "alice")
		queue := defaultQueue(t, uc)

		// Matches on the title.
		byTitle, err := uc.Ticket.CreateManual(ctx, "beacon traffic observed", "body", queue.ID, alice.ID, time.Time{})
		gt.NoError(t, err).Required()

		// Matches only through a comment.
		clock.Advance(time.Minute)
		byComment, err := uc.Ticket.CreateManual(ctx, "unrelated title", "unrelated body", queue.ID, alice.ID, time.Time{})
		gt.NoError(t, err).Required()
		_, err = uc.Comment.Add(ctx, byComment.ID, alice.ID, "periodic beacon every 60s", types.StageDetectionAnalysis)
		gt.NoError(t, err).Required()

		// Matches only through key information.
		clock.Advance(time.Minute)
		byKeyInfo, err := uc.Ticket.CreateManual(ctx, "another title", "another body", queue.ID, alice.ID, time.Time{})
		gt.NoError(t, err).Required()
		_, err = uc.Evidence.Upsert(ctx, byKeyInfo.ID, "beacon.evil.example", "domain")
		gt.NoError(t, err).Required()

		// Matches nothing.
		clock.Advance(time.Minute)
		_, err = uc.Ticket.CreateManual(ctx, "quiet ticket", "nothing here", queue.ID, alice.ID, time.Time{})
		gt.NoError(t, err).Required()

		hits, err := uc.Search.Search(ctx, "beacon")
		gt.NoError(t, err).Required()
		gt.A(t, hits).Length(3)

		// Newest first.
		gt.V(t, hits[0].TicketID).Equal(byKeyInfo.ID)
		gt.V(t, hits[1].TicketID).Equal(byComment.ID)
		gt.V(t, hits[2].TicketID).Equal(byTitle.ID)
		gt.V(t, hits[2].OwnerName).Equal("alice")
	})

	t.Run("a ticket matching several ways appears once", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		alice := registerUser(t, uc, "alice")
		queue := defaultQueue(t, uc)

		ticket, err := uc.Ticket.CreateManual(ctx, "beacon in title", "beacon in body", queue.ID, alice.ID, time.Time{})
		gt.NoError(t, err).Required()
		_, err = uc.Comment.Add(ctx, ticket.ID, alice.ID, "beacon in comment", types.StagePreparation)
		gt.NoError(t, err).Required()
		_, err = uc.Evidence.Upsert(ctx, ticket.ID, "beacon-value", "beacon tag")
		gt.NoError(t, err).Required()

		hits, err := uc.Search.Search(ctx, "beacon")
		gt.NoError(t, err).Required()
		gt.A(t, hits).Length(1)
		gt.V(t, hits[0].TicketID).Equal(ticket.ID)
	})

	t.Run("empty term returns nothing", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		hits, err := uc.Search.Search(context.Background(), "")
		gt.NoError(t, err)
		gt.A(t, hits).Length(0)
	})
}
