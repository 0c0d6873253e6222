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

func makeTickets(t *testing.T, uc *usecase.UseCases, n int) []*model.Ticket {
	t.Helper()
	ctx := context.Background()
	alice := registerUser(t, uc, "linker")
	queue := defaultQueue(t, uc)

	tickets := make([]*model.Ticket, 0, n)
	for i := 0; i < n; i++ {
		ticket, err := uc.Ticket.CreateManual(ctx, "Linked "+types.TicketID(i+1).String(), "body", queue.ID, alice.ID, time.Time{})
		gt.NoError(t, err).Required()
		tickets = append(tickets, ticket)
	}
	return tickets
}

func TestRelationUseCase_Link(t *testing.T) {
	t.Run("links two tickets once regardless of order", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		tickets := makeTickets(t, uc, 2)

		ok, err := uc.Relation.Link(ctx, tickets[0].ID, tickets[1].ID)
		gt.NoError(t, err).Required()
		gt.True(t, ok)

		// The reverse orientation is the same edge.
		ok, err = uc.Relation.Link(ctx, tickets[1].ID, tickets[0].ID)
		gt.NoError(t, err)
		gt.False(t, ok)

		relations, err := uc.Relation.ListByTicket(ctx, tickets[0].ID)
		gt.NoError(t, err).Required()
		gt.A(t, relations).Length(1)
		gt.V(t, relations[0].OtherTicketID).Equal(tickets[1].ID)
	})

	t.Run("self links and unknown endpoints are rejected quietly", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		tickets := makeTickets(t, uc, 1)

		ok, err := uc.Relation.Link(ctx, tickets[0].ID, tickets[0].ID)
		gt.NoError(t, err)
		gt.False(t, ok)

		ok, err = uc.Relation.Link(ctx, tickets[0].ID, 404)
		gt.NoError(t, err)
		gt.False(t, ok)
	})
}

func TestRelationUseCase_CliqueLink(t *testing.T) {
	t.Run("three tickets yield exactly three edges", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		tickets := makeTickets(t, uc, 3)

		ids := []types.TicketID{tickets[0].ID, tickets[1].ID, tickets[2].ID}
		created, err := uc.Relation.CliqueLink(ctx, ids)
		gt.NoError(t, err).Required()
		gt.V(t, created).Equal(3)

		for _, id := range ids {
			relations, err := uc.Relation.ListByTicket(ctx, id)
			gt.NoError(t, err).Required()
			gt.A(t, relations).Length(2)
		}

		// Running it again finds every pair already linked.
		created, err = uc.Relation.CliqueLink(ctx, ids)
		gt.NoError(t, err)
		gt.V(t, created).Equal(0)
	})
}

func TestRelationUseCase_BulkLinkToRoot(t *testing.T) {
	t.Run("counts successful links and tolerates bad candidates", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		tickets := makeTickets(t, uc, 3)

		linked, err := uc.Relation.BulkLinkToRoot(ctx, []types.TicketID{tickets[1].ID, tickets[2].ID, 404, tickets[0].ID}, tickets[0].ID)
		gt.NoError(t, err).Required()
		gt.V(t, linked).Equal(2)
	})

	t.Run("making no links at all is an error", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		tickets := makeTickets(t, uc, 1)

		_, err := uc.Relation.BulkLinkToRoot(ctx, []types.TicketID{tickets[0].ID, 404}, tickets[0].ID)
		gt.True(t, errors.Is(err, usecase.ErrNoLinksCreated))
	})
}

func TestRelationUseCase_CloseLinked(t *testing.T) {
	t.Run("closes direct neighbors and leaves the rest alone", func(t *testing.T) {
		uc, clock := newTestUseCases(t)
		ctx := context.Background()
		tickets := makeTickets(t, uc, 4)
		actor := registerUser(t, uc, "closer")

		// root - a - b chain plus a neighbor already resolved.
		root, a, b, done := tickets[0], tickets[1], tickets[2], tickets[3]
		for _, pair := range [][2]types.TicketID{{root.ID, a.ID}, {a.ID, b.ID}, {root.ID, done.ID}} {
			ok, err := uc.Relation.Link(ctx, pair[0], pair[1])
			gt.NoError(t, err).Required()
			gt.True(t, ok)
		}
		gt.NoError(t, uc.Ticket.Resolve(ctx, done.ID, types.DeterminationTruePositive)).Required()

		clock.Advance(time.Hour)
		closed, err := uc.Relation.CloseLinked(ctx, root.ID, actor.ID)
		gt.NoError(t, err).Required()
		gt.V(t, closed).Equal(1)

		closedTicket, err := uc.Repo().Ticket().Get(ctx, a.ID)
		gt.NoError(t, err).Required()
		gt.V(t, closedTicket.Status).Equal(types.TicketStatusResolved)
		gt.V(t, closedTicket.CompletedAt).NotNil()
		gt.V(t, *closedTicket.CompletedAt).Equal(clock.Now())

		comments, err := uc.Repo().Comment().ListByTicket(ctx, a.ID)
		gt.NoError(t, err).Required()
		gt.A(t, comments).Length(1)
		gt.V(t, comments[0].Text).Equal(usecase.ClosedLinkedComment)
		gt.V(t, comments[0].Stage).Equal(types.StagePreparation)
		gt.V(t, comments[0].AuthorID).Equal(actor.ID)

		// Two hops away is out of scope.
		far, err := uc.Repo().Ticket().Get(ctx, b.ID)
		gt.NoError(t, err).Required()
		gt.False(t, far.IsResolved())

		// Already-resolved neighbors are skipped, not double-commented.
		comments, err = uc.Repo().Comment().ListByTicket(ctx, done.ID)
		gt.NoError(t, err).Required()
		gt.A(t, comments).Length(0)
	})
}

func TestRelationUseCase_Unlink(t *testing.T) {
	t.Run("removes the edge", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		tickets := makeTickets(t, uc, 2)

		ok, err := uc.Relation.Link(ctx, tickets[0].ID, tickets[1].ID)
		gt.NoError(t, err).Required()
		gt.True(t, ok)

		relations, err := uc.Relation.ListByTicket(ctx, tickets[0].ID)
		gt.NoError(t, err).Required()
		gt.A(t, relations).Length(1)

		gt.NoError(t, uc.Relation.Unlink(ctx, relations[0].RelationshipID)).Required()

		relations, err = uc.Relation.ListByTicket(ctx, tickets[0].ID)
		gt.NoError(t, err).Required()
		gt.A(t, relations).Length(0)
	})

	t.Run("missing edge is an error", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		err := uc.Relation.Unlink(context.Background(), 404)
		gt.True(t, errors.Is(err, usecase.ErrRelationNotFound))
	})
}
