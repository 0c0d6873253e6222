package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mweegram/tickful/pkg/domain/interfaces"
	"github.com/mweegram/tickful/pkg/domain/model"
	"github.com/mweegram/tickful/pkg/domain/types"
)

// ClosedLinkedComment is the explanatory note appended to tickets closed
// because they were linked to a root ticket.
const ClosedLinkedComment = "This ticket has been deemed to be related to another ticket and as such has been closed and linked to a Root Ticket. Visit the root ticket for further investigation."

// RelationUseCase owns the undirected relationship graph between tickets: no
// self-loops, no parallel edges.
type RelationUseCase struct {
	repo interfaces.Repository
	now  func() time.Time
}

func NewRelationUseCase(repo interfaces.Repository, now func() time.Time) *RelationUseCase {
	return &RelationUseCase{
		repo: repo,
		now:  now,
	}
}

// Link connects two tickets. A self-link, an unknown endpoint and an already
// linked pair all collapse to a single false outcome; callers that need the
// reason have nothing to discriminate on.
func (uc *RelationUseCase) Link(ctx context.Context, a, b types.TicketID) (bool, error) {
	rel := &model.Relationship{TicketOne: a, TicketTwo: b}
	if err := rel.Validate(); err != nil {
		return false, nil
	}

	for _, id := range []types.TicketID{a, b} {
		exists, err := uc.repo.Ticket().Exists(ctx, id)
		if err != nil {
			return false, goerr.Wrap(err, "failed to check ticket", goerr.V("ticket_id", id))
		}
		if !exists {
			return false, nil
		}
	}

	linked, err := uc.repo.Relationship().Exists(ctx, a, b)
	if err != nil {
		return false, goerr.Wrap(err, "failed to check relationship",
			goerr.V("ticket_one", a), goerr.V("ticket_two", b))
	}
	if linked {
		return false, nil
	}

	if _, err := uc.repo.Relationship().Create(ctx, rel); err != nil {
		return false, goerr.Wrap(err, "failed to create relationship",
			goerr.V("ticket_one", a), goerr.V("ticket_two", b))
	}

	return true, nil
}

// BulkLinkToRoot links every candidate to the root ticket and returns how
// many links were made. The whole operation fails only when no candidate
// succeeded; candidates that were invalid or already linked are not
// distinguished.
func (uc *RelationUseCase) BulkLinkToRoot(ctx context.Context, candidates []types.TicketID, rootID types.TicketID) (int, error) {
	linked := 0
	for _, candidate := range candidates {
		ok, err := uc.Link(ctx, rootID, candidate)
		if err != nil {
			return linked, err
		}
		if ok {
			linked++
		}
	}

	if linked == 0 {
		return 0, goerr.Wrap(ErrNoLinksCreated, "bulk link made no links", goerr.V("root_id", rootID))
	}

	return linked, nil
}

// CliqueLink links every pair in the given set. Every ordered pair is
// visited, so each unordered pair is attempted twice; the symmetric
// duplicate check makes the second attempt a no-op and the whole operation
// idempotent. Returns the number of links created.
func (uc *RelationUseCase) CliqueLink(ctx context.Context, ids []types.TicketID) (int, error) {
	created := 0
	for _, x := range ids {
		for _, y := range ids {
			ok, err := uc.Link(ctx, x, y)
			if err != nil {
				return created, err
			}
			if ok {
				created++
			}
		}
	}

	return created, nil
}

// CloseLinked resolves every unresolved ticket directly linked to the given
// one (one hop, not the connected component) and appends the standard
// explanation as a stage-1 comment by the actor. Partial completion is
// possible: an error partway leaves earlier tickets closed.
func (uc *RelationUseCase) CloseLinked(ctx context.Context, ticketID types.TicketID, actorID types.UserID) (int, error) {
	relationships, err := uc.repo.Relationship().ListByTicket(ctx, ticketID)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list relationships", goerr.V("ticket_id", ticketID))
	}

	closed := 0
	for _, rel := range relationships {
		otherID, _ := rel.Other(ticketID)

		other, err := uc.repo.Ticket().Get(ctx, otherID)
		if err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				continue
			}
			return closed, goerr.Wrap(err, "failed to get linked ticket", goerr.V("ticket_id", otherID))
		}
		if other.IsResolved() {
			continue
		}

		completed := uc.now()
		other.Status = types.TicketStatusResolved
		other.CompletedAt = &completed
		if _, err := uc.repo.Ticket().Update(ctx, other); err != nil {
			return closed, goerr.Wrap(err, "failed to close linked ticket", goerr.V("ticket_id", otherID))
		}

		comment := &model.Comment{
			TicketID:  otherID,
			AuthorID:  actorID,
			Text:      ClosedLinkedComment,
			Stage:     types.StagePreparation,
			CreatedAt: completed,
		}
		if _, err := uc.repo.Comment().Create(ctx, comment); err != nil {
			return closed, goerr.Wrap(err, "failed to append closing comment", goerr.V("ticket_id", otherID))
		}

		closed++
	}

	return closed, nil
}

// Unlink removes a relationship row
func (uc *RelationUseCase) Unlink(ctx context.Context, id types.RelationshipID) error {
	if err := uc.repo.Relationship().Delete(ctx, id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(ErrRelationNotFound, "cannot unlink", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to delete relationship", goerr.V("id", id))
	}
	return nil
}

// ListByTicket returns the links touching a ticket with the far endpoint
// resolved.
func (uc *RelationUseCase) ListByTicket(ctx context.Context, ticketID types.TicketID) ([]model.RelationView, error) {
	relationships, err := uc.repo.Relationship().ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list relationships", goerr.V("ticket_id", ticketID))
	}

	views := make([]model.RelationView, 0, len(relationships))
	for _, rel := range relationships {
		otherID, _ := rel.Other(ticketID)

		title := ""
		if other, err := uc.repo.Ticket().Get(ctx, otherID); err == nil {
			title = other.Title
		} else if !errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(err, "failed to resolve related ticket", goerr.V("ticket_id", otherID))
		}

		views = append(views, model.RelationView{
			RelationshipID: rel.ID,
			OtherTicketID:  otherID,
			OtherTitle:     title,
		})
	}

	return views, nil
}
