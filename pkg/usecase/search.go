package usecase

import (
	"context"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mweegram/tickful/pkg/domain/interfaces"
	"github.com/mweegram/tickful/pkg/domain/model"
	"github.com/mweegram/tickful/pkg/domain/types"
)

// SearchUseCase runs free-text search across tickets, comments and key
// information, collapsing all matches to the tickets they belong to.
type SearchUseCase struct {
	repo interfaces.Repository
}

func NewSearchUseCase(repo interfaces.Repository) *SearchUseCase {
	return &SearchUseCase{repo: repo}
}

// Search returns one hit per distinct ticket whose title, content, comments
// or key information contain the term, newest first. An empty term returns
// no hits.
func (uc *SearchUseCase) Search(ctx context.Context, term string) ([]model.SearchHit, error) {
	if term == "" {
		return nil, nil
	}

	seen := map[types.TicketID]struct{}{}
	var ids []types.TicketID
	add := func(id types.TicketID) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	tickets, err := uc.repo.Ticket().SearchTitleContent(ctx, term)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to search tickets")
	}
	for _, ticket := range tickets {
		add(ticket.ID)
	}

	comments, err := uc.repo.Comment().SearchText(ctx, term)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to search comments")
	}
	for _, comment := range comments {
		add(comment.TicketID)
	}

	keyInfo, err := uc.repo.KeyInfo().SearchValueTag(ctx, term)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to search key info")
	}
	for _, record := range keyInfo {
		add(record.TicketID)
	}

	ownerNames := map[types.UserID]string{}
	hits := make([]model.SearchHit, 0, len(ids))
	for _, id := range ids {
		ticket, err := uc.repo.Ticket().Get(ctx, id)
		if err != nil {
			// A comment or key info row can outlive its ticket; skip it.
			continue
		}
		name, ok := ownerNames[ticket.OwnerID]
		if !ok {
			if owner, err := uc.repo.User().Get(ctx, ticket.OwnerID); err == nil {
				name = owner.Name
			}
			ownerNames[ticket.OwnerID] = name
		}
		hits = append(hits, model.SearchHit{
			TicketID:  ticket.ID,
			Title:     ticket.Title,
			CreatedAt: ticket.CreatedAt,
			OwnerName: name,
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if !hits[i].CreatedAt.Equal(hits[j].CreatedAt) {
			return hits[i].CreatedAt.After(hits[j].CreatedAt)
		}
		return hits[i].TicketID > hits[j].TicketID
	})

	return hits, nil
}
