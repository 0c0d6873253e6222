package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mweegram/tickful/pkg/domain/interfaces"
	"github.com/mweegram/tickful/pkg/domain/model"
	"github.com/mweegram/tickful/pkg/domain/types"
)

// KnowledgeUseCase owns the knowledge mapping catalog and the title-token
// linkage that associates tickets with mappings.
type KnowledgeUseCase struct {
	repo interfaces.Repository
	now  func() time.Time
}

func NewKnowledgeUseCase(repo interfaces.Repository, now func() time.Time) *KnowledgeUseCase {
	return &KnowledgeUseCase{
		repo: repo,
		now:  now,
	}
}

// MapFromTitle resolves the knowledge mapping a ticket title refers to. The
// first whitespace-delimited token containing "INC" has the substring
// stripped; if the remainder is the numeric ID of an existing mapping, that
// mapping is returned. Any other shape means no mapping (nil, nil).
func (uc *KnowledgeUseCase) MapFromTitle(ctx context.Context, title string) (*model.KnowledgeMap, error) {
	for _, token := range strings.Fields(title) {
		if !strings.Contains(token, model.KnowledgeTokenPrefix) {
			continue
		}

		suffix := strings.Replace(token, model.KnowledgeTokenPrefix, "", 1)
		id, err := strconv.ParseInt(suffix, 10, 64)
		if err != nil {
			return nil, nil
		}

		mapping, err := uc.repo.Knowledge().GetMap(ctx, types.KnowledgeMapID(id))
		if err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				return nil, nil
			}
			return nil, goerr.Wrap(err, "failed to get knowledge mapping", goerr.V("id", id))
		}
		return mapping, nil
	}

	return nil, nil
}

// StatsForMapping summarizes ticket traffic referencing a mapping: total
// occurrences of its title token, the false-positive percentage among them,
// and how many were created in the last seven days.
func (uc *KnowledgeUseCase) StatsForMapping(ctx context.Context, mapID types.KnowledgeMapID) (*model.MappingStats, error) {
	mapping, err := uc.repo.Knowledge().GetMap(ctx, mapID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrKnowledgeMapNotFound, "cannot compute stats", goerr.V("id", mapID))
		}
		return nil, goerr.Wrap(err, "failed to get knowledge mapping", goerr.V("id", mapID))
	}

	tickets, err := uc.repo.Ticket().ListByTitleToken(ctx, mapping.SearchToken())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list referencing tickets", goerr.V("token", mapping.SearchToken()))
	}

	stats := &model.MappingStats{KnowledgeMapID: mapID, Total: len(tickets)}
	weekAgo := uc.now().Add(-7 * 24 * time.Hour)

	falsePositive := 0
	for _, ticket := range tickets {
		if ticket.Determination == types.DeterminationFalsePositive {
			falsePositive++
		}
		if ticket.CreatedAt.After(weekAgo) {
			stats.Volume7d++
		}
	}

	if stats.Total > 0 {
		stats.FalsePositivePct = percentage(falsePositive, stats.Total)
	}

	return stats, nil
}

// CreateMap adds a mapping with a unique title
func (uc *KnowledgeUseCase) CreateMap(ctx context.Context, title, body string) (*model.KnowledgeMap, error) {
	mapping := &model.KnowledgeMap{Title: title, Body: body}
	if err := mapping.Validate(); err != nil {
		return nil, err
	}

	if _, err := uc.repo.Knowledge().GetMapByTitle(ctx, title); err == nil {
		return nil, goerr.Wrap(ErrDuplicateTitle, "knowledge mapping title taken", goerr.V("title", title))
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		return nil, goerr.Wrap(err, "failed to check mapping title", goerr.V("title", title))
	}

	created, err := uc.repo.Knowledge().CreateMap(ctx, mapping)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create knowledge mapping", goerr.V("title", title))
	}

	return created, nil
}

// UpdateMap rewrites a mapping, rejecting title collisions with other
// mappings.
func (uc *KnowledgeUseCase) UpdateMap(ctx context.Context, id types.KnowledgeMapID, title, body string) error {
	mapping, err := uc.repo.Knowledge().GetMap(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(ErrKnowledgeMapNotFound, "cannot update", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get knowledge mapping", goerr.V("id", id))
	}

	if other, err := uc.repo.Knowledge().GetMapByTitle(ctx, title); err == nil {
		if other.ID != id {
			return goerr.Wrap(ErrDuplicateTitle, "knowledge mapping title taken", goerr.V("title", title))
		}
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		return goerr.Wrap(err, "failed to check mapping title", goerr.V("title", title))
	}

	mapping.Title = title
	mapping.Body = body
	if err := mapping.Validate(); err != nil {
		return err
	}

	if _, err := uc.repo.Knowledge().UpdateMap(ctx, mapping); err != nil {
		return goerr.Wrap(err, "failed to update knowledge mapping", goerr.V("id", id))
	}

	return nil
}

// DeleteMap removes a mapping and all of its guidance entries. The cascade
// is explicit: guidance first, mapping second.
func (uc *KnowledgeUseCase) DeleteMap(ctx context.Context, id types.KnowledgeMapID) error {
	if _, err := uc.repo.Knowledge().GetMap(ctx, id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(ErrKnowledgeMapNotFound, "cannot delete", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get knowledge mapping", goerr.V("id", id))
	}

	if err := uc.repo.Knowledge().DeleteGuidanceByMap(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to cascade guidance deletion", goerr.V("id", id))
	}
	if err := uc.repo.Knowledge().DeleteMap(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete knowledge mapping", goerr.V("id", id))
	}

	return nil
}

// ListMaps returns all mappings
func (uc *KnowledgeUseCase) ListMaps(ctx context.Context) ([]*model.KnowledgeMap, error) {
	maps, err := uc.repo.Knowledge().ListMaps(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list knowledge mappings")
	}
	return maps, nil
}

// GetMap returns one mapping
func (uc *KnowledgeUseCase) GetMap(ctx context.Context, id types.KnowledgeMapID) (*model.KnowledgeMap, error) {
	mapping, err := uc.repo.Knowledge().GetMap(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrKnowledgeMapNotFound, "cannot get", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get knowledge mapping", goerr.V("id", id))
	}
	return mapping, nil
}

// AddGuidance files an advisory entry under a mapping; titles are unique
// within that mapping.
func (uc *KnowledgeUseCase) AddGuidance(ctx context.Context, mapID types.KnowledgeMapID, title, body string) (*model.Guidance, error) {
	if _, err := uc.repo.Knowledge().GetMap(ctx, mapID); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrKnowledgeMapNotFound, "cannot add guidance", goerr.V("map_id", mapID))
		}
		return nil, goerr.Wrap(err, "failed to get knowledge mapping", goerr.V("map_id", mapID))
	}

	guidance := &model.Guidance{KnowledgeMapID: mapID, Title: title, Body: body}
	if err := guidance.Validate(); err != nil {
		return nil, err
	}

	if _, err := uc.repo.Knowledge().GetGuidanceByTitle(ctx, mapID, title); err == nil {
		return nil, goerr.Wrap(ErrDuplicateTitle, "guidance title taken", goerr.V("title", title))
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		return nil, goerr.Wrap(err, "failed to check guidance title", goerr.V("title", title))
	}

	created, err := uc.repo.Knowledge().CreateGuidance(ctx, guidance)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create guidance", goerr.V("map_id", mapID))
	}

	return created, nil
}

// UpdateGuidance rewrites a guidance entry, keeping titles unique within the
// mapping.
func (uc *KnowledgeUseCase) UpdateGuidance(ctx context.Context, id types.GuidanceID, title, body string) error {
	guidance, err := uc.repo.Knowledge().GetGuidance(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(ErrGuidanceNotFound, "cannot update", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get guidance", goerr.V("id", id))
	}

	if other, err := uc.repo.Knowledge().GetGuidanceByTitle(ctx, guidance.KnowledgeMapID, title); err == nil {
		if other.ID != id {
			return goerr.Wrap(ErrDuplicateTitle, "guidance title taken", goerr.V("title", title))
		}
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		return goerr.Wrap(err, "failed to check guidance title", goerr.V("title", title))
	}

	guidance.Title = title
	guidance.Body = body
	if err := guidance.Validate(); err != nil {
		return err
	}

	if _, err := uc.repo.Knowledge().UpdateGuidance(ctx, guidance); err != nil {
		return goerr.Wrap(err, "failed to update guidance", goerr.V("id", id))
	}

	return nil
}

// RemoveGuidance deletes a guidance entry
func (uc *KnowledgeUseCase) RemoveGuidance(ctx context.Context, id types.GuidanceID) error {
	if err := uc.repo.Knowledge().DeleteGuidance(ctx, id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(ErrGuidanceNotFound, "cannot remove", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to delete guidance", goerr.V("id", id))
	}
	return nil
}

// ListGuidance returns a mapping's guidance entries
func (uc *KnowledgeUseCase) ListGuidance(ctx context.Context, mapID types.KnowledgeMapID) ([]*model.Guidance, error) {
	entries, err := uc.repo.Knowledge().ListGuidanceByMap(ctx, mapID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list guidance", goerr.V("map_id", mapID))
	}
	return entries, nil
}
