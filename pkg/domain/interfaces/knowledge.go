package interfaces

import (
	"context"

	"github.com/mweegram/tickful/pkg/domain/model"
	"github.com/mweegram/tickful/pkg/domain/types"
)

// KnowledgeRepository defines the interface for knowledge mapping and
// guidance data access
type KnowledgeRepository interface {
	// CreateMap creates a new knowledge mapping with auto-generated ID
	CreateMap(ctx context.Context, m *model.KnowledgeMap) (*model.KnowledgeMap, error)

	// GetMap retrieves a knowledge mapping by ID
	GetMap(ctx context.Context, id types.KnowledgeMapID) (*model.KnowledgeMap, error)

	// GetMapByTitle retrieves a knowledge mapping by its unique title
	GetMapByTitle(ctx context.Context, title string) (*model.KnowledgeMap, error)

	// UpdateMap overwrites an existing knowledge mapping
	UpdateMap(ctx context.Context, m *model.KnowledgeMap) (*model.KnowledgeMap, error)

	// DeleteMap deletes a knowledge mapping by ID. Guidance cascading is the
	// responsibility of the usecase layer, not the store.
	DeleteMap(ctx context.Context, id types.KnowledgeMapID) error

	// ListMaps retrieves all knowledge mappings, ID ascending
	ListMaps(ctx context.Context) ([]*model.KnowledgeMap, error)

	// CreateGuidance creates a new guidance entry with auto-generated ID
	CreateGuidance(ctx context.Context, g *model.Guidance) (*model.Guidance, error)

	// GetGuidance retrieves a guidance entry by ID
	GetGuidance(ctx context.Context, id types.GuidanceID) (*model.Guidance, error)

	// GetGuidanceByTitle retrieves a guidance entry by title within a mapping
	GetGuidanceByTitle(ctx context.Context, mapID types.KnowledgeMapID, title string) (*model.Guidance, error)

	// UpdateGuidance overwrites an existing guidance entry
	UpdateGuidance(ctx context.Context, g *model.Guidance) (*model.Guidance, error)

	// DeleteGuidance deletes a guidance entry by ID
	DeleteGuidance(ctx context.Context, id types.GuidanceID) error

	// ListGuidanceByMap retrieves all guidance entries under a mapping
	ListGuidanceByMap(ctx context.Context, mapID types.KnowledgeMapID) ([]*model.Guidance, error)

	// DeleteGuidanceByMap deletes all guidance entries under a mapping
	DeleteGuidanceByMap(ctx context.Context, mapID types.KnowledgeMapID) error
}
