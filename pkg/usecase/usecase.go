package usecase

import (
	"time"

	"github.com/mweegram/tickful/pkg/domain/interfaces"
	"github.com/mweegram/tickful/pkg/domain/model/config"
	"github.com/mweegram/tickful/pkg/service/extract"
)

// UseCases bundles the domain engine's request handlers. Every handler is
// stateless: state lives in the repository, and each call reads, validates
// and writes without caching.
type UseCases struct {
	repo   interfaces.Repository
	now    func() time.Time
	config *config.Engine

	Ticket    *TicketUseCase
	Comment   *CommentUseCase
	Evidence  *EvidenceUseCase
	Relation  *RelationUseCase
	Knowledge *KnowledgeUseCase
	Analytics *AnalyticsUseCase
	Directory *DirectoryUseCase
	Auth      *AuthUseCase
	Search    *SearchUseCase
}

type Option func(*UseCases)

// WithNow replaces the clock, used by tests to anchor rolling windows
func WithNow(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

// WithConfig replaces the default engine thresholds
func WithConfig(cfg *config.Engine) Option {
	return func(uc *UseCases) {
		uc.config = cfg
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:   repo,
		now:    func() time.Time { return time.Now().UTC() },
		config: config.DefaultEngine(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Evidence = NewEvidenceUseCase(repo, uc.now)
	uc.Knowledge = NewKnowledgeUseCase(repo, uc.now)
	uc.Analytics = NewAnalyticsUseCase(repo, uc.now, uc.config)
	uc.Comment = NewCommentUseCase(repo, uc.now)
	uc.Relation = NewRelationUseCase(repo, uc.now)
	uc.Directory = NewDirectoryUseCase(repo)
	uc.Auth = NewAuthUseCase(repo, uc.now, uc.config.SessionTTL)
	uc.Search = NewSearchUseCase(repo)
	uc.Ticket = NewTicketUseCase(repo, uc.now, uc.Evidence, uc.Knowledge, uc.Analytics, extract.Candidates)

	return uc
}
