package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mweegram/tickful/pkg/domain/interfaces"
	"github.com/mweegram/tickful/pkg/domain/model"
	"github.com/mweegram/tickful/pkg/domain/types"
	"github.com/mweegram/tickful/pkg/service/extract"
)

// TicketUseCase owns the ticket lifecycle: creation, claiming, resolution,
// reopening and the read models built on top of them.
type TicketUseCase struct {
	repo      interfaces.Repository
	now       func() time.Time
	evidence  *EvidenceUseCase
	knowledge *KnowledgeUseCase
	analytics *AnalyticsUseCase
	extractor func(title, body string) []string
}

func NewTicketUseCase(repo interfaces.Repository, now func() time.Time, evidence *EvidenceUseCase, knowledge *KnowledgeUseCase, analytics *AnalyticsUseCase, extractor func(title, body string) []string) *TicketUseCase {
	return &TicketUseCase{
		repo:      repo,
		now:       now,
		evidence:  evidence,
		knowledge: knowledge,
		analytics: analytics,
		extractor: extractor,
	}
}

// CreateManual creates a ticket entered by an analyst. The creator owns it
// from the start, so the status is Under Investigation and the pickup time
// equals the creation time.
func (uc *TicketUseCase) CreateManual(ctx context.Context, title, content string, queueID types.QueueID, ownerID types.UserID, createdAt time.Time) (*model.Ticket, error) {
	if createdAt.IsZero() {
		createdAt = uc.now()
	}
	started := createdAt

	ticket := &model.Ticket{
		Title:     title,
		Content:   content,
		Status:    types.TicketStatusUnderInvestigation,
		OwnerID:   ownerID,
		QueueID:   queueID,
		CreatedAt: createdAt,
		StartedAt: &started,
	}
	if err := ticket.Validate(); err != nil {
		return nil, err
	}

	created, err := uc.repo.Ticket().Create(ctx, ticket)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create ticket")
	}

	return created, nil
}

// CreateFromIngestion creates a system-generated ticket. It starts as New,
// owned by the sentinel user, with no pickup time until an analyst claims it.
func (uc *TicketUseCase) CreateFromIngestion(ctx context.Context, title, content string, queueID types.QueueID) (*model.Ticket, error) {
	sentinel, err := uc.repo.User().GetByName(ctx, model.SentinelUserName)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve sentinel user")
	}

	ticket := &model.Ticket{
		Title:     title,
		Content:   content,
		Status:    types.TicketStatusNew,
		OwnerID:   sentinel.ID,
		QueueID:   queueID,
		CreatedAt: uc.now(),
	}
	if err := ticket.Validate(); err != nil {
		return nil, err
	}

	created, err := uc.repo.Ticket().Create(ctx, ticket)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create ticket")
	}

	return created, nil
}

// Ingest turns an external report (e.g. a monitored mailbox message) into a
// ticket. The subject may carry a leading "<queueID> - " routing token; an
// absent or unknown queue falls back to the default queue. Candidate key
// information values found in the subject and body are attached
// automatically.
func (uc *TicketUseCase) Ingest(ctx context.Context, subject, body string) (*model.Ticket, error) {
	queueID, title, err := uc.resolveQueueRef(ctx, subject)
	if err != nil {
		return nil, err
	}

	created, err := uc.CreateFromIngestion(ctx, title, body, queueID)
	if err != nil {
		return nil, err
	}

	candidates := uc.extractor(title, body)
	if _, err := uc.evidence.BulkAutoInsert(ctx, created.ID, candidates); err != nil {
		return nil, goerr.Wrap(err, "failed to attach extracted key info", goerr.V("ticket_id", created.ID))
	}

	return created, nil
}

func (uc *TicketUseCase) resolveQueueRef(ctx context.Context, subject string) (types.QueueID, string, error) {
	fallback := func(title string) (types.QueueID, string, error) {
		queue, err := uc.repo.Queue().GetByName(ctx, model.DefaultQueueName)
		if err != nil {
			return 0, "", goerr.Wrap(err, "failed to resolve default queue")
		}
		return queue.ID, title, nil
	}

	ref, title, ok := extract.ParseQueueRef(subject)
	if !ok {
		return fallback(title)
	}

	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		return fallback(title)
	}

	queue, err := uc.repo.Queue().Get(ctx, types.QueueID(id))
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return fallback(title)
		}
		return 0, "", goerr.Wrap(err, "failed to resolve queue", goerr.V("queue_id", id))
	}

	return queue.ID, title, nil
}

// Claim hands an orphaned ticket to the acting analyst. It succeeds only
// when the current owner is the sentinel user; claiming an owned ticket is a
// guarded no-op reported through the outcome, not an error.
func (uc *TicketUseCase) Claim(ctx context.Context, ticketID types.TicketID, actorID types.UserID) (types.ClaimOutcome, error) {
	ticket, err := uc.repo.Ticket().Get(ctx, ticketID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return types.ClaimOutcomeNotFound, nil
		}
		return "", goerr.Wrap(err, "failed to get ticket", goerr.V("ticket_id", ticketID))
	}

	owner, err := uc.repo.User().Get(ctx, ticket.OwnerID)
	if err != nil {
		return "", goerr.Wrap(err, "failed to resolve ticket owner", goerr.V("ticket_id", ticketID))
	}
	if !owner.IsSentinel() {
		return types.ClaimOutcomeAlreadyOwned, nil
	}

	started := uc.now()
	ticket.OwnerID = actorID
	ticket.Status = types.TicketStatusUnderInvestigation
	ticket.StartedAt = &started

	if _, err := uc.repo.Ticket().Update(ctx, ticket); err != nil {
		return "", goerr.Wrap(err, "failed to claim ticket", goerr.V("ticket_id", ticketID))
	}

	return types.ClaimOutcomeClaimed, nil
}

// Resolve closes a ticket with its investigative outcome
func (uc *TicketUseCase) Resolve(ctx context.Context, ticketID types.TicketID, determination types.Determination) error {
	if !determination.IsValid() {
		return goerr.New("invalid determination", goerr.V("determination", determination))
	}

	ticket, err := uc.repo.Ticket().Get(ctx, ticketID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(ErrTicketNotFound, "cannot resolve", goerr.V("ticket_id", ticketID))
		}
		return goerr.Wrap(err, "failed to get ticket", goerr.V("ticket_id", ticketID))
	}

	completed := uc.now()
	ticket.Status = types.TicketStatusResolved
	ticket.CompletedAt = &completed
	ticket.Determination = determination

	if _, err := uc.repo.Ticket().Update(ctx, ticket); err != nil {
		return goerr.Wrap(err, "failed to resolve ticket", goerr.V("ticket_id", ticketID))
	}

	return nil
}

// Reopen puts a resolved ticket back under investigation. The completion
// time and determination deliberately survive: a reopened ticket keeps
// reporting its historical resolution, which analytics filtering on Resolved
// must tolerate.
func (uc *TicketUseCase) Reopen(ctx context.Context, ticketID types.TicketID) error {
	ticket, err := uc.repo.Ticket().Get(ctx, ticketID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(ErrTicketNotFound, "cannot reopen", goerr.V("ticket_id", ticketID))
		}
		return goerr.Wrap(err, "failed to get ticket", goerr.V("ticket_id", ticketID))
	}

	ticket.Status = types.TicketStatusUnderInvestigation

	if _, err := uc.repo.Ticket().Update(ctx, ticket); err != nil {
		return goerr.Wrap(err, "failed to reopen ticket", goerr.V("ticket_id", ticketID))
	}

	return nil
}

// Update is a free-form edit of title, content, queue and status. The status
// is taken as supplied without checking it against the transition table;
// only enum validity is enforced.
func (uc *TicketUseCase) Update(ctx context.Context, ticketID types.TicketID, title, content string, queueID types.QueueID, status types.TicketStatus) error {
	ticket, err := uc.repo.Ticket().Get(ctx, ticketID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(ErrTicketNotFound, "cannot update", goerr.V("ticket_id", ticketID))
		}
		return goerr.Wrap(err, "failed to get ticket", goerr.V("ticket_id", ticketID))
	}

	ticket.Title = title
	ticket.Content = content
	ticket.QueueID = queueID
	ticket.Status = status

	if err := ticket.Validate(); err != nil {
		return err
	}

	if _, err := uc.repo.Ticket().Update(ctx, ticket); err != nil {
		return goerr.Wrap(err, "failed to update ticket", goerr.V("ticket_id", ticketID))
	}

	return nil
}

// Summarize groups a ticket's comments into the four ordered framework
// stages, each bucket in timestamp order. A ticket with no comments has no
// summary and returns nil.
func (uc *TicketUseCase) Summarize(ctx context.Context, ticketID types.TicketID) (*model.IncidentSummary, error) {
	exists, err := uc.repo.Ticket().Exists(ctx, ticketID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to check ticket", goerr.V("ticket_id", ticketID))
	}
	if !exists {
		return nil, goerr.Wrap(ErrTicketNotFound, "cannot summarize", goerr.V("ticket_id", ticketID))
	}

	comments, err := uc.repo.Comment().ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list comments", goerr.V("ticket_id", ticketID))
	}
	if len(comments) == 0 {
		return nil, nil
	}

	summary := &model.IncidentSummary{TicketID: ticketID}
	for i, stage := range types.AllStages() {
		summary.Stages[i].Stage = stage
	}
	for _, comment := range comments {
		idx := int(comment.Stage) - 1
		summary.Stages[idx].Comments = append(summary.Stages[idx].Comments, comment)
	}

	return summary, nil
}

// ListByOwner returns a user's unresolved tickets, oldest first
func (uc *TicketUseCase) ListByOwner(ctx context.Context, ownerID types.UserID) ([]*model.Ticket, error) {
	tickets, err := uc.repo.Ticket().ListOpenByOwner(ctx, ownerID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list tickets", goerr.V("owner_id", ownerID))
	}
	return tickets, nil
}

// Board builds the status-bucketed view of one queue's unresolved tickets,
// with the queue's one-day volume and response latency alongside.
func (uc *TicketUseCase) Board(ctx context.Context, queueID types.QueueID) (*model.QueueBoard, error) {
	queue, err := uc.repo.Queue().Get(ctx, queueID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrQueueNotFound, "cannot build board", goerr.V("queue_id", queueID))
		}
		return nil, goerr.Wrap(err, "failed to get queue", goerr.V("queue_id", queueID))
	}

	tickets, err := uc.repo.Ticket().ListOpenByQueue(ctx, queueID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list queue tickets", goerr.V("queue_id", queueID))
	}

	board := &model.QueueBoard{Queue: *queue}
	for _, ticket := range tickets {
		switch ticket.Status {
		case types.TicketStatusNew:
			board.New = append(board.New, ticket)
		case types.TicketStatusOnHold:
			board.OnHold = append(board.OnHold, ticket)
		default:
			board.UnderInvestigation = append(board.UnderInvestigation, ticket)
		}
	}

	if board.CreatedLastDay, err = uc.analytics.CreatedInWindow(ctx, queueID); err != nil {
		return nil, err
	}
	if board.AvgResponseMinutes, err = uc.analytics.AverageResponseMinutes(ctx, queueID); err != nil {
		return nil, err
	}

	return board, nil
}

// Detail assembles the full read model of one ticket for the acting user
func (uc *TicketUseCase) Detail(ctx context.Context, ticketID types.TicketID, actorID types.UserID) (*model.TicketDetail, error) {
	ticket, err := uc.repo.Ticket().Get(ctx, ticketID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrTicketNotFound, "cannot load detail", goerr.V("ticket_id", ticketID))
		}
		return nil, goerr.Wrap(err, "failed to get ticket", goerr.V("ticket_id", ticketID))
	}

	owner, err := uc.repo.User().Get(ctx, ticket.OwnerID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve ticket owner", goerr.V("ticket_id", ticketID))
	}

	keyInfo, err := uc.evidence.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	comments, err := uc.commentViews(ctx, ticketID, actorID)
	if err != nil {
		return nil, err
	}

	relations, err := uc.relationViews(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	detail := &model.TicketDetail{
		Ticket:    *ticket,
		OwnerName: owner.Name,
		IsOwner:   ticket.OwnerID == actorID,
		KeyInfo:   keyInfo,
		Comments:  comments,
		Relations: relations,
	}

	if mapping, err := uc.knowledge.MapFromTitle(ctx, ticket.Title); err != nil {
		return nil, err
	} else if mapping != nil {
		detail.KnowledgeMap = mapping.ID
	}

	return detail, nil
}

func (uc *TicketUseCase) commentViews(ctx context.Context, ticketID types.TicketID, actorID types.UserID) ([]model.CommentView, error) {
	comments, err := uc.repo.Comment().ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list comments", goerr.V("ticket_id", ticketID))
	}

	authorNames := map[types.UserID]string{}
	views := make([]model.CommentView, 0, len(comments))
	for _, comment := range comments {
		name, ok := authorNames[comment.AuthorID]
		if !ok {
			author, err := uc.repo.User().Get(ctx, comment.AuthorID)
			if err != nil {
				if !errors.Is(err, interfaces.ErrNotFound) {
					return nil, goerr.Wrap(err, "failed to resolve comment author", goerr.V("comment_id", comment.ID))
				}
				name = ""
			} else {
				name = author.Name
			}
			authorNames[comment.AuthorID] = name
		}

		views = append(views, model.CommentView{
			Comment:    *comment,
			AuthorName: name,
			StageName:  comment.Stage.Name(),
			OwnStake:   comment.AuthorID == actorID,
		})
	}

	return views, nil
}

func (uc *TicketUseCase) relationViews(ctx context.Context, ticketID types.TicketID) ([]model.RelationView, error) {
	relationships, err := uc.repo.Relationship().ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list relationships", goerr.V("ticket_id", ticketID))
	}

	views := make([]model.RelationView, 0, len(relationships))
	for _, rel := range relationships {
		otherID, _ := rel.Other(ticketID)

		title := ""
		other, err := uc.repo.Ticket().Get(ctx, otherID)
		if err != nil {
			if !errors.Is(err, interfaces.ErrNotFound) {
				return nil, goerr.Wrap(err, "failed to resolve related ticket", goerr.V("ticket_id", otherID))
			}
		} else {
			title = other.Title
		}

		views = append(views, model.RelationView{
			RelationshipID: rel.ID,
			OtherTicketID:  otherID,
			OtherTitle:     title,
		})
	}

	return views, nil
}
