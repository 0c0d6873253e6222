package usecase

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mweegram/tickful/pkg/domain/interfaces"
	"github.com/mweegram/tickful/pkg/domain/model"
	"github.com/mweegram/tickful/pkg/domain/model/config"
	"github.com/mweegram/tickful/pkg/domain/types"
	"golang.org/x/sync/errgroup"
)

const (
	dayWindow  = 24 * time.Hour
	weekWindow = 7 * 24 * time.Hour
)

// AnalyticsUseCase computes operational metrics over fixed rolling windows
// anchored to the clock. Every metric is computed fresh on each call; there
// is no caching.
type AnalyticsUseCase struct {
	repo   interfaces.Repository
	now    func() time.Time
	config *config.Engine
}

func NewAnalyticsUseCase(repo interfaces.Repository, now func() time.Time, cfg *config.Engine) *AnalyticsUseCase {
	return &AnalyticsUseCase{
		repo:   repo,
		now:    now,
		config: cfg,
	}
}

func percentage(part, whole int) int {
	return int(math.Round(float64(part) / float64(whole) * 100))
}

// CreatedInWindow counts tickets created in the last day, optionally
// restricted to one queue (zero means all queues).
func (uc *AnalyticsUseCase) CreatedInWindow(ctx context.Context, queueID types.QueueID) (int, error) {
	tickets, err := uc.repo.Ticket().ListCreatedSince(ctx, uc.now().Add(-dayWindow), queueID)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list created tickets")
	}
	return len(tickets), nil
}

// AverageResponseMinutes is the mean pickup latency, in minutes, over
// tickets started within the last day. Zero qualifying tickets yield 0.
func (uc *AnalyticsUseCase) AverageResponseMinutes(ctx context.Context, queueID types.QueueID) (float64, error) {
	tickets, err := uc.repo.Ticket().ListStartedSince(ctx, uc.now().Add(-dayWindow), queueID)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list started tickets")
	}

	total, count := 0.0, 0
	for _, ticket := range tickets {
		if ticket.StartedAt == nil {
			continue
		}
		total += ticket.StartedAt.Sub(ticket.CreatedAt).Minutes()
		count++
	}

	if count == 0 {
		return 0, nil
	}
	return total / float64(count), nil
}

// UntakenOverdue lists tickets created in the last day whose pickup latency
// exceeded the SLA threshold. As observed in the source system the filter
// requires both started and completed to be set, which contradicts the
// "untaken" framing; the behavior is preserved rather than corrected.
func (uc *AnalyticsUseCase) UntakenOverdue(ctx context.Context) ([]model.OverdueTicket, error) {
	tickets, err := uc.repo.Ticket().ListCreatedSince(ctx, uc.now().Add(-dayWindow), 0)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list created tickets")
	}

	sla := time.Duration(uc.config.SLAMinutes) * time.Minute

	var overdue []model.OverdueTicket
	for _, ticket := range tickets {
		if ticket.StartedAt == nil || ticket.CompletedAt == nil {
			continue
		}
		taken := ticket.StartedAt.Sub(ticket.CreatedAt)
		if taken <= sla {
			continue
		}
		overdue = append(overdue, model.OverdueTicket{
			TicketID:     ticket.ID,
			TakenMinutes: taken.Minutes(),
		})
	}

	return overdue, nil
}

// BusiestQueues ranks queues by one-day ticket creation volume, descending.
// Ties break on queue ID ascending so the ranking is deterministic.
func (uc *AnalyticsUseCase) BusiestQueues(ctx context.Context) ([]model.QueueVolume, error) {
	queues, err := uc.repo.Queue().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list queues")
	}

	since := uc.now().Add(-dayWindow)
	volumes := make([]model.QueueVolume, 0, len(queues))
	for _, queue := range queues {
		tickets, err := uc.repo.Ticket().ListCreatedSince(ctx, since, queue.ID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to count queue tickets", goerr.V("queue_id", queue.ID))
		}
		volumes = append(volumes, model.QueueVolume{
			QueueID: queue.ID,
			Name:    queue.Name,
			Count:   len(tickets),
		})
	}

	sort.Slice(volumes, func(i, j int) bool {
		if volumes[i].Count != volumes[j].Count {
			return volumes[i].Count > volumes[j].Count
		}
		return volumes[i].QueueID < volumes[j].QueueID
	})

	if len(volumes) > uc.config.TopLimit {
		volumes = volumes[:uc.config.TopLimit]
	}
	return volumes, nil
}

// FalsePositiveRate is the percentage of tickets resolved in the last day
// that were determined False Positive. With no resolved tickets it is 0;
// when only a single determination value appears it is 100 unless that value
// is True Positive.
func (uc *AnalyticsUseCase) FalsePositiveRate(ctx context.Context) (int, error) {
	tickets, err := uc.repo.Ticket().ListResolvedSince(ctx, uc.now().Add(-dayWindow))
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list resolved tickets")
	}
	if len(tickets) == 0 {
		return 0, nil
	}

	counts := map[types.Determination]int{}
	for _, ticket := range tickets {
		counts[ticket.Determination]++
	}

	if len(counts) == 1 {
		for determination := range counts {
			if determination == types.DeterminationTruePositive {
				return 0, nil
			}
			return 100, nil
		}
	}

	return percentage(counts[types.DeterminationFalsePositive], len(tickets)), nil
}

// AverageResolutionMinutes is the mean time, in minutes, from creation to
// completion over tickets created and resolved within the last day. Zero
// qualifying tickets yield 0.
func (uc *AnalyticsUseCase) AverageResolutionMinutes(ctx context.Context) (float64, error) {
	tickets, err := uc.repo.Ticket().ListCreatedSince(ctx, uc.now().Add(-dayWindow), 0)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list created tickets")
	}

	total, count := 0.0, 0
	for _, ticket := range tickets {
		if !ticket.IsResolved() || ticket.CompletedAt == nil {
			continue
		}
		total += ticket.CompletedAt.Sub(ticket.CreatedAt).Minutes()
		count++
	}

	if count == 0 {
		return 0, nil
	}
	return total / float64(count), nil
}

// LateTakeCount counts tickets started in the last day whose pickup latency
// exceeded the acceptable threshold.
func (uc *AnalyticsUseCase) LateTakeCount(ctx context.Context) (int, error) {
	tickets, err := uc.repo.Ticket().ListStartedSince(ctx, uc.now().Add(-dayWindow), 0)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list started tickets")
	}

	acceptable := time.Duration(uc.config.AcceptableMinutes) * time.Minute

	late := 0
	for _, ticket := range tickets {
		if ticket.StartedAt == nil {
			continue
		}
		if ticket.StartedAt.Sub(ticket.CreatedAt) > acceptable {
			late++
		}
	}

	return late, nil
}

// TopAnalysts ranks users by how many of the tickets created in the last day
// they resolved. When the top entry would be zero there is no ranking and
// nil is returned.
func (uc *AnalyticsUseCase) TopAnalysts(ctx context.Context) ([]model.AnalystScore, error) {
	tickets, err := uc.repo.Ticket().ListCreatedSince(ctx, uc.now().Add(-dayWindow), 0)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list created tickets")
	}

	resolvedBy := map[types.UserID]int{}
	for _, ticket := range tickets {
		if ticket.IsResolved() {
			resolvedBy[ticket.OwnerID]++
		}
	}
	if len(resolvedBy) == 0 {
		return nil, nil
	}

	scores := make([]model.AnalystScore, 0, len(resolvedBy))
	for userID, count := range resolvedBy {
		name := ""
		if user, err := uc.repo.User().Get(ctx, userID); err == nil {
			name = user.Name
		}
		scores = append(scores, model.AnalystScore{
			UserID:   userID,
			Name:     name,
			Resolved: count,
		})
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Resolved != scores[j].Resolved {
			return scores[i].Resolved > scores[j].Resolved
		}
		return scores[i].UserID < scores[j].UserID
	})

	if scores[0].Resolved == 0 {
		return nil, nil
	}
	if len(scores) > uc.config.TopLimit {
		scores = scores[:uc.config.TopLimit]
	}
	return scores, nil
}

// KeyInfoStats summarizes a single evidence value; see EvidenceUseCase.Stats
// for the computation. Exposed here so dashboard callers need only the
// analytics surface.
func (uc *AnalyticsUseCase) KeyInfoStats(ctx context.Context, value string) (*model.KeyInfoStats, error) {
	evidence := NewEvidenceUseCase(uc.repo, uc.now)
	return evidence.Stats(ctx, value)
}

// Dashboard aggregates the one-day metrics into a single snapshot. The
// metrics are independent and each reads the store on its own, so they run
// concurrently.
func (uc *AnalyticsUseCase) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	stats := &model.DashboardStats{GeneratedAt: uc.now()}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		stats.CreatedLastDay, err = uc.CreatedInWindow(ctx, 0)
		return err
	})
	eg.Go(func() error {
		var err error
		stats.FalsePositiveRate, err = uc.FalsePositiveRate(ctx)
		return err
	})
	eg.Go(func() error {
		var err error
		stats.AvgResponseMinutes, err = uc.AverageResponseMinutes(ctx, 0)
		return err
	})
	eg.Go(func() error {
		var err error
		stats.AvgResolutionMinutes, err = uc.AverageResolutionMinutes(ctx)
		return err
	})
	eg.Go(func() error {
		var err error
		stats.LateTakeCount, err = uc.LateTakeCount(ctx)
		return err
	})
	eg.Go(func() error {
		var err error
		stats.TopAnalysts, err = uc.TopAnalysts(ctx)
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, goerr.Wrap(err, "failed to build dashboard")
	}

	return stats, nil
}
