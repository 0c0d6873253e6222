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

// EvidenceUseCase owns key information records and their dedup rules. The
// dedup key is (ticket, value): a value is stored at most once per ticket,
// and later writes only move its tag.
type EvidenceUseCase struct {
	repo interfaces.Repository
	now  func() time.Time
}

func NewEvidenceUseCase(repo interfaces.Repository, now func() time.Time) *EvidenceUseCase {
	return &EvidenceUseCase{
		repo: repo,
		now:  now,
	}
}

// Upsert records a value on a ticket. If the value is already present the
// existing record keeps its identity and only the tag is updated.
func (uc *EvidenceUseCase) Upsert(ctx context.Context, ticketID types.TicketID, value, tag string) (*model.KeyInfo, error) {
	record := &model.KeyInfo{TicketID: ticketID, Value: value, Tag: tag}
	if err := record.Validate(); err != nil {
		return nil, err
	}

	existing, err := uc.repo.KeyInfo().GetByTicketValue(ctx, ticketID, value)
	if err != nil {
		if !errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(err, "failed to look up key info", goerr.V("ticket_id", ticketID))
		}

		created, err := uc.repo.KeyInfo().Create(ctx, record)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create key info", goerr.V("ticket_id", ticketID))
		}
		return created, nil
	}

	existing.Tag = tag
	updated, err := uc.repo.KeyInfo().Update(ctx, existing)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update key info tag", goerr.V("id", existing.ID))
	}
	return updated, nil
}

// BulkAutoInsert records extracted candidate values on a ticket with the
// automated-extraction tag, silently skipping values already present.
// Returns how many records were inserted; an empty candidate list is a no-op.
func (uc *EvidenceUseCase) BulkAutoInsert(ctx context.Context, ticketID types.TicketID, values []string) (int, error) {
	inserted := 0
	for _, value := range values {
		if value == "" {
			continue
		}

		_, err := uc.repo.KeyInfo().GetByTicketValue(ctx, ticketID, value)
		if err == nil {
			continue
		}
		if !errors.Is(err, interfaces.ErrNotFound) {
			return inserted, goerr.Wrap(err, "failed to look up key info", goerr.V("ticket_id", ticketID))
		}

		record := &model.KeyInfo{TicketID: ticketID, Value: value, Tag: model.AutoExtractedTag}
		if _, err := uc.repo.KeyInfo().Create(ctx, record); err != nil {
			return inserted, goerr.Wrap(err, "failed to create key info", goerr.V("ticket_id", ticketID))
		}
		inserted++
	}

	return inserted, nil
}

// Update rewrites a record's value and tag. Colliding with another record on
// the same ticket is a duplicate outcome (ok=false), not an error.
func (uc *EvidenceUseCase) Update(ctx context.Context, id types.KeyInfoID, newValue, newTag string) (bool, error) {
	record, err := uc.repo.KeyInfo().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return false, goerr.Wrap(ErrKeyInfoNotFound, "cannot update", goerr.V("id", id))
		}
		return false, goerr.Wrap(err, "failed to get key info", goerr.V("id", id))
	}

	other, err := uc.repo.KeyInfo().GetByTicketValue(ctx, record.TicketID, newValue)
	if err == nil && other.ID != record.ID {
		return false, nil
	}
	if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
		return false, goerr.Wrap(err, "failed to look up key info", goerr.V("ticket_id", record.TicketID))
	}

	record.Value = newValue
	record.Tag = newTag
	if err := record.Validate(); err != nil {
		return false, err
	}

	if _, err := uc.repo.KeyInfo().Update(ctx, record); err != nil {
		return false, goerr.Wrap(err, "failed to update key info", goerr.V("id", id))
	}

	return true, nil
}

// Remove deletes a record unconditionally
func (uc *EvidenceUseCase) Remove(ctx context.Context, id types.KeyInfoID) error {
	if err := uc.repo.KeyInfo().Delete(ctx, id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(ErrKeyInfoNotFound, "cannot remove", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to delete key info", goerr.V("id", id))
	}
	return nil
}

// ListByTicket returns a ticket's key information enriched with how often
// each value occurs across all tickets.
func (uc *EvidenceUseCase) ListByTicket(ctx context.Context, ticketID types.TicketID) ([]model.KeyInfoView, error) {
	records, err := uc.repo.KeyInfo().ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list key info", goerr.V("ticket_id", ticketID))
	}

	views := make([]model.KeyInfoView, 0, len(records))
	for _, record := range records {
		occurrences, err := uc.repo.KeyInfo().ListByValue(ctx, record.Value)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to count occurrences", goerr.V("value", record.Value))
		}
		views = append(views, model.KeyInfoView{
			KeyInfo:     *record,
			Occurrences: len(occurrences),
		})
	}

	return views, nil
}

// ListByValue returns every record carrying the value across all tickets
func (uc *EvidenceUseCase) ListByValue(ctx context.Context, value string) ([]*model.KeyInfo, error) {
	records, err := uc.repo.KeyInfo().ListByValue(ctx, value)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list key info by value", goerr.V("value", value))
	}
	return records, nil
}

// Stats summarizes a value's history: lifetime occurrences, false-positive
// percentage among resolved carrying tickets, and seven-day volume.
func (uc *EvidenceUseCase) Stats(ctx context.Context, value string) (*model.KeyInfoStats, error) {
	records, err := uc.repo.KeyInfo().ListByValue(ctx, value)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list key info by value", goerr.V("value", value))
	}

	stats := &model.KeyInfoStats{Value: value, Total: len(records)}
	weekAgo := uc.now().Add(-7 * 24 * time.Hour)

	resolved, falsePositive := 0, 0
	for _, record := range records {
		ticket, err := uc.repo.Ticket().Get(ctx, record.TicketID)
		if err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				continue
			}
			return nil, goerr.Wrap(err, "failed to get carrying ticket", goerr.V("ticket_id", record.TicketID))
		}

		if ticket.CreatedAt.After(weekAgo) {
			stats.Volume7d++
		}
		if ticket.IsResolved() {
			resolved++
			if ticket.Determination == types.DeterminationFalsePositive {
				falsePositive++
			}
		}
	}

	if resolved > 0 {
		stats.FalsePositivePct = percentage(falsePositive, resolved)
	}

	return stats, nil
}
