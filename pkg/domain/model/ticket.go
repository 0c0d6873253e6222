package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mweegram/tickful/pkg/domain/types"
)

// Ticket represents an incident ticket moving through the investigation
// lifecycle. StartedAt and CompletedAt are unset until the ticket is taken
// and resolved respectively. Determination is empty until the ticket is
// resolved, and deliberately survives a reopen: a reopened ticket keeps its
// historical completion time and determination.
type Ticket struct {
	ID            types.TicketID
	Title         string
	Content       string
	Status        types.TicketStatus
	OwnerID       types.UserID
	QueueID       types.QueueID
	CreatedAt     time.Time
	StartedAt     *time.Time
	CompletedAt   *time.Time
	Determination types.Determination
}

// Validate checks structural validity and the timestamp ordering invariant
// created <= started <= completed.
func (t *Ticket) Validate() error {
	if t.Title == "" {
		return goerr.New("ticket title is required")
	}
	if !t.Status.IsValid() {
		return goerr.New("invalid ticket status", goerr.V("status", t.Status))
	}
	if t.Determination != "" && !t.Determination.IsValid() {
		return goerr.New("invalid determination", goerr.V("determination", t.Determination))
	}
	if t.StartedAt != nil && t.StartedAt.Before(t.CreatedAt) {
		return goerr.New("ticket started before it was created",
			goerr.V("created", t.CreatedAt), goerr.V("started", *t.StartedAt))
	}
	if t.CompletedAt != nil {
		if t.CompletedAt.Before(t.CreatedAt) {
			return goerr.New("ticket completed before it was created",
				goerr.V("created", t.CreatedAt), goerr.V("completed", *t.CompletedAt))
		}
		if t.StartedAt != nil && t.CompletedAt.Before(*t.StartedAt) {
			return goerr.New("ticket completed before it was started",
				goerr.V("started", *t.StartedAt), goerr.V("completed", *t.CompletedAt))
		}
	}
	return nil
}

// IsResolved reports whether the ticket is currently resolved
func (t *Ticket) IsResolved() bool {
	return t.Status == types.TicketStatusResolved
}
