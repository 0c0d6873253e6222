package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mweegram/tickful/pkg/domain/types"
)

// Comment is an investigation note on a ticket, filed under one of the four
// incident-response framework stages.
type Comment struct {
	ID        types.CommentID
	TicketID  types.TicketID
	AuthorID  types.UserID
	Text      string
	Stage     types.Stage
	CreatedAt time.Time
}

// Validate checks if the comment is valid
func (c *Comment) Validate() error {
	if c.Text == "" {
		return goerr.New("comment text is required")
	}
	if !c.Stage.IsValid() {
		return goerr.New("invalid framework stage", goerr.V("stage", int(c.Stage)))
	}
	return nil
}
