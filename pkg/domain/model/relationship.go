package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/mweegram/tickful/pkg/domain/types"
)

// Relationship is an undirected link between two distinct tickets. The pair
// is stored once regardless of endpoint order; insertion checks both
// orderings before writing.
type Relationship struct {
	ID        types.RelationshipID
	TicketOne types.TicketID
	TicketTwo types.TicketID
}

// Validate checks if the relationship is valid
func (r *Relationship) Validate() error {
	if r.TicketOne == r.TicketTwo {
		return goerr.New("a ticket cannot be related to itself", goerr.V("ticket_id", r.TicketOne))
	}
	return nil
}

// Other returns the endpoint opposite to the given ticket, and whether the
// given ticket is an endpoint at all.
func (r *Relationship) Other(id types.TicketID) (types.TicketID, bool) {
	switch id {
	case r.TicketOne:
		return r.TicketTwo, true
	case r.TicketTwo:
		return r.TicketOne, true
	default:
		return 0, false
	}
}
