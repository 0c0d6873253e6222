package model

import (
	"time"

	"github.com/mweegram/tickful/pkg/domain/types"
)

// The view structs below are immutable read models: every derived field is
// computed once at construction instead of patched onto rows afterwards.

// KeyInfoView is a key information record enriched with how often its value
// has been seen across all tickets.
type KeyInfoView struct {
	KeyInfo
	Occurrences int
}

// CommentView is a comment enriched with its author name, the stage name,
// and whether the requesting actor wrote it.
type CommentView struct {
	Comment
	AuthorName string
	StageName  string
	OwnStake   bool
}

// RelationView describes one link from the perspective of a ticket: the
// relationship row plus the far endpoint.
type RelationView struct {
	RelationshipID types.RelationshipID
	OtherTicketID  types.TicketID
	OtherTitle     string
}

// TicketDetail is the full read model of a single ticket.
type TicketDetail struct {
	Ticket       Ticket
	OwnerName    string
	IsOwner      bool
	KeyInfo      []KeyInfoView
	Comments     []CommentView
	Relations    []RelationView
	KnowledgeMap types.KnowledgeMapID // zero when the title has no mapping
}

// QueueBoard buckets the unresolved tickets of one queue by status.
type QueueBoard struct {
	Queue              Queue
	New                []*Ticket
	UnderInvestigation []*Ticket
	OnHold             []*Ticket
	CreatedLastDay     int
	AvgResponseMinutes float64
}

// Total returns the number of unresolved tickets on the board
func (b *QueueBoard) Total() int {
	return len(b.New) + len(b.UnderInvestigation) + len(b.OnHold)
}

// StageBucket is one framework stage of an incident summary with its
// comments in timestamp order.
type StageBucket struct {
	Stage    types.Stage
	Comments []*Comment
}

// IncidentSummary groups a ticket's comments into the four ordered framework
// stages. Buckets for stages with no comments are present but empty.
type IncidentSummary struct {
	TicketID types.TicketID
	Stages   [4]StageBucket
}

// SearchHit is one row of a cross-entity search result.
type SearchHit struct {
	TicketID  types.TicketID
	Title     string
	CreatedAt time.Time
	OwnerName string
}
