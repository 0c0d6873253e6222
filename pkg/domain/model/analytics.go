package model

import (
	"time"

	"github.com/mweegram/tickful/pkg/domain/types"
)

// QueueVolume is one entry of the busiest-queues ranking.
type QueueVolume struct {
	QueueID types.QueueID
	Name    string
	Count   int
}

// AnalystScore is one entry of the top-analysts ranking.
type AnalystScore struct {
	UserID   types.UserID
	Name     string
	Resolved int
}

// KeyInfoStats summarizes how a single evidence value has behaved across all
// tickets: lifetime occurrences, the false-positive percentage among resolved
// occurrences, and the occurrence count over the trailing seven days.
type KeyInfoStats struct {
	Value            string
	Total            int
	FalsePositivePct int
	Volume7d         int
}

// MappingStats summarizes ticket traffic referencing one knowledge mapping.
type MappingStats struct {
	KnowledgeMapID   types.KnowledgeMapID
	Total            int
	FalsePositivePct int
	Volume7d         int
}

// OverdueTicket is a ticket whose pickup latency exceeded the SLA threshold.
type OverdueTicket struct {
	TicketID     types.TicketID
	TakenMinutes float64
}

// DashboardStats is the aggregated operational snapshot for the front page.
type DashboardStats struct {
	CreatedLastDay       int
	FalsePositiveRate    int
	AvgResponseMinutes   float64
	AvgResolutionMinutes float64
	LateTakeCount        int
	TopAnalysts          []AnalystScore
	GeneratedAt          time.Time
}
