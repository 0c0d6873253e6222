package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/mweegram/tickful/pkg/domain/types"
)

// DefaultQueueName is the name of the queue that always exists. Tickets
// ingested without a resolvable queue reference land here.
const DefaultQueueName = "Incident Response"

// Queue is a named routing bucket that tickets and users belong to. Queue
// names are unique.
type Queue struct {
	ID   types.QueueID
	Name string
}

// Validate checks if the queue is valid
func (q *Queue) Validate() error {
	if q.Name == "" {
		return goerr.New("queue name is required")
	}
	return nil
}
