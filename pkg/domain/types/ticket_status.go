package types

import "fmt"

// TicketStatus represents the lifecycle state of a ticket. The literals are
// part of the stored-data contract and must not change.
type TicketStatus string

const (
	TicketStatusNew                TicketStatus = "New"
	TicketStatusUnderInvestigation TicketStatus = "Under Investigation"
	TicketStatusOnHold             TicketStatus = "On-Hold"
	TicketStatusResolved           TicketStatus = "Resolved"
)

// AllTicketStatuses returns all valid ticket statuses
func AllTicketStatuses() []TicketStatus {
	return []TicketStatus{
		TicketStatusNew,
		TicketStatusUnderInvestigation,
		TicketStatusOnHold,
		TicketStatusResolved,
	}
}

// IsValid checks if the ticket status is valid
func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketStatusNew,
		TicketStatusUnderInvestigation,
		TicketStatusOnHold,
		TicketStatusResolved:
		return true
	default:
		return false
	}
}

// String returns the string representation of the ticket status
func (s TicketStatus) String() string {
	return string(s)
}

// ParseTicketStatus parses a string into a TicketStatus
func ParseTicketStatus(s string) (TicketStatus, error) {
	status := TicketStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return status, nil
}
