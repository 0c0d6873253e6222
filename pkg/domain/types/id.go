package types

import "strconv"

// Entity identifiers are store-assigned sequential integers. They are typed
// so a ticket ID cannot be passed where a queue ID is expected.

// TicketID represents a unique identifier for a ticket
type TicketID int64

// String returns the decimal representation of the TicketID
func (id TicketID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// QueueID represents a unique identifier for a queue
type QueueID int64

// String returns the decimal representation of the QueueID
func (id QueueID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// UserID represents a unique identifier for a user
type UserID int64

// String returns the decimal representation of the UserID
func (id UserID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// CommentID represents a unique identifier for a comment
type CommentID int64

// KeyInfoID represents a unique identifier for a key information record
type KeyInfoID int64

// RelationshipID represents a unique identifier for a ticket relationship
type RelationshipID int64

// KnowledgeMapID represents a unique identifier for a knowledge mapping
type KnowledgeMapID int64

// String returns the decimal representation of the KnowledgeMapID
func (id KnowledgeMapID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// GuidanceID represents a unique identifier for a guidance entry
type GuidanceID int64
