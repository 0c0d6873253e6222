package usecase

import "errors"

// Sentinel errors for the use case layer
var (
	// Not found errors
	ErrTicketNotFound       = errors.New("ticket not found")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrKeyInfoNotFound      = errors.New("key information not found")
	ErrQueueNotFound        = errors.New("queue not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrKnowledgeMapNotFound = errors.New("knowledge mapping not found")
	ErrGuidanceNotFound     = errors.New("guidance not found")
	ErrRelationNotFound     = errors.New("relationship not found")

	// Duplicate errors
	ErrDuplicateName  = errors.New("name already in use")
	ErrDuplicateTitle = errors.New("title already in use")

	// Relationship errors
	ErrNoLinksCreated = errors.New("no relationships could be created")

	// Auth errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
