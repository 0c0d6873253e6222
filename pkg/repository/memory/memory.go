package memory

import (
	"github.com/mweegram/tickful/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is an in-memory Repository used for development and tests
type Memory struct {
	ticket       *ticketRepository
	queue        *queueRepository
	user         *userRepository
	comment      *commentRepository
	keyInfo      *keyInfoRepository
	relationship *relationshipRepository
	knowledge    *knowledgeRepository
	tokens       *tokenStore
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		ticket:       newTicketRepository(),
		queue:        newQueueRepository(),
		user:         newUserRepository(),
		comment:      newCommentRepository(),
		keyInfo:      newKeyInfoRepository(),
		relationship: newRelationshipRepository(),
		knowledge:    newKnowledgeRepository(),
		tokens:       newTokenStore(),
	}
}

func (m *Memory) Ticket() interfaces.TicketRepository {
	return m.ticket
}

func (m *Memory) Queue() interfaces.QueueRepository {
	return m.queue
}

func (m *Memory) User() interfaces.UserRepository {
	return m.user
}

func (m *Memory) Comment() interfaces.CommentRepository {
	return m.comment
}

func (m *Memory) KeyInfo() interfaces.KeyInfoRepository {
	return m.keyInfo
}

func (m *Memory) Relationship() interfaces.RelationshipRepository {
	return m.relationship
}

func (m *Memory) Knowledge() interfaces.KnowledgeRepository {
	return m.knowledge
}

// Close releases nothing for the in-memory store
func (m *Memory) Close() error {
	return nil
}
