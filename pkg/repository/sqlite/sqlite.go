package sqlite

import (
	"database/sql"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mweegram/tickful/pkg/domain/interfaces"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = interfaces.ErrNotFound

// Client is a sqlite-backed Repository. The schema is created on open, so a
// fresh database file is immediately usable.
type Client struct {
	db           *sql.DB
	ticket       *ticketRepository
	queue        *queueRepository
	user         *userRepository
	comment      *commentRepository
	keyInfo      *keyInfoRepository
	relationship *relationshipRepository
	knowledge    *knowledgeRepository
}

var _ interfaces.Repository = &Client{}

// New opens (or creates) the database at path and prepares the schema
func New(path string) (*Client, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open sqlite database", goerr.V("path", path))
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, goerr.Wrap(err, "failed to enable WAL mode")
	}
	if err := migrate(db); err != nil {
		return nil, goerr.Wrap(err, "failed to prepare schema")
	}

	return &Client{
		db:           db,
		ticket:       &ticketRepository{db: db},
		queue:        &queueRepository{db: db},
		user:         &userRepository{db: db},
		comment:      &commentRepository{db: db},
		keyInfo:      &keyInfoRepository{db: db},
		relationship: &relationshipRepository{db: db},
		knowledge:    &knowledgeRepository{db: db},
	}, nil
}

// Referential integrity across tables is enforced by the usecase layer, so
// the schema carries no foreign key constraints and composite deletes need no
// particular ordering.
func migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS queues (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		credential_hash TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		queue_id INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS tickets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		content TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		owner_id INTEGER NOT NULL,
		queue_id INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		started_at TEXT,
		completed_at TEXT,
		determination TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS comments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ticket_id INTEGER NOT NULL,
		author_id INTEGER NOT NULL,
		text TEXT NOT NULL,
		stage INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS key_info (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ticket_id INTEGER NOT NULL,
		value TEXT NOT NULL,
		tag TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS relationships (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ticket_one INTEGER NOT NULL,
		ticket_two INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS knowledge_maps (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL UNIQUE,
		body TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS guidance (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		knowledge_map_id INTEGER NOT NULL,
		title TEXT NOT NULL,
		body TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS tokens (
		id TEXT PRIMARY KEY,
		secret TEXT NOT NULL,
		user_id INTEGER NOT NULL,
		user_name TEXT NOT NULL,
		expires_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tickets_owner ON tickets(owner_id);
	CREATE INDEX IF NOT EXISTS idx_tickets_queue ON tickets(queue_id);
	CREATE INDEX IF NOT EXISTS idx_tickets_created ON tickets(created_at);
	CREATE INDEX IF NOT EXISTS idx_comments_ticket ON comments(ticket_id);
	CREATE INDEX IF NOT EXISTS idx_key_info_ticket ON key_info(ticket_id);
	CREATE INDEX IF NOT EXISTS idx_key_info_value ON key_info(value);
	CREATE INDEX IF NOT EXISTS idx_relationships_one ON relationships(ticket_one);
	CREATE INDEX IF NOT EXISTS idx_relationships_two ON relationships(ticket_two);
	CREATE INDEX IF NOT EXISTS idx_guidance_map ON guidance(knowledge_map_id);
	`
	_, err := db.Exec(schema)
	return err
}

func (c *Client) Ticket() interfaces.TicketRepository {
	return c.ticket
}

func (c *Client) Queue() interfaces.QueueRepository {
	return c.queue
}

func (c *Client) User() interfaces.UserRepository {
	return c.user
}

func (c *Client) Comment() interfaces.CommentRepository {
	return c.comment
}

func (c *Client) KeyInfo() interfaces.KeyInfoRepository {
	return c.keyInfo
}

func (c *Client) Relationship() interfaces.RelationshipRepository {
	return c.relationship
}

func (c *Client) Knowledge() interfaces.KnowledgeRepository {
	return c.knowledge
}

// Close closes the underlying database handle
func (c *Client) Close() error {
	if err := c.db.Close(); err != nil {
		return goerr.Wrap(err, "failed to close sqlite database")
	}
	return nil
}

// Timestamps are stored as fixed-width UTC RFC 3339 strings so lexical
// comparison in SQL matches chronological order. The nanosecond field is
// zero-padded: RFC3339Nano trims trailing zeros, which makes the strings
// variable-width and breaks ordering when one fraction is a prefix of
// another.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func encodeTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func decodeTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "failed to parse stored timestamp", goerr.V("value", s))
	}
	return t, nil
}

func encodeTimePtr(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: encodeTime(*t), Valid: true}
}

func decodeTimePtr(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := decodeTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
