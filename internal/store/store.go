package store

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

//go:embed schema.sql
var schemaSQL string

var (
	// ErrNotFound is returned when no entity exists for (kind, key).
	ErrNotFound = errors.New("store: entity not found")

	// ErrInvalidKind is returned when an operation is given an empty kind.
	ErrInvalidKind = errors.New("store: kind must not be empty")
)

// Store is a local SQLite stand-in for the document store. Entities are
// rows keyed by (kind, key) with properties in store JSON form.
type Store struct {
	db   *sql.DB
	keys KeyGenerator
	log  zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithKeyGenerator sets the generator used for entities stored without a key.
func WithKeyGenerator(g KeyGenerator) Option {
	return func(s *Store) {
		s.keys = g
	}
}

// WithLogger sets the logger. Puts and deletes are logged at debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// connParams are applied by go-sqlite3 to every new connection.
const connParams = "_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000&_foreign_keys=on"

// Open creates or opens a SQLite database at the given path and applies the
// schema. Safe to call repeatedly on the same file.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?"+connParams)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema to %s: %w", path, err)
	}

	s := &Store{
		db:   db,
		keys: UUIDv7Generator{},
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.log.Debug().Str("path", path).Msg("store opened")
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
