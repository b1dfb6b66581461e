package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/dsmap/internal/value"
)

// Entity is a keyed set of store values.
type Entity struct {
	Kind       string
	Key        string
	Properties map[string]value.Value

	// Version counts writes to this (kind, key); set by Put and Get.
	Version int64
}

// normalizeID NFC-normalizes an identifier and trims surrounding space.
func normalizeID(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Put inserts or replaces an entity.
//
// An empty Key is filled from the store's KeyGenerator. The returned Entity
// carries the normalized kind and key and the new version.
func (s *Store) Put(ctx context.Context, e Entity) (Entity, error) {
	kind := normalizeID(e.Kind)
	if kind == "" {
		return Entity{}, fmt.Errorf("put: %w", ErrInvalidKind)
	}
	key := normalizeID(e.Key)
	if key == "" {
		key = normalizeID(s.keys.Generate())
	}

	props := e.Properties
	if props == nil {
		props = map[string]value.Value{}
	}
	propsJSON, err := value.MarshalProperties(props)
	if err != nil {
		return Entity{}, fmt.Errorf("put %s/%s: %w", kind, key, err)
	}

	var version int64
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO entities (kind, key, properties, version)
		VALUES (?, ?, ?, 1)
		ON CONFLICT(kind, key) DO UPDATE SET
			properties = excluded.properties,
			version = entities.version + 1
		RETURNING version
	`, kind, key, string(propsJSON)).Scan(&version)
	if err != nil {
		return Entity{}, fmt.Errorf("put %s/%s: %w", kind, key, err)
	}

	s.log.Debug().
		Str("kind", kind).
		Str("key", key).
		Int("properties", len(props)).
		Int64("version", version).
		Msg("entity stored")

	return Entity{
		Kind:       kind,
		Key:        key,
		Properties: props,
		Version:    version,
	}, nil
}

// Get retrieves a single entity.
// Returns an error wrapping ErrNotFound if it does not exist.
func (s *Store) Get(ctx context.Context, kind, key string) (Entity, error) {
	kind = normalizeID(kind)
	if kind == "" {
		return Entity{}, fmt.Errorf("get: %w", ErrInvalidKind)
	}
	key = normalizeID(key)

	row := s.db.QueryRowContext(ctx, `
		SELECT kind, key, properties, version
		FROM entities
		WHERE kind = ? AND key = ?
	`, kind, key)

	e, err := scanEntity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entity{}, fmt.Errorf("get %s/%s: %w", kind, key, ErrNotFound)
	}
	if err != nil {
		return Entity{}, fmt.Errorf("get %s/%s: %w", kind, key, err)
	}
	return e, nil
}

// Delete removes an entity.
// Returns an error wrapping ErrNotFound if it does not exist.
func (s *Store) Delete(ctx context.Context, kind, key string) error {
	kind = normalizeID(kind)
	if kind == "" {
		return fmt.Errorf("delete: %w", ErrInvalidKind)
	}
	key = normalizeID(key)

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM entities WHERE kind = ? AND key = ?
	`, kind, key)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", kind, key, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s/%s: rows affected: %w", kind, key, err)
	}
	if n == 0 {
		return fmt.Errorf("delete %s/%s: %w", kind, key, ErrNotFound)
	}

	s.log.Debug().Str("kind", kind).Str("key", key).Msg("entity deleted")
	return nil
}

// List returns all entities of a kind ordered by key (binary collation).
// Returns an empty slice (not nil) if none exist.
func (s *Store) List(ctx context.Context, kind string) ([]Entity, error) {
	kind = normalizeID(kind)
	if kind == "" {
		return nil, fmt.Errorf("list: %w", ErrInvalidKind)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, key, properties, version
		FROM entities
		WHERE kind = ?
		ORDER BY key COLLATE BINARY ASC
	`, kind)
	if err != nil {
		return nil, fmt.Errorf("query entities: %w", err)
	}
	defer rows.Close()

	entities := []Entity{}
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entities: %w", err)
	}

	return entities, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanEntity scans a row into an Entity.
func scanEntity(row rowScanner) (Entity, error) {
	var e Entity
	var propsJSON string

	if err := row.Scan(&e.Kind, &e.Key, &propsJSON, &e.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entity{}, err
		}
		return Entity{}, fmt.Errorf("scan entity: %w", err)
	}

	props, err := value.UnmarshalProperties([]byte(propsJSON))
	if err != nil {
		return Entity{}, fmt.Errorf("scan entity %s/%s: %w", e.Kind, e.Key, err)
	}
	e.Properties = props

	return e, nil
}
