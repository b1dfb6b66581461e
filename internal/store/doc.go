// Package store provides a SQLite-backed entity store for mapped values.
//
// It is a local stand-in for the document store: entities are addressed by
// (kind, key) and carry a set of named properties, each a value.Value.
// Properties are persisted in the store JSON form produced by
// value.MarshalProperties, so what is written here is byte-compatible with
// what the remote store's REST surface returns.
//
// # Identity
//
//   - Kind and key are NFC-normalized before use, so visually identical
//     identifiers address the same row
//   - An empty key on Put is filled by the configured KeyGenerator
//     (UUIDv7 by default, time-sortable)
//   - Every Put on an existing entity increments its version
//
// # Ordering
//
// List returns entities ordered by key using binary collation so results
// are identical across runs.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON
//
// The schema is created with CREATE ... IF NOT EXISTS on every Open. There
// are no migrations.
package store
