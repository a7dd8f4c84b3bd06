// Package cache persists a built canonical collection across process runs,
// keyed by a fingerprint of the grammar it was built from, so a caller that
// rebuilds the same grammar repeatedly (a CLI invoked once per file, for
// instance) can skip the fixpoint and canonical-collection work on a cache
// hit. Grounded in the teacher's server/dao/sqlite package: a modernc.org/sqlite
// store, with github.com/dekarrin/rezi doing the struct<->bytes work, as it
// does in that package for its own domain types.
package cache

import (
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/cfg-tools/lr1/automaton"
	"github.com/dekarrin/rezi"
	"golang.org/x/crypto/blake2b"
	_ "modernc.org/sqlite"
)

// Store is a handle to a SQLite-backed cache of built collections.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) a cache database at path, ensuring its
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache: opening %q: %w", path, err)
	}

	const schema = `
CREATE TABLE IF NOT EXISTS collections (
	fingerprint TEXT PRIMARY KEY,
	built_at INTEGER NOT NULL,
	payload BLOB NOT NULL
)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Fingerprint hashes src (a grammar's serialized rule text, conventionally)
// into the key Get and Put key the cache by. Separate from automaton's
// per-state fingerprint, which identifies one item set rather than a whole
// grammar.
func Fingerprint(src string) string {
	sum := blake2b.Sum256([]byte(src))
	return hex.EncodeToString(sum[:])
}

// Get looks up a previously cached collection by fingerprint. The second
// return value is false on a cache miss, not an error.
func (s *Store) Get(fingerprint string) (*automaton.Collection, bool, error) {
	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM collections WHERE fingerprint = ?`, fingerprint).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: querying %q: %w", fingerprint, err)
	}

	var col automaton.Collection
	n, err := rezi.DecBinary(payload, &col)
	if err != nil {
		return nil, false, fmt.Errorf("cache: decoding %q: %w", fingerprint, err)
	}
	if n != len(payload) {
		return nil, false, fmt.Errorf("cache: decoding %q: consumed %d/%d bytes", fingerprint, n, len(payload))
	}

	return &col, true, nil
}

// Put stores col under fingerprint, overwriting whatever was cached there
// before.
func (s *Store) Put(fingerprint string, col *automaton.Collection) error {
	payload := rezi.EncBinary(col)

	_, err := s.db.Exec(
		`INSERT INTO collections (fingerprint, built_at, payload) VALUES (?, ?, ?)
		 ON CONFLICT(fingerprint) DO UPDATE SET built_at = excluded.built_at, payload = excluded.payload`,
		fingerprint, time.Now().Unix(), payload)
	if err != nil {
		return fmt.Errorf("cache: storing %q: %w", fingerprint, err)
	}
	return nil
}
