// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache persists completed document analyses keyed by content hash,
// so re-running the pipeline over an unchanged document skips the analysis
// stage entirely.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

const dbFile = "analyses.db"

// Store manages the analysis cache SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the cache database under dir, creating the schema
// if it does not exist.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	stmt := `CREATE TABLE IF NOT EXISTS analyses (
		content_hash TEXT PRIMARY KEY,
		analysis BLOB NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`
	if _, err := s.db.Exec(stmt); err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Key derives the cache key for a document model under a given analysis
// configuration. Any change to the document content or the thresholds that
// shape detection produces a different key.
func Key(doc *types.DocumentModel, cfg types.AnalysisConfig) (string, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("serializing document for hashing: %w", err)
	}
	fingerprint, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("serializing config for hashing: %w", err)
	}

	h := sha256.New()
	h.Write(data)
	h.Write(fingerprint)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Get returns the cached analysis for key, or nil when no entry exists.
func (s *Store) Get(key string) (*types.DocumentAnalysis, error) {
	var blob []byte
	err := s.db.QueryRow(
		`SELECT analysis FROM analyses WHERE content_hash = ?`, key,
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying cache: %w", err)
	}

	var analysis types.DocumentAnalysis
	if err := yaml.Unmarshal(blob, &analysis); err != nil {
		return nil, fmt.Errorf("decoding cached analysis: %w", err)
	}
	return &analysis, nil
}

// Put stores an analysis under key, replacing any existing entry.
func (s *Store) Put(key string, analysis *types.DocumentAnalysis) error {
	blob, err := yaml.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("encoding analysis: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO analyses (content_hash, analysis, created_at) VALUES (?, ?, ?)`,
		key, blob, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}
