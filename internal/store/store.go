// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists accepted citations in a SQLite table and skips
// exact duplicates using a content fingerprint over title and citation.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/pdiddy/citescholar/pkg/types"
)

const schema = `CREATE TABLE IF NOT EXISTS citations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	citation TEXT NOT NULL,
	citation_hash TEXT NOT NULL UNIQUE,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

// Store manages the citation database. It holds a single connection for
// its lifetime and is not meant to be shared between processes.
type Store struct {
	db     *sql.DB
	path   string
	logger *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for store diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open opens or creates the citation database at path. An empty path uses
// types.DefaultDatabasePath. Schema creation is idempotent, so Open is safe
// to call on every run.
func Open(path string, opts ...Option) (*Store, error) {
	if path == "" {
		path = types.DefaultDatabasePath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: path, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	s.logger.Debug("citation store ready", zap.String("path", path))

	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Fingerprint returns the lower-case hex SHA-256 of title immediately
// followed by citation, with no separator.
func Fingerprint(title, citation string) string {
	sum := sha256.Sum256([]byte(title + citation))
	return hex.EncodeToString(sum[:])
}

// Insert stores (title, citation) unless a record with the same fingerprint
// already exists. It reports true when a row was written and false for a
// duplicate. On any storage error the transaction is rolled back and
// Insert returns false with the error.
func (s *Store) Insert(ctx context.Context, title, citation string) (bool, error) {
	hash := Fingerprint(title, citation)
	log := s.logger.With(zap.String("citation_hash", hash))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM citations WHERE citation_hash = ?`, hash,
	).Scan(&id)
	switch {
	case err == nil:
		log.Info("citation already stored", zap.Int64("id", id))
		return false, nil
	case !errors.Is(err, sql.ErrNoRows):
		return false, fmt.Errorf("checking for duplicate: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO citations (title, citation, citation_hash) VALUES (?, ?, ?)`,
		title, citation, hash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			log.Info("citation already stored")
			return false, nil
		}
		return false, fmt.Errorf("inserting citation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing citation: %w", err)
	}

	if newID, err := res.LastInsertId(); err == nil {
		log.Debug("citation stored", zap.Int64("id", newID), zap.String("title", title))
	}
	return true, nil
}

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique
}

// Count returns the number of stored citations.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM citations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting citations: %w", err)
	}
	return n, nil
}

// Lookup returns the record with the given fingerprint, or nil if none
// exists.
func (s *Store) Lookup(ctx context.Context, hash string) (*types.Citation, error) {
	var c types.Citation
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, citation, citation_hash, created_at FROM citations WHERE citation_hash = ?`, hash,
	).Scan(&c.ID, &c.Title, &c.Citation, &c.Hash, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up citation: %w", err)
	}
	return &c, nil
}

// List returns stored citations, newest first. A limit of 0 or less
// returns all of them.
func (s *Store) List(ctx context.Context, limit int) ([]types.Citation, error) {
	query := `SELECT id, title, citation, citation_hash, created_at FROM citations ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing citations: %w", err)
	}
	defer rows.Close()

	var out []types.Citation
	for rows.Next() {
		var c types.Citation
		if err := rows.Scan(&c.ID, &c.Title, &c.Citation, &c.Hash, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning citation: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
