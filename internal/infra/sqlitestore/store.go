// Package sqlitestore provides a single-file SQLite docstore.Backend.
// Other processes sharing the file are noticed by polling a revision counter.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/runoshun/editflow/internal/domain"
	"github.com/runoshun/editflow/internal/infra/docstore"
)

const logCategory = "sqlitestore"

// DefaultPollInterval is how often Changes checks the revision counter.
const DefaultPollInterval = 500 * time.Millisecond

// Store implements docstore.Backend on a SQLite database file.
type Store struct {
	db           *sql.DB
	logger       domain.Logger
	pollInterval time.Duration
}

// New opens (creating if needed) the database file at path.
func New(path string, pollInterval time.Duration, logger domain.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Store{db: db, logger: logger, pollInterval: pollInterval}, nil
}

// Initialize creates the tables if they don't exist.
func (s *Store) Initialize(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS documents (
			collection TEXT NOT NULL,
			id TEXT NOT NULL,
			body TEXT NOT NULL,
			updated_at DATETIME NOT NULL,
			PRIMARY KEY (collection, id)
		);

		CREATE TABLE IF NOT EXISTS revision (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			rev INTEGER NOT NULL
		);

		INSERT OR IGNORE INTO revision (id, rev) VALUES (1, 0);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Get retrieves a document by ID.
func (s *Store) Get(ctx context.Context, collection, id string) ([]byte, error) {
	var body string
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE collection = ? AND id = ?`, collection, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, docstore.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(body), nil
}

// List retrieves every document of a collection, ordered by ID.
func (s *Store) List(ctx context.Context, collection string) ([][]byte, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT body FROM documents WHERE collection = ? ORDER BY id`, collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs [][]byte
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		docs = append(docs, []byte(body))
	}
	return docs, rows.Err()
}

// Put upserts a document and bumps the revision.
func (s *Store) Put(ctx context.Context, collection, id string, doc []byte) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO documents (collection, id, body, updated_at) VALUES (?, ?, json(?), ?)
			ON CONFLICT (collection, id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
			collection, id, string(doc), time.Now().UTC())
		if err != nil {
			return err
		}
		return bumpRevision(ctx, tx)
	})
}

// Delete removes a document and bumps the revision if it existed.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE collection = ? AND id = ?`, collection, id)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil || n == 0 {
			return err
		}
		return bumpRevision(ctx, tx)
	})
}

// Revision returns the current write counter.
func (s *Store) Revision(ctx context.Context) (int64, error) {
	var rev int64
	err := s.db.QueryRowContext(ctx, `SELECT rev FROM revision WHERE id = 1`).Scan(&rev)
	return rev, err
}

// Changes polls the revision counter and signals whenever it moves.
func (s *Store) Changes(ctx context.Context) (<-chan struct{}, error) {
	last, err := s.Revision(ctx)
	if err != nil {
		return nil, fmt.Errorf("read revision: %w", err)
	}

	ch := make(chan struct{}, 1)
	go func() {
		defer close(ch)
		ticker := time.NewTicker(s.pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rev, err := s.Revision(ctx)
				if err != nil {
					if ctx.Err() == nil {
						s.logger.Warn(logCategory, "poll revision: "+err.Error())
					}
					continue
				}
				if rev != last {
					last = rev
					docstore.Signal(ch)
				}
			}
		}
	}()
	return ch, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func bumpRevision(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `UPDATE revision SET rev = rev + 1 WHERE id = 1`)
	return err
}

// Ensure Store implements docstore.Backend.
var _ docstore.Backend = (*Store)(nil)
