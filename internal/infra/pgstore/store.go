// Package pgstore provides a PostgreSQL docstore.Backend. Documents live in one JSONB table and
// every write raises a NOTIFY, so all connected clients see changes as they happen.
package pgstore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/runoshun/editflow/internal/domain"
	"github.com/runoshun/editflow/internal/infra/docstore"
)

const logCategory = "pgstore"

// DefaultTable is the table holding every document.
const DefaultTable = "editflow_documents"

// Options configures table and channel names.
type Options struct {
	Table   string // defaults to DefaultTable
	Channel string // defaults to domain.ChangeChannel
}

// Store implements docstore.Backend on a pgx connection pool.
// Change feeds run on their own connections outside the pool.
type Store struct {
	pool      *pgxpool.Pool
	logger    domain.Logger
	done      context.Context
	stop      context.CancelFunc
	table     string
	channel   string
	listeners sync.WaitGroup
	mu        sync.Mutex
	closed    bool
}

// New connects to the database at url.
func New(ctx context.Context, url string, opts Options, logger domain.Logger) (*Store, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: postgres store needs [store] url", domain.ErrInvalidConfig)
	}
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if opts.Table == "" {
		opts.Table = DefaultTable
	}
	if opts.Channel == "" {
		opts.Channel = domain.ChangeChannel
	}
	if logger == nil {
		logger = domain.NopLogger{}
	}
	done, stop := context.WithCancel(context.Background())
	return &Store{pool: pool, logger: logger, done: done, stop: stop, table: opts.Table, channel: opts.Channel}, nil
}

func (s *Store) ident() string {
	return pgx.Identifier{s.table}.Sanitize()
}

// Initialize creates the documents table if it doesn't exist.
func (s *Store) Initialize(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
	create table if not exists `+s.ident()+` (
		collection text not null,
		id text not null,
		body jsonb not null,
		updated_at timestamptz not null default now(),
		primary key (collection, id)
	)`)
	if err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	return nil
}

// Get retrieves a document by ID.
func (s *Store) Get(ctx context.Context, collection, id string) ([]byte, error) {
	var body string
	err := s.pool.QueryRow(ctx,
		`select body::text from `+s.ident()+` where collection = $1 and id = $2`,
		collection, id).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, docstore.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(body), nil
}

// List retrieves every document of a collection, ordered by ID.
func (s *Store) List(ctx context.Context, collection string) ([][]byte, error) {
	rows, err := s.pool.Query(ctx,
		`select body::text from `+s.ident()+` where collection = $1 order by id`, collection)
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

// Put upserts a document and notifies listeners when the transaction commits.
func (s *Store) Put(ctx context.Context, collection, id string, doc []byte) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
		insert into `+s.ident()+` (collection, id, body, updated_at)
		values ($1, $2, $3::jsonb, now())
		on conflict (collection, id) do update set body = excluded.body, updated_at = now()`,
			collection, id, string(doc))
		if err != nil {
			return err
		}
		return s.notify(ctx, tx, collection, id)
	})
}

// Delete removes a document and notifies listeners if it existed.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`delete from `+s.ident()+` where collection = $1 and id = $2`, collection, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		return s.notify(ctx, tx, collection, id)
	})
}

func (s *Store) notify(ctx context.Context, tx pgx.Tx, collection, id string) error {
	_, err := tx.Exec(ctx, `select pg_notify($1, $2)`, s.channel, collection+"/"+id)
	return err
}

// Changes opens a dedicated connection in LISTEN mode. The feed ends when ctx is done
// or the store is closed.
func (s *Store) Changes(ctx context.Context) (<-chan struct{}, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, domain.ErrStoreClosed
	}
	s.listeners.Add(1)
	s.mu.Unlock()

	lctx, cancel := context.WithCancel(ctx)
	unhook := context.AfterFunc(s.done, cancel)
	release := func() {
		unhook()
		cancel()
		s.listeners.Done()
	}

	conn, err := pgx.ConnectConfig(lctx, s.pool.Config().ConnConfig)
	if err != nil {
		release()
		return nil, fmt.Errorf("open listen connection: %w", err)
	}
	if _, err := conn.Exec(lctx, "listen "+pgx.Identifier{s.channel}.Sanitize()); err != nil {
		_ = conn.Close(context.Background())
		release()
		return nil, fmt.Errorf("listen: %w", err)
	}

	ch := make(chan struct{}, 1)
	go func() {
		defer release()
		defer close(ch)
		defer func() { _ = conn.Close(context.Background()) }()
		for {
			n, err := conn.WaitForNotification(lctx)
			if err != nil {
				if lctx.Err() == nil {
					s.logger.Error(logCategory, "wait for notification: "+err.Error())
				}
				return
			}
			s.logger.Debug(logCategory, "notification: "+n.Payload)
			docstore.Signal(ch)
		}
	}()
	return ch, nil
}

// Drop removes the documents table.
func (s *Store) Drop(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `drop table if exists `+s.ident())
	return err
}

// Close ends every change feed, waits for their connections to close, then closes the pool.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.stop()
	s.listeners.Wait()
	s.pool.Close()
	return nil
}

// Ensure Store implements docstore.Backend.
var _ docstore.Backend = (*Store)(nil)
