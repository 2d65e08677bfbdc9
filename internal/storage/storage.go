// Package storage persists users, boards, articles, preferences and catalog sources in a
// relational database through sqlx. PostgreSQL (lib/pq) is the production driver; SQLite
// (modernc) is supported for development and tests. Queries are written with '?' placeholders
// and rebound for the active driver.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

type Store struct {
	db *sqlx.DB
	q  sqlx.ExtContext
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db, q: db}
}

// Open connects with the given driver ("postgres" or "sqlite") and applies the schema.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	if driver == "sqlite" {
		// One connection keeps ":memory:" databases alive and serialises writers.
		db.SetMaxOpenConns(1)
	}

	s := New(db)
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// InTx runs fn against a Store bound to a single transaction.
func (s *Store) InTx(ctx context.Context, fn func(tx *Store) error) error {
	if _, nested := s.q.(*sqlx.Tx); nested {
		return fn(s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(&Store{db: s.db, q: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *Store) Migrate(ctx context.Context) error {
	idType, tsType := "BIGSERIAL PRIMARY KEY", "TIMESTAMPTZ"
	if s.db.DriverName() == "sqlite" {
		idType, tsType = "INTEGER PRIMARY KEY AUTOINCREMENT", "TIMESTAMP"
	}

	schema := strings.NewReplacer("{{id}}", idType, "{{ts}}", tsType).Replace(schemaSQL)
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS users (
	id {{id}},
	name TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS boards (
	id {{id}},
	name TEXT NOT NULL,
	user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at {{ts}} NOT NULL
);

CREATE TABLE IF NOT EXISTS articles (
	id {{id}},
	title TEXT NOT NULL,
	overview TEXT NOT NULL DEFAULT '',
	link TEXT NOT NULL DEFAULT '',
	pic TEXT NOT NULL DEFAULT '',
	created_at {{ts}} NOT NULL
);

CREATE TABLE IF NOT EXISTS preferences (
	id {{id}},
	title TEXT NOT NULL,
	norm TEXT NOT NULL UNIQUE,
	created_at {{ts}} NOT NULL,
	updated_at {{ts}} NOT NULL
);

CREATE TABLE IF NOT EXISTS board_articles (
	board_id BIGINT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
	article_id BIGINT NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
	PRIMARY KEY (board_id, article_id)
);

CREATE TABLE IF NOT EXISTS article_preferences (
	article_id BIGINT NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
	preference_id BIGINT NOT NULL REFERENCES preferences(id) ON DELETE CASCADE,
	PRIMARY KEY (article_id, preference_id)
);

CREATE TABLE IF NOT EXISTS user_preferences (
	user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	preference_id BIGINT NOT NULL REFERENCES preferences(id) ON DELETE CASCADE,
	PRIMARY KEY (user_id, preference_id)
);

CREATE TABLE IF NOT EXISTS sources (
	id {{id}},
	name TEXT NOT NULL,
	feed_url TEXT NOT NULL UNIQUE,
	created_at {{ts}} NOT NULL
);

CREATE INDEX IF NOT EXISTS boards_user_id_idx ON boards (user_id);
CREATE INDEX IF NOT EXISTS articles_link_idx ON articles (link);
`

func (s *Store) get(ctx context.Context, dest any, query string, args ...any) error {
	err := sqlx.GetContext(ctx, s.q, dest, s.q.Rebind(query), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (s *Store) selectAll(ctx context.Context, dest any, query string, args ...any) error {
	return sqlx.SelectContext(ctx, s.q, dest, s.q.Rebind(query), args...)
}

func (s *Store) exec(ctx context.Context, query string, args ...any) error {
	_, err := s.q.ExecContext(ctx, s.q.Rebind(query), args...)
	return err
}
