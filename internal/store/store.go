// Package store provides relational persistence for games, levels, players
// and scores. Entities are addressed by their natural keys; uniqueness and
// referential integrity are enforced by database constraints at commit, not
// by application pre-checks.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/gamescore-service/internal/config"
	"github.com/gamescore-service/internal/domain"
)

// Store provides data access over a SQL database.
type Store struct {
	db      *sql.DB
	dialect dialect
	logger  *slog.Logger
}

// Open connects to the configured database.
func Open(cfg *config.StorageConfig, logger *slog.Logger) (*Store, error) {
	var d dialect
	switch cfg.Driver {
	case config.DriverSQLite, "":
		d = sqliteDialect{}
	case config.DriverPostgres:
		d = postgresDialect{}
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}

	db, err := d.open(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return &Store{
		db:      db,
		dialect: d,
		logger:  logger,
	}, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// RunMigrations creates the schema. Cascading deletes live in the DDL so a
// single parent DELETE removes the whole subtree atomically.
func (s *Store) RunMigrations(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			name VARCHAR(64) NOT NULL UNIQUE,
			publisher VARCHAR(64) NOT NULL DEFAULT '',
			genre VARCHAR(64) NOT NULL DEFAULT '',
			created_at BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS levels (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL REFERENCES games(id) ON DELETE CASCADE,
			name VARCHAR(64) NOT NULL,
			score_kind VARCHAR(8) NOT NULL,
			sort_order VARCHAR(16) NOT NULL,
			created_at BIGINT NOT NULL,
			UNIQUE(game_id, name)
		)`,
		`CREATE TABLE IF NOT EXISTS players (
			id TEXT PRIMARY KEY,
			name VARCHAR(64) NOT NULL,
			unique_name VARCHAR(64) NOT NULL UNIQUE,
			password VARCHAR(32) NOT NULL,
			created_at BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS scores (
			id TEXT PRIMARY KEY,
			level_id TEXT NOT NULL REFERENCES levels(id) ON DELETE CASCADE,
			player_id TEXT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
			value BIGINT NOT NULL,
			recorded_at VARCHAR(19) NOT NULL,
			created_at BIGINT NOT NULL,
			UNIQUE(level_id, player_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_levels_game ON levels(game_id)`,
		`CREATE INDEX IF NOT EXISTS idx_scores_level ON scores(level_id, value)`,
		`CREATE INDEX IF NOT EXISTS idx_scores_player ON scores(player_id)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.ExecContext(ctx, migration); err != nil {
			return fmt.Errorf("executing migration: %w", err)
		}
	}

	s.logger.Info("database migrations completed", "driver", s.dialect.name())
	return nil
}

// rebind converts ?-style placeholders to the dialect's form.
func (s *Store) rebind(query string) string {
	return s.dialect.rebind(query)
}

// constraintErr maps a driver constraint violation to the domain error for
// the entity being written. Other errors are wrapped with the given verb.
func (s *Store) constraintErr(err error, conflict error, verb string) error {
	if s.dialect.isUniqueViolation(err) {
		return conflict
	}
	if s.dialect.isForeignKeyViolation(err) {
		return domain.ErrInvalidReference
	}
	return fmt.Errorf("%s: %w", verb, err)
}

// withTx runs fn inside a transaction, rolling back on any error.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func toNanos(t time.Time) int64 {
	return t.UTC().UnixNano()
}

func fromNanos(n int64) time.Time {
	return time.Unix(0, n).UTC()
}
