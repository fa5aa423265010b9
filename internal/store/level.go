package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gamescore-service/internal/domain"
)

// CreateLevel inserts a new level under the named game. The game lookup and
// the insert share one transaction so the game cannot vanish in between.
func (s *Store) CreateLevel(ctx context.Context, gameName string, level *domain.Level) error {
	level.ID = uuid.New().String()
	level.CreatedAt = time.Now()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		var gameID string
		err := tx.QueryRowContext(ctx,
			s.rebind(`SELECT id FROM games WHERE name = ?`), gameName).Scan(&gameID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrGameNotFound
			}
			return fmt.Errorf("resolving game: %w", err)
		}
		level.GameID = gameID

		query := s.rebind(`
			INSERT INTO levels (id, game_id, name, score_kind, sort_order, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`)
		_, err = tx.ExecContext(ctx, query,
			level.ID, level.GameID, level.Name,
			string(level.ScoreKind), string(level.SortOrder), toNanos(level.CreatedAt))
		if err != nil {
			return s.constraintErr(err, domain.ErrLevelExists, "creating level")
		}
		return nil
	})
}

// GetLevel fetches a level by its compound natural key (game name, level
// name). A miss on either segment reports the level as missing.
func (s *Store) GetLevel(ctx context.Context, gameName, levelName string) (*domain.Level, error) {
	query := s.rebind(`
		SELECT l.id, l.game_id, l.name, l.score_kind, l.sort_order, l.created_at
		FROM levels l
		JOIN games g ON l.game_id = g.id
		WHERE g.name = ? AND l.name = ?
	`)
	var level domain.Level
	var createdAt int64
	err := s.db.QueryRowContext(ctx, query, gameName, levelName).Scan(
		&level.ID, &level.GameID, &level.Name, &level.ScoreKind, &level.SortOrder, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLevelNotFound
		}
		return nil, fmt.Errorf("getting level: %w", err)
	}
	level.CreatedAt = fromNanos(createdAt)
	return &level, nil
}

// ListLevels returns a game's levels in insertion order.
func (s *Store) ListLevels(ctx context.Context, gameName string) ([]domain.Level, error) {
	query := s.rebind(`
		SELECT l.id, l.game_id, l.name, l.score_kind, l.sort_order, l.created_at
		FROM levels l
		JOIN games g ON l.game_id = g.id
		WHERE g.name = ?
		ORDER BY l.created_at, l.id
	`)
	rows, err := s.db.QueryContext(ctx, query, gameName)
	if err != nil {
		return nil, fmt.Errorf("listing levels: %w", err)
	}
	defer rows.Close()

	var levels []domain.Level
	for rows.Next() {
		var level domain.Level
		var createdAt int64
		if err := rows.Scan(&level.ID, &level.GameID, &level.Name,
			&level.ScoreKind, &level.SortOrder, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning level: %w", err)
		}
		level.CreatedAt = fromNanos(createdAt)
		levels = append(levels, level)
	}
	return levels, rows.Err()
}

// UpdateLevel full-replaces the level addressed by (game, name). The
// compound uniqueness constraint scopes rename collisions to the owning
// game and surfaces them as ErrLevelExists.
func (s *Store) UpdateLevel(ctx context.Context, gameName, levelName string, upd domain.Level) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var levelID string
		err := tx.QueryRowContext(ctx, s.rebind(`
			SELECT l.id FROM levels l
			JOIN games g ON l.game_id = g.id
			WHERE g.name = ? AND l.name = ?
		`), gameName, levelName).Scan(&levelID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrLevelNotFound
			}
			return fmt.Errorf("resolving level: %w", err)
		}

		query := s.rebind(`
			UPDATE levels
			SET name = ?, score_kind = ?, sort_order = ?
			WHERE id = ?
		`)
		_, err = tx.ExecContext(ctx, query,
			upd.Name, string(upd.ScoreKind), string(upd.SortOrder), levelID)
		if err != nil {
			return s.constraintErr(err, domain.ErrLevelExists, "updating level")
		}
		return nil
	})
}

// DeleteLevel removes a level and, via the DDL cascade, all its scores.
func (s *Store) DeleteLevel(ctx context.Context, gameName, levelName string) error {
	query := s.rebind(`
		DELETE FROM levels
		WHERE name = ? AND game_id IN (SELECT id FROM games WHERE name = ?)
	`)
	result, err := s.db.ExecContext(ctx, query, levelName, gameName)
	if err != nil {
		return fmt.Errorf("deleting level: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting level: %w", err)
	}
	if affected == 0 {
		return domain.ErrLevelNotFound
	}
	return nil
}

// CountLevels returns the number of levels stored for a game.
func (s *Store) CountLevels(ctx context.Context, gameName string) (int64, error) {
	query := s.rebind(`
		SELECT COUNT(*)
		FROM levels l
		JOIN games g ON l.game_id = g.id
		WHERE g.name = ?
	`)
	var count int64
	if err := s.db.QueryRowContext(ctx, query, gameName).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting levels: %w", err)
	}
	return count, nil
}
