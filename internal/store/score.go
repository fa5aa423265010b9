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

// CreateScore inserts a score for the named player on the named level.
// Both lookups and the insert share one transaction; a second score for the
// same (level, player) pair is rejected by the compound uniqueness
// constraint and surfaces as ErrScoreExists.
func (s *Store) CreateScore(ctx context.Context, gameName, levelName, playerUniqueName string, value int64, recordedAt string) (*domain.Score, error) {
	score := &domain.Score{
		ID:         uuid.New().String(),
		Value:      value,
		RecordedAt: recordedAt,
		CreatedAt:  time.Now(),
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, s.rebind(`
			SELECT l.id FROM levels l
			JOIN games g ON l.game_id = g.id
			WHERE g.name = ? AND l.name = ?
		`), gameName, levelName).Scan(&score.LevelID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrLevelNotFound
			}
			return fmt.Errorf("resolving level: %w", err)
		}

		err = tx.QueryRowContext(ctx,
			s.rebind(`SELECT id FROM players WHERE unique_name = ?`),
			playerUniqueName).Scan(&score.PlayerID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrPlayerNotFound
			}
			return fmt.Errorf("resolving player: %w", err)
		}

		query := s.rebind(`
			INSERT INTO scores (id, level_id, player_id, value, recorded_at, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`)
		_, err = tx.ExecContext(ctx, query,
			score.ID, score.LevelID, score.PlayerID,
			score.Value, score.RecordedAt, toNanos(score.CreatedAt))
		if err != nil {
			return s.constraintErr(err, domain.ErrScoreExists, "creating score")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return score, nil
}

// GetScore fetches a score by its three-part compound key. The level is
// resolved first so a missing level and a missing score report distinctly.
func (s *Store) GetScore(ctx context.Context, gameName, levelName, playerUniqueName string) (*domain.Score, error) {
	level, err := s.GetLevel(ctx, gameName, levelName)
	if err != nil {
		return nil, err
	}

	query := s.rebind(`
		SELECT s.id, s.level_id, s.player_id, s.value, s.recorded_at, s.created_at
		FROM scores s
		JOIN players p ON s.player_id = p.id
		WHERE s.level_id = ? AND p.unique_name = ?
	`)
	var score domain.Score
	var createdAt int64
	err = s.db.QueryRowContext(ctx, query, level.ID, playerUniqueName).Scan(
		&score.ID, &score.LevelID, &score.PlayerID,
		&score.Value, &score.RecordedAt, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrScoreNotFound
		}
		return nil, fmt.Errorf("getting score: %w", err)
	}
	score.CreatedAt = fromNanos(createdAt)
	return &score, nil
}

// UpdateScore replaces the value and timestamp of an existing score. The
// owning level and player never change through this operation.
func (s *Store) UpdateScore(ctx context.Context, gameName, levelName, playerUniqueName string, value int64, recordedAt string) error {
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
			UPDATE scores
			SET value = ?, recorded_at = ?
			WHERE level_id = ?
			  AND player_id IN (SELECT id FROM players WHERE unique_name = ?)
		`)
		result, err := tx.ExecContext(ctx, query, value, recordedAt, levelID, playerUniqueName)
		if err != nil {
			return fmt.Errorf("updating score: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("updating score: %w", err)
		}
		if affected == 0 {
			return domain.ErrScoreNotFound
		}
		return nil
	})
}

// DeleteScore removes one score addressed by its compound key.
func (s *Store) DeleteScore(ctx context.Context, gameName, levelName, playerUniqueName string) error {
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
			DELETE FROM scores
			WHERE level_id = ?
			  AND player_id IN (SELECT id FROM players WHERE unique_name = ?)
		`)
		result, err := tx.ExecContext(ctx, query, levelID, playerUniqueName)
		if err != nil {
			return fmt.Errorf("deleting score: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("deleting score: %w", err)
		}
		if affected == 0 {
			return domain.ErrScoreNotFound
		}
		return nil
	})
}

// ListLevelScores returns a level's scores with the owning players resolved,
// ordered by value per the given sort order. Ties keep insertion order.
func (s *Store) ListLevelScores(ctx context.Context, levelID string, order domain.SortOrder) ([]domain.LevelScoreEntry, error) {
	direction := "DESC"
	if order == domain.SortOrderAscending {
		direction = "ASC"
	}
	query := s.rebind(fmt.Sprintf(`
		SELECT p.name, p.unique_name, s.value, s.recorded_at
		FROM scores s
		JOIN players p ON s.player_id = p.id
		WHERE s.level_id = ?
		ORDER BY s.value %s, s.created_at, s.id
	`, direction))

	rows, err := s.db.QueryContext(ctx, query, levelID)
	if err != nil {
		return nil, fmt.Errorf("listing level scores: %w", err)
	}
	defer rows.Close()

	var entries []domain.LevelScoreEntry
	for rows.Next() {
		var entry domain.LevelScoreEntry
		if err := rows.Scan(&entry.PlayerName, &entry.PlayerUniqueName,
			&entry.Value, &entry.RecordedAt); err != nil {
			return nil, fmt.Errorf("scanning level score: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// ListPlayerScores returns all of a player's scores across games and levels,
// enriched with the owning game and level, in insertion order.
func (s *Store) ListPlayerScores(ctx context.Context, playerUniqueName string) ([]domain.PlayerScoreEntry, error) {
	query := s.rebind(`
		SELECT g.name, l.name, l.id, l.score_kind, s.value, s.recorded_at
		FROM scores s
		JOIN levels l ON s.level_id = l.id
		JOIN games g ON l.game_id = g.id
		JOIN players p ON s.player_id = p.id
		WHERE p.unique_name = ?
		ORDER BY s.created_at, s.id
	`)
	rows, err := s.db.QueryContext(ctx, query, playerUniqueName)
	if err != nil {
		return nil, fmt.Errorf("listing player scores: %w", err)
	}
	defer rows.Close()

	var entries []domain.PlayerScoreEntry
	for rows.Next() {
		var entry domain.PlayerScoreEntry
		if err := rows.Scan(&entry.GameName, &entry.LevelName, &entry.LevelID,
			&entry.ScoreKind, &entry.Value, &entry.RecordedAt); err != nil {
			return nil, fmt.Errorf("scanning player score: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// CountScores returns the total number of stored scores.
func (s *Store) CountScores(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM scores`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting scores: %w", err)
	}
	return count, nil
}
