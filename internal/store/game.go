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

// CreateGame inserts a new game, filling in its id and creation time.
// A taken name surfaces as ErrGameExists.
func (s *Store) CreateGame(ctx context.Context, game *domain.Game) error {
	game.ID = uuid.New().String()
	game.CreatedAt = time.Now()

	query := s.rebind(`
		INSERT INTO games (id, name, publisher, genre, created_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	_, err := s.db.ExecContext(ctx, query,
		game.ID, game.Name, game.Publisher, game.Genre, toNanos(game.CreatedAt))
	if err != nil {
		return s.constraintErr(err, domain.ErrGameExists, "creating game")
	}
	return nil
}

// GetGame fetches a game by name.
func (s *Store) GetGame(ctx context.Context, name string) (*domain.Game, error) {
	query := s.rebind(`
		SELECT id, name, publisher, genre, created_at
		FROM games
		WHERE name = ?
	`)
	var game domain.Game
	var createdAt int64
	err := s.db.QueryRowContext(ctx, query, name).Scan(
		&game.ID, &game.Name, &game.Publisher, &game.Genre, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGameNotFound
		}
		return nil, fmt.Errorf("getting game: %w", err)
	}
	game.CreatedAt = fromNanos(createdAt)
	return &game, nil
}

// ListGames returns all games in insertion order.
func (s *Store) ListGames(ctx context.Context) ([]domain.Game, error) {
	query := `
		SELECT id, name, publisher, genre, created_at
		FROM games
		ORDER BY created_at, id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing games: %w", err)
	}
	defer rows.Close()

	var games []domain.Game
	for rows.Next() {
		var game domain.Game
		var createdAt int64
		if err := rows.Scan(&game.ID, &game.Name, &game.Publisher, &game.Genre, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		game.CreatedAt = fromNanos(createdAt)
		games = append(games, game)
	}
	return games, rows.Err()
}

// UpdateGame full-replaces the game addressed by name. Renaming onto a taken
// name surfaces as ErrGameExists from the uniqueness constraint.
func (s *Store) UpdateGame(ctx context.Context, name string, upd domain.Game) error {
	query := s.rebind(`
		UPDATE games
		SET name = ?, publisher = ?, genre = ?
		WHERE name = ?
	`)
	result, err := s.db.ExecContext(ctx, query, upd.Name, upd.Publisher, upd.Genre, name)
	if err != nil {
		return s.constraintErr(err, domain.ErrGameExists, "updating game")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating game: %w", err)
	}
	if affected == 0 {
		return domain.ErrGameNotFound
	}
	return nil
}

// DeleteGame removes a game. The DDL cascade deletes its levels and their
// scores in the same statement, so there is no observable partial state.
func (s *Store) DeleteGame(ctx context.Context, name string) error {
	query := s.rebind(`DELETE FROM games WHERE name = ?`)
	result, err := s.db.ExecContext(ctx, query, name)
	if err != nil {
		return fmt.Errorf("deleting game: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting game: %w", err)
	}
	if affected == 0 {
		return domain.ErrGameNotFound
	}
	return nil
}
