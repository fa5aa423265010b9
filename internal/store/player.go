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

// CreatePlayer inserts a new player. A taken unique name surfaces as
// ErrPlayerExists.
func (s *Store) CreatePlayer(ctx context.Context, player *domain.Player) error {
	player.ID = uuid.New().String()
	player.CreatedAt = time.Now()

	query := s.rebind(`
		INSERT INTO players (id, name, unique_name, password, created_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	_, err := s.db.ExecContext(ctx, query,
		player.ID, player.Name, player.UniqueName, player.Password, toNanos(player.CreatedAt))
	if err != nil {
		return s.constraintErr(err, domain.ErrPlayerExists, "creating player")
	}
	return nil
}

// GetPlayer fetches a player by unique name.
func (s *Store) GetPlayer(ctx context.Context, uniqueName string) (*domain.Player, error) {
	query := s.rebind(`
		SELECT id, name, unique_name, password, created_at
		FROM players
		WHERE unique_name = ?
	`)
	var player domain.Player
	var createdAt int64
	err := s.db.QueryRowContext(ctx, query, uniqueName).Scan(
		&player.ID, &player.Name, &player.UniqueName, &player.Password, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("getting player: %w", err)
	}
	player.CreatedAt = fromNanos(createdAt)
	return &player, nil
}

// ListPlayers returns all players in insertion order.
func (s *Store) ListPlayers(ctx context.Context) ([]domain.Player, error) {
	query := `
		SELECT id, name, unique_name, password, created_at
		FROM players
		ORDER BY created_at, id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing players: %w", err)
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		var player domain.Player
		var createdAt int64
		if err := rows.Scan(&player.ID, &player.Name, &player.UniqueName,
			&player.Password, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning player: %w", err)
		}
		player.CreatedAt = fromNanos(createdAt)
		players = append(players, player)
	}
	return players, rows.Err()
}

// UpdatePlayer replaces the display name and unique name of the player
// addressed by uniqueName. The stored credential is left untouched.
// A rename onto a taken unique name surfaces as ErrPlayerExists.
func (s *Store) UpdatePlayer(ctx context.Context, uniqueName string, upd domain.Player) error {
	query := s.rebind(`
		UPDATE players
		SET name = ?, unique_name = ?
		WHERE unique_name = ?
	`)
	result, err := s.db.ExecContext(ctx, query, upd.Name, upd.UniqueName, uniqueName)
	if err != nil {
		return s.constraintErr(err, domain.ErrPlayerExists, "updating player")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating player: %w", err)
	}
	if affected == 0 {
		return domain.ErrPlayerNotFound
	}
	return nil
}

// DeletePlayer removes a player and, via the DDL cascade, all their scores.
func (s *Store) DeletePlayer(ctx context.Context, uniqueName string) error {
	query := s.rebind(`DELETE FROM players WHERE unique_name = ?`)
	result, err := s.db.ExecContext(ctx, query, uniqueName)
	if err != nil {
		return fmt.Errorf("deleting player: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting player: %w", err)
	}
	if affected == 0 {
		return domain.ErrPlayerNotFound
	}
	return nil
}
