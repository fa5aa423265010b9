package service

import (
	"context"

	"github.com/gamescore-service/internal/domain"
)

// CreateGame adds a new game.
func (s *GameScoreService) CreateGame(ctx context.Context, game *domain.Game) error {
	if err := s.store.CreateGame(ctx, game); err != nil {
		return err
	}
	s.logger.Info("game created", "name", game.Name)
	return nil
}

// GetGame returns a game with its levels.
func (s *GameScoreService) GetGame(ctx context.Context, name string) (*domain.Game, []domain.Level, error) {
	game, err := s.store.GetGame(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	levels, err := s.store.ListLevels(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	return game, levels, nil
}

// ListGames returns all games in insertion order.
func (s *GameScoreService) ListGames(ctx context.Context) ([]domain.Game, error) {
	return s.store.ListGames(ctx)
}

// UpdateGame replaces a game's fields. It reports whether the game was
// renamed, which moves it to a new URL.
func (s *GameScoreService) UpdateGame(ctx context.Context, name string, upd domain.Game) (bool, error) {
	if err := s.store.UpdateGame(ctx, name, upd); err != nil {
		return false, err
	}
	renamed := upd.Name != name
	if renamed {
		s.logger.Info("game renamed", "from", name, "to", upd.Name)
	}
	return renamed, nil
}

// DeleteGame removes a game and cascades to its levels and their scores.
func (s *GameScoreService) DeleteGame(ctx context.Context, name string) error {
	levels, err := s.store.ListLevels(ctx, name)
	if err != nil {
		return err
	}
	if err := s.store.DeleteGame(ctx, name); err != nil {
		return err
	}

	ids := make([]string, len(levels))
	for i, level := range levels {
		ids[i] = level.ID
	}
	s.invalidateLevels(ctx, ids...)

	s.logger.Info("game deleted", "name", name, "levels", len(levels))
	return nil
}
