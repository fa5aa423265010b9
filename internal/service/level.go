package service

import (
	"context"

	"github.com/gamescore-service/internal/domain"
)

// CreateLevel adds a level under an existing game.
func (s *GameScoreService) CreateLevel(ctx context.Context, gameName string, level *domain.Level) error {
	if err := s.store.CreateLevel(ctx, gameName, level); err != nil {
		return err
	}
	s.logger.Info("level created", "game", gameName, "level", level.Name)
	return nil
}

// GetLevel returns a level without its scores.
func (s *GameScoreService) GetLevel(ctx context.Context, gameName, levelName string) (*domain.Level, error) {
	return s.store.GetLevel(ctx, gameName, levelName)
}

// GetLevelWithScores returns a level and its complete score listing,
// ordered by the level's sort order. The listing is served from cache
// when possible.
func (s *GameScoreService) GetLevelWithScores(ctx context.Context, gameName, levelName string) (*domain.Level, []domain.LevelScoreEntry, error) {
	level, err := s.store.GetLevel(ctx, gameName, levelName)
	if err != nil {
		return nil, nil, err
	}

	if s.cache != nil {
		if entries, ok := s.cache.GetLevelScores(ctx, level.ID, level.SortOrder); ok {
			return level, entries, nil
		}
	}

	entries, err := s.store.ListLevelScores(ctx, level.ID, level.SortOrder)
	if err != nil {
		return nil, nil, err
	}
	if s.cache != nil {
		s.cache.SetLevelScores(ctx, level.ID, level.SortOrder, entries)
	}
	return level, entries, nil
}

// UpdateLevel replaces a level's fields. It reports whether the level
// was renamed. A sort order change invalidates the cached listing.
func (s *GameScoreService) UpdateLevel(ctx context.Context, gameName, levelName string, upd domain.Level) (bool, error) {
	level, err := s.store.GetLevel(ctx, gameName, levelName)
	if err != nil {
		return false, err
	}
	if err := s.store.UpdateLevel(ctx, gameName, levelName, upd); err != nil {
		return false, err
	}
	s.invalidateLevels(ctx, level.ID)

	renamed := upd.Name != levelName
	if renamed {
		s.logger.Info("level renamed", "game", gameName, "from", levelName, "to", upd.Name)
	}
	return renamed, nil
}

// DeleteLevel removes a level and cascades to its scores.
func (s *GameScoreService) DeleteLevel(ctx context.Context, gameName, levelName string) error {
	level, err := s.store.GetLevel(ctx, gameName, levelName)
	if err != nil {
		return err
	}
	if err := s.store.DeleteLevel(ctx, gameName, levelName); err != nil {
		return err
	}
	s.invalidateLevels(ctx, level.ID)

	s.logger.Info("level deleted", "game", gameName, "level", levelName)
	return nil
}
