package service

import (
	"context"
	"time"

	"github.com/gamescore-service/internal/domain"
)

// ScoreSubmission carries the client-facing fields of a score POST or
// PUT. The player authenticates the write with their password.
type ScoreSubmission struct {
	Player     string
	Password   string
	Value      int64
	RecordedAt string
}

// SubmitScore records a new score for a player on a level. Each player
// holds at most one score per level; a second submission conflicts. An
// empty timestamp defaults to the current time.
func (s *GameScoreService) SubmitScore(ctx context.Context, gameName, levelName string, sub ScoreSubmission) (*domain.Score, error) {
	level, err := s.store.GetLevel(ctx, gameName, levelName)
	if err != nil {
		return nil, err
	}
	player, err := s.store.GetPlayer(ctx, sub.Player)
	if err != nil {
		return nil, err
	}
	if !domain.PasswordMatches(player.Password, sub.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	recordedAt := sub.RecordedAt
	if recordedAt == "" {
		recordedAt = time.Now().Format(domain.TimestampFormat)
	}

	score, err := s.store.CreateScore(ctx, gameName, levelName, sub.Player, sub.Value, recordedAt)
	if err != nil {
		return nil, err
	}

	s.invalidateLevels(ctx, level.ID)
	s.notifyScoreChange(ctx, domain.ScoreEvent{
		Game:      gameName,
		Level:     levelName,
		Player:    sub.Player,
		Value:     sub.Value,
		Action:    domain.ScoreActionSubmit,
		Timestamp: time.Now().UTC(),
	})
	return score, nil
}

// GetScore returns one player's score on a level.
func (s *GameScoreService) GetScore(ctx context.Context, gameName, levelName, playerUniqueName string) (*domain.Score, error) {
	return s.store.GetScore(ctx, gameName, levelName, playerUniqueName)
}

// UpdateScore replaces the value and timestamp of an existing score.
// The payload must name the owning player; scores cannot be reassigned.
func (s *GameScoreService) UpdateScore(ctx context.Context, gameName, levelName, playerUniqueName string, sub ScoreSubmission) error {
	level, err := s.store.GetLevel(ctx, gameName, levelName)
	if err != nil {
		return err
	}
	if _, err := s.store.GetScore(ctx, gameName, levelName, playerUniqueName); err != nil {
		return err
	}
	player, err := s.store.GetPlayer(ctx, sub.Player)
	if err != nil {
		return err
	}
	if sub.Player != playerUniqueName {
		return domain.ErrOwnerImmutable
	}
	if !domain.PasswordMatches(player.Password, sub.Password) {
		return domain.ErrInvalidCredentials
	}

	recordedAt := sub.RecordedAt
	if recordedAt == "" {
		recordedAt = time.Now().Format(domain.TimestampFormat)
	}

	if err := s.store.UpdateScore(ctx, gameName, levelName, playerUniqueName, sub.Value, recordedAt); err != nil {
		return err
	}

	s.invalidateLevels(ctx, level.ID)
	s.notifyScoreChange(ctx, domain.ScoreEvent{
		Game:      gameName,
		Level:     levelName,
		Player:    playerUniqueName,
		Value:     sub.Value,
		Action:    domain.ScoreActionUpdate,
		Timestamp: time.Now().UTC(),
	})
	return nil
}

// DeleteScore removes one player's score from a level.
func (s *GameScoreService) DeleteScore(ctx context.Context, gameName, levelName, playerUniqueName string) error {
	level, err := s.store.GetLevel(ctx, gameName, levelName)
	if err != nil {
		return err
	}
	score, err := s.store.GetScore(ctx, gameName, levelName, playerUniqueName)
	if err != nil {
		return err
	}
	if err := s.store.DeleteScore(ctx, gameName, levelName, playerUniqueName); err != nil {
		return err
	}

	s.invalidateLevels(ctx, level.ID)
	s.notifyScoreChange(ctx, domain.ScoreEvent{
		Game:      gameName,
		Level:     levelName,
		Player:    playerUniqueName,
		Value:     score.Value,
		Action:    domain.ScoreActionDelete,
		Timestamp: time.Now().UTC(),
	})
	return nil
}
