package service

import (
	"context"

	"github.com/gamescore-service/internal/domain"
)

// PlayerUpdate carries the client-facing fields of a player PUT. The
// password confirms identity and never changes the stored credential.
type PlayerUpdate struct {
	Name       string
	UniqueName string
	Password   string
}

// CreatePlayer registers a player. When no unique name is given it is
// derived from the display name.
func (s *GameScoreService) CreatePlayer(ctx context.Context, player *domain.Player) error {
	if player.UniqueName == "" {
		player.UniqueName = domain.DeriveUniqueName(player.Name)
	}
	if err := s.store.CreatePlayer(ctx, player); err != nil {
		return err
	}
	s.logger.Info("player created", "unique_name", player.UniqueName)
	return nil
}

// GetPlayer returns a player by unique name.
func (s *GameScoreService) GetPlayer(ctx context.Context, uniqueName string) (*domain.Player, error) {
	return s.store.GetPlayer(ctx, uniqueName)
}

// ListPlayers returns all players in insertion order.
func (s *GameScoreService) ListPlayers(ctx context.Context) ([]domain.Player, error) {
	return s.store.ListPlayers(ctx)
}

// ListPlayerScores returns a player's scores across all games.
func (s *GameScoreService) ListPlayerScores(ctx context.Context, uniqueName string) (*domain.Player, []domain.PlayerScoreEntry, error) {
	player, err := s.store.GetPlayer(ctx, uniqueName)
	if err != nil {
		return nil, nil, err
	}
	entries, err := s.store.ListPlayerScores(ctx, uniqueName)
	if err != nil {
		return nil, nil, err
	}
	return player, entries, nil
}

// UpdatePlayer renames a player after confirming the password. It
// reports whether the unique name changed, which moves the player to a
// new URL. An omitted unique name is derived from the new display name.
func (s *GameScoreService) UpdatePlayer(ctx context.Context, uniqueName string, upd PlayerUpdate) (bool, error) {
	player, err := s.store.GetPlayer(ctx, uniqueName)
	if err != nil {
		return false, err
	}
	if !domain.PasswordMatches(player.Password, upd.Password) {
		return false, domain.ErrInvalidCredentials
	}

	newUnique := upd.UniqueName
	if newUnique == "" {
		newUnique = domain.DeriveUniqueName(upd.Name)
	}
	err = s.store.UpdatePlayer(ctx, uniqueName, domain.Player{
		Name:       upd.Name,
		UniqueName: newUnique,
	})
	if err != nil {
		return false, err
	}

	renamed := newUnique != uniqueName
	if renamed {
		s.logger.Info("player renamed", "from", uniqueName, "to", newUnique)
	}
	return renamed, nil
}

// DeletePlayer removes a player and cascades to their scores.
func (s *GameScoreService) DeletePlayer(ctx context.Context, uniqueName string) error {
	entries, err := s.store.ListPlayerScores(ctx, uniqueName)
	if err != nil {
		return err
	}
	if err := s.store.DeletePlayer(ctx, uniqueName); err != nil {
		return err
	}

	ids := make([]string, len(entries))
	for i, entry := range entries {
		ids[i] = entry.LevelID
	}
	s.invalidateLevels(ctx, ids...)

	s.logger.Info("player deleted", "unique_name", uniqueName, "scores", len(entries))
	return nil
}
