package service

import (
	"context"
	"log/slog"

	"github.com/gamescore-service/internal/domain"
	"github.com/gamescore-service/internal/events"
	"github.com/gamescore-service/internal/store"
)

// ScoreCache caches rendered level score listings. Implemented by the
// Redis cache; a nil cache disables caching entirely.
type ScoreCache interface {
	GetLevelScores(ctx context.Context, levelID string, order domain.SortOrder) ([]domain.LevelScoreEntry, bool)
	SetLevelScores(ctx context.Context, levelID string, order domain.SortOrder, entries []domain.LevelScoreEntry)
	InvalidateLevels(ctx context.Context, levelIDs ...string)
}

// Broadcaster pushes score events to connected websocket clients.
type Broadcaster interface {
	BroadcastScoreEvent(event domain.ScoreEvent)
}

// GameScoreService provides business logic for the score API.
type GameScoreService struct {
	store  *store.Store
	cache  ScoreCache
	events events.Publisher
	hub    Broadcaster
	logger *slog.Logger
}

// New creates a game score service. The cache and hub may be nil;
// a nil publisher is replaced with a no-op one.
func New(st *store.Store, cache ScoreCache, publisher events.Publisher, hub Broadcaster, logger *slog.Logger) *GameScoreService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &GameScoreService{
		store:  st,
		cache:  cache,
		events: publisher,
		hub:    hub,
		logger: logger,
	}
}

// invalidateLevels drops cached listings for the given levels.
func (s *GameScoreService) invalidateLevels(ctx context.Context, levelIDs ...string) {
	if s.cache == nil || len(levelIDs) == 0 {
		return
	}
	s.cache.InvalidateLevels(ctx, levelIDs...)
}

// notifyScoreChange publishes the event and wakes websocket
// subscribers. Failures are logged but never fail the request.
func (s *GameScoreService) notifyScoreChange(ctx context.Context, event domain.ScoreEvent) {
	if err := s.events.PublishScoreEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish score event",
			"action", event.Action,
			"game", event.Game,
			"level", event.Level,
			"error", err,
		)
	}
	if s.hub != nil {
		s.hub.BroadcastScoreEvent(event)
	}
}
