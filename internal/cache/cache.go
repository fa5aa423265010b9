package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gamescore-service/internal/config"
	"github.com/gamescore-service/internal/domain"
)

// ScoreCache keeps rendered level score lists in Redis so hot level
// pages skip the relational store. Entries are stored as the full
// ordered list so ties keep their submission order, which a sorted
// set cannot guarantee.
type ScoreCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// New creates a Redis-backed score cache and verifies the connection.
func New(cfg *config.RedisConfig, logger *slog.Logger) (*ScoreCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return &ScoreCache{
		client: client,
		ttl:    cfg.CacheTTL,
		logger: logger,
	}, nil
}

// Close closes the Redis connection.
func (c *ScoreCache) Close() error {
	return c.client.Close()
}

func (c *ScoreCache) levelKey(levelID string, order domain.SortOrder) string {
	return fmt.Sprintf("level:%s:scores:%s", levelID, order)
}

// GetLevelScores returns the cached score list for a level, or
// (nil, false) on a miss. Decode failures count as misses.
func (c *ScoreCache) GetLevelScores(ctx context.Context, levelID string, order domain.SortOrder) ([]domain.LevelScoreEntry, bool) {
	data, err := c.client.Get(ctx, c.levelKey(levelID, order)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache read failed", "level_id", levelID, "error", err)
		}
		return nil, false
	}

	var entries []domain.LevelScoreEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		c.logger.Warn("cache entry corrupt", "level_id", levelID, "error", err)
		return nil, false
	}
	return entries, true
}

// SetLevelScores stores the ordered score list for a level.
func (c *ScoreCache) SetLevelScores(ctx context.Context, levelID string, order domain.SortOrder, entries []domain.LevelScoreEntry) {
	data, err := json.Marshal(entries)
	if err != nil {
		c.logger.Warn("cache encode failed", "level_id", levelID, "error", err)
		return
	}
	if err := c.client.Set(ctx, c.levelKey(levelID, order), data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", "level_id", levelID, "error", err)
	}
}

// InvalidateLevels drops the cached lists for the given levels, both
// sort orders. Called after any write that touches their scores.
func (c *ScoreCache) InvalidateLevels(ctx context.Context, levelIDs ...string) {
	if len(levelIDs) == 0 {
		return
	}
	pipe := c.client.Pipeline()
	for _, id := range levelIDs {
		pipe.Del(ctx, c.levelKey(id, domain.SortOrderDescending))
		pipe.Del(ctx, c.levelKey(id, domain.SortOrderAscending))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn("cache invalidation failed", "levels", len(levelIDs), "error", err)
	}
}
