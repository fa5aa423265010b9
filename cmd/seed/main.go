package main

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gamescore-service/internal/config"
	"github.com/gamescore-service/internal/domain"
	"github.com/gamescore-service/internal/store"
)

// Seeds the database with a small demo data set: three players, three
// games with three levels each, and one score per player on every level.
func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Warn("failed to load config file, using defaults", "error", err)
		cfg = config.DefaultConfig()
	}

	ctx := context.Background()

	st, err := store.Open(&cfg.Storage, logger)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := st.RunMigrations(ctx); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	if err := populate(ctx, st); err != nil {
		logger.Error("failed to populate the database, it must be empty", "error", err)
		os.Exit(1)
	}
	logger.Info("database populated")
}

func populate(ctx context.Context, st *store.Store) error {
	genres := []string{"Racing", "Puzzle", "Action"}

	for i := 1; i <= 3; i++ {
		player := &domain.Player{
			Name:       fmt.Sprintf("Player %d", i),
			UniqueName: fmt.Sprintf("player_%d", i),
			Password:   md5Hex(fmt.Sprintf("pw %d", i)),
		}
		if err := st.CreatePlayer(ctx, player); err != nil {
			return err
		}
	}

	now := time.Now().Format(domain.TimestampFormat)
	for i := 1; i <= 3; i++ {
		game := &domain.Game{
			Name:      fmt.Sprintf("Game %d", i),
			Publisher: fmt.Sprintf("Publisher %d", i),
			Genre:     genres[i-1],
		}
		if err := st.CreateGame(ctx, game); err != nil {
			return err
		}
		for j := 1; j <= 3; j++ {
			level := &domain.Level{
				Name:      fmt.Sprintf("Level %d", j),
				ScoreKind: domain.ScoreKindNumber,
				SortOrder: domain.SortOrderDescending,
			}
			if err := st.CreateLevel(ctx, game.Name, level); err != nil {
				return err
			}
			for k := 1; k <= 3; k++ {
				player := fmt.Sprintf("player_%d", k)
				if _, err := st.CreateScore(ctx, game.Name, level.Name, player, int64(k*100), now); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// The demo passwords are md5 digests, matching the pre-hashed
// credential format the API expects.
func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
