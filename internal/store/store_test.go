package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/gamescore-service/internal/config"
	"github.com/gamescore-service/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := &config.StorageConfig{
		Driver: config.DriverSQLite,
		SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "test.db")},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := Open(cfg, logger)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.RunMigrations(context.Background()); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	return s
}

func mustCreateGame(t *testing.T, s *Store, name string) *domain.Game {
	t.Helper()
	game := &domain.Game{Name: name, Publisher: "Pub", Genre: "Racing"}
	if err := s.CreateGame(context.Background(), game); err != nil {
		t.Fatalf("creating game %q: %v", name, err)
	}
	return game
}

func mustCreateLevel(t *testing.T, s *Store, gameName, levelName string, order domain.SortOrder) *domain.Level {
	t.Helper()
	level := &domain.Level{Name: levelName, ScoreKind: domain.ScoreKindNumber, SortOrder: order}
	if err := s.CreateLevel(context.Background(), gameName, level); err != nil {
		t.Fatalf("creating level %q: %v", levelName, err)
	}
	return level
}

func mustCreatePlayer(t *testing.T, s *Store, name, uniqueName string) *domain.Player {
	t.Helper()
	player := &domain.Player{
		Name:       name,
		UniqueName: uniqueName,
		Password:   "aabbccdd00112233aabbccdd00112233",
	}
	if err := s.CreatePlayer(context.Background(), player); err != nil {
		t.Fatalf("creating player %q: %v", uniqueName, err)
	}
	return player
}

func mustCreateScore(t *testing.T, s *Store, game, level, player string, value int64) {
	t.Helper()
	_, err := s.CreateScore(context.Background(), game, level, player, value, time.Now().Format(domain.TimestampFormat))
	if err != nil {
		t.Fatalf("creating score for %s on %s/%s: %v", player, game, level, err)
	}
}

func TestGameCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created := mustCreateGame(t, s, "Game 1")
	if created.ID == "" {
		t.Error("CreateGame should assign an id")
	}

	game, err := s.GetGame(ctx, "Game 1")
	if err != nil {
		t.Fatalf("GetGame: %v", err)
	}
	if game.Name != "Game 1" || game.Publisher != "Pub" || game.Genre != "Racing" {
		t.Errorf("got %+v", game)
	}

	if err := s.UpdateGame(ctx, "Game 1", domain.Game{Name: "Game One", Publisher: "", Genre: ""}); err != nil {
		t.Fatalf("UpdateGame: %v", err)
	}
	if _, err := s.GetGame(ctx, "Game 1"); !errors.Is(err, domain.ErrGameNotFound) {
		t.Errorf("old name should be gone, got %v", err)
	}
	game, err = s.GetGame(ctx, "Game One")
	if err != nil {
		t.Fatalf("GetGame after rename: %v", err)
	}
	if game.Publisher != "" || game.Genre != "" {
		t.Errorf("optional fields should be replaced, got %+v", game)
	}

	if err := s.DeleteGame(ctx, "Game One"); err != nil {
		t.Fatalf("DeleteGame: %v", err)
	}
	if err := s.DeleteGame(ctx, "Game One"); !errors.Is(err, domain.ErrGameNotFound) {
		t.Errorf("second delete should report not found, got %v", err)
	}
}

func TestGameNameUniqueness(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateGame(t, s, "Game 1")
	err := s.CreateGame(ctx, &domain.Game{Name: "Game 1", Publisher: "Other", Genre: "Puzzle"})
	if !errors.Is(err, domain.ErrGameExists) {
		t.Errorf("duplicate name should conflict regardless of other fields, got %v", err)
	}
}

func TestGameRenameCollision(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateGame(t, s, "Game 1")
	mustCreateGame(t, s, "Game 2")

	err := s.UpdateGame(ctx, "Game 2", domain.Game{Name: "Game 1"})
	if !errors.Is(err, domain.ErrGameExists) {
		t.Fatalf("rename onto taken name should conflict, got %v", err)
	}
	// Original must be intact after the failed rename.
	if _, err := s.GetGame(ctx, "Game 2"); err != nil {
		t.Errorf("Game 2 should survive the failed rename: %v", err)
	}
}

func TestLevelUniquenessScopedToGame(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateGame(t, s, "Game 1")
	mustCreateGame(t, s, "Game 2")
	mustCreateLevel(t, s, "Game 1", "Level 1", domain.SortOrderDescending)

	// Same name in another game is fine.
	mustCreateLevel(t, s, "Game 2", "Level 1", domain.SortOrderDescending)

	// Same name in the same game conflicts.
	err := s.CreateLevel(ctx, "Game 1", &domain.Level{
		Name: "Level 1", ScoreKind: domain.ScoreKindTime, SortOrder: domain.SortOrderAscending,
	})
	if !errors.Is(err, domain.ErrLevelExists) {
		t.Errorf("duplicate level within game should conflict, got %v", err)
	}
}

func TestLevelLookupMisses(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateGame(t, s, "Game 1")
	if _, err := s.GetLevel(ctx, "Game 1", "Nope"); !errors.Is(err, domain.ErrLevelNotFound) {
		t.Errorf("missing level, got %v", err)
	}
	if _, err := s.GetLevel(ctx, "No Game", "Level 1"); !errors.Is(err, domain.ErrLevelNotFound) {
		t.Errorf("missing game segment, got %v", err)
	}
	err := s.CreateLevel(ctx, "No Game", &domain.Level{
		Name: "L", ScoreKind: domain.ScoreKindNumber, SortOrder: domain.SortOrderDescending,
	})
	if !errors.Is(err, domain.ErrGameNotFound) {
		t.Errorf("creating level under missing game, got %v", err)
	}
}

func TestScorePairUniqueness(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateGame(t, s, "Game 1")
	mustCreateLevel(t, s, "Game 1", "Level 1", domain.SortOrderDescending)
	mustCreatePlayer(t, s, "Player 1", "player_1")

	mustCreateScore(t, s, "Game 1", "Level 1", "player_1", 100)
	_, err := s.CreateScore(ctx, "Game 1", "Level 1", "player_1", 200, "2026-01-01 10:00:00")
	if !errors.Is(err, domain.ErrScoreExists) {
		t.Fatalf("second score for same pair should conflict, got %v", err)
	}

	// The existing score is still reachable and holds the original value.
	score, err := s.GetScore(ctx, "Game 1", "Level 1", "player_1")
	if err != nil {
		t.Fatalf("GetScore: %v", err)
	}
	if score.Value != 100 {
		t.Errorf("value = %d, want 100 (no implicit second insert)", score.Value)
	}

	// Updates go through PUT semantics only.
	if err := s.UpdateScore(ctx, "Game 1", "Level 1", "player_1", 250, "2026-01-02 10:00:00"); err != nil {
		t.Fatalf("UpdateScore: %v", err)
	}
	score, err = s.GetScore(ctx, "Game 1", "Level 1", "player_1")
	if err != nil {
		t.Fatalf("GetScore after update: %v", err)
	}
	if score.Value != 250 || score.RecordedAt != "2026-01-02 10:00:00" {
		t.Errorf("updated score = %+v", score)
	}
}

func TestListLevelScoresOrdering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateGame(t, s, "Game 1")
	desc := mustCreateLevel(t, s, "Game 1", "Level D", domain.SortOrderDescending)
	asc := mustCreateLevel(t, s, "Game 1", "Level A", domain.SortOrderAscending)
	for i, player := range []string{"player_1", "player_2", "player_3"} {
		mustCreatePlayer(t, s, "Player", player)
		mustCreateScore(t, s, "Game 1", "Level D", player, int64((i+1)*100))
		mustCreateScore(t, s, "Game 1", "Level A", player, int64((i+1)*100))
	}

	entries, err := s.ListLevelScores(ctx, desc.ID, desc.SortOrder)
	if err != nil {
		t.Fatalf("ListLevelScores desc: %v", err)
	}
	wantDesc := []int64{300, 200, 100}
	for i, want := range wantDesc {
		if entries[i].Value != want {
			t.Errorf("descending[%d] = %d, want %d", i, entries[i].Value, want)
		}
	}

	entries, err = s.ListLevelScores(ctx, asc.ID, asc.SortOrder)
	if err != nil {
		t.Fatalf("ListLevelScores asc: %v", err)
	}
	wantAsc := []int64{100, 200, 300}
	for i, want := range wantAsc {
		if entries[i].Value != want {
			t.Errorf("ascending[%d] = %d, want %d", i, entries[i].Value, want)
		}
	}
	if entries[0].PlayerName == "" || entries[0].PlayerUniqueName == "" {
		t.Error("entries should resolve the owning player")
	}
}

func TestGameCascadeDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateGame(t, s, "Game 1")
	mustCreatePlayer(t, s, "Player 1", "player_1")
	mustCreatePlayer(t, s, "Player 2", "player_2")
	for _, level := range []string{"Level 1", "Level 2", "Level 3"} {
		mustCreateLevel(t, s, "Game 1", level, domain.SortOrderDescending)
		mustCreateScore(t, s, "Game 1", level, "player_1", 100)
		mustCreateScore(t, s, "Game 1", level, "player_2", 200)
	}

	count, err := s.CountScores(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 6 {
		t.Fatalf("score fixture count = %d, want 6", count)
	}

	if err := s.DeleteGame(ctx, "Game 1"); err != nil {
		t.Fatalf("DeleteGame: %v", err)
	}

	count, err = s.CountScores(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("orphaned scores after cascade: %d", count)
	}
	// Players survive a game cascade.
	if _, err := s.GetPlayer(ctx, "player_1"); err != nil {
		t.Errorf("player should survive game deletion: %v", err)
	}
}

func TestLevelAndPlayerCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateGame(t, s, "Game 1")
	mustCreateLevel(t, s, "Game 1", "Level 1", domain.SortOrderDescending)
	mustCreateLevel(t, s, "Game 1", "Level 2", domain.SortOrderDescending)
	mustCreatePlayer(t, s, "Player 1", "player_1")
	mustCreateScore(t, s, "Game 1", "Level 1", "player_1", 100)
	mustCreateScore(t, s, "Game 1", "Level 2", "player_1", 100)

	if err := s.DeleteLevel(ctx, "Game 1", "Level 1"); err != nil {
		t.Fatalf("DeleteLevel: %v", err)
	}
	if count, _ := s.CountScores(ctx); count != 1 {
		t.Errorf("level cascade left %d scores, want 1", count)
	}

	if err := s.DeletePlayer(ctx, "player_1"); err != nil {
		t.Fatalf("DeletePlayer: %v", err)
	}
	if count, _ := s.CountScores(ctx); count != 0 {
		t.Errorf("player cascade left %d scores, want 0", count)
	}
	// The level itself survives a player cascade.
	if _, err := s.GetLevel(ctx, "Game 1", "Level 2"); err != nil {
		t.Errorf("level should survive player deletion: %v", err)
	}
}

func TestAbortedTransactionLeavesStateIntact(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateGame(t, s, "Game 1")
	mustCreateLevel(t, s, "Game 1", "Level 1", domain.SortOrderDescending)
	mustCreatePlayer(t, s, "Player 1", "player_1")
	mustCreateScore(t, s, "Game 1", "Level 1", "player_1", 100)

	tx, err := s.DB().BeginTx(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM games WHERE name = 'Game 1'`); err != nil {
		t.Fatalf("delete inside tx: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("rollback: %v", err)
	}

	if _, err := s.GetGame(ctx, "Game 1"); err != nil {
		t.Errorf("game should survive aborted delete: %v", err)
	}
	if _, err := s.GetLevel(ctx, "Game 1", "Level 1"); err != nil {
		t.Errorf("level should survive aborted delete: %v", err)
	}
	if count, _ := s.CountScores(ctx); count != 1 {
		t.Errorf("scores after rollback = %d, want 1", count)
	}
}

func TestForeignKeyViolationRejected(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreatePlayer(t, s, "Player 1", "player_1")
	player, _ := s.GetPlayer(ctx, "player_1")

	_, err := s.DB().ExecContext(ctx, `
		INSERT INTO scores (id, level_id, player_id, value, recorded_at, created_at)
		VALUES ('score-1', 'no-such-level', ?, 100, '2026-01-01 10:00:00', 0)
	`, player.ID)
	if err == nil {
		t.Fatal("insert referencing a nonexistent level must be rejected")
	}
	if !s.dialect.isForeignKeyViolation(err) {
		t.Errorf("expected a foreign key violation, got %v", err)
	}
}

func TestScoreCompoundLookupMisses(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateGame(t, s, "Game 1")
	mustCreateLevel(t, s, "Game 1", "Level 1", domain.SortOrderDescending)
	mustCreatePlayer(t, s, "Player 1", "player_1")

	if _, err := s.GetScore(ctx, "No Game", "Level 1", "player_1"); !errors.Is(err, domain.ErrLevelNotFound) {
		t.Errorf("missing game segment, got %v", err)
	}
	if _, err := s.GetScore(ctx, "Game 1", "No Level", "player_1"); !errors.Is(err, domain.ErrLevelNotFound) {
		t.Errorf("missing level segment, got %v", err)
	}
	if _, err := s.GetScore(ctx, "Game 1", "Level 1", "player_1"); !errors.Is(err, domain.ErrScoreNotFound) {
		t.Errorf("missing score, got %v", err)
	}
	_, err := s.CreateScore(ctx, "Game 1", "Level 1", "nobody", 100, "2026-01-01 10:00:00")
	if !errors.Is(err, domain.ErrPlayerNotFound) {
		t.Errorf("missing player on create, got %v", err)
	}
}

func TestListPlayerScores(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateGame(t, s, "Game 1")
	mustCreateGame(t, s, "Game 2")
	mustCreateLevel(t, s, "Game 1", "Level 1", domain.SortOrderDescending)
	mustCreateLevel(t, s, "Game 2", "Level 1", domain.SortOrderAscending)
	mustCreatePlayer(t, s, "Player 1", "player_1")
	mustCreateScore(t, s, "Game 1", "Level 1", "player_1", 100)
	mustCreateScore(t, s, "Game 2", "Level 1", "player_1", 200)

	entries, err := s.ListPlayerScores(ctx, "player_1")
	if err != nil {
		t.Fatalf("ListPlayerScores: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].GameName != "Game 1" || entries[1].GameName != "Game 2" {
		t.Errorf("insertion order expected, got %+v", entries)
	}
	if entries[0].ScoreKind != domain.ScoreKindNumber || entries[0].LevelName != "Level 1" {
		t.Errorf("entry not enriched: %+v", entries[0])
	}
}

func TestPlayerUniqueNameUniqueness(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreatePlayer(t, s, "Player 1", "player_1")
	err := s.CreatePlayer(ctx, &domain.Player{
		Name: "Other", UniqueName: "player_1", Password: "ffffffffffffffffffffffffffffffff",
	})
	if !errors.Is(err, domain.ErrPlayerExists) {
		t.Errorf("duplicate unique_name should conflict, got %v", err)
	}

	mustCreatePlayer(t, s, "Player 2", "player_2")
	err = s.UpdatePlayer(ctx, "player_2", domain.Player{Name: "Player 2", UniqueName: "player_1"})
	if !errors.Is(err, domain.ErrPlayerExists) {
		t.Errorf("rename onto taken unique_name should conflict, got %v", err)
	}
	if _, err := s.GetPlayer(ctx, "player_2"); err != nil {
		t.Errorf("player_2 should survive the failed rename: %v", err)
	}
}
