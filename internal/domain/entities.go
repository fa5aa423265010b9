package domain

import (
	"strings"
	"time"
)

// TimestampFormat is the wire format for score timestamps.
const TimestampFormat = "2006-01-02 15:04:05"

// ScoreKind tells whether a level's scores are plain numbers or times
type ScoreKind string

const (
	ScoreKindNumber ScoreKind = "number"
	ScoreKindTime   ScoreKind = "time"
)

// SortOrder tells whether higher or lower score values rank first
type SortOrder string

const (
	SortOrderDescending SortOrder = "descending"
	SortOrderAscending  SortOrder = "ascending"
)

// Game is the root entity of the API; levels and scores hang under it.
// Its name is unique across all games and doubles as its natural key.
type Game struct {
	ID        string
	Name      string
	Publisher string
	Genre     string
	CreatedAt time.Time
}

// Level belongs to exactly one game. Its name is unique within that game.
type Level struct {
	ID        string
	GameID    string
	Name      string
	ScoreKind ScoreKind
	SortOrder SortOrder
	CreatedAt time.Time
}

// Player is a user of the API. The unique name is the URL-safe natural key;
// the password is an opaque pre-hashed 32-char hex credential compared
// case-insensitively.
type Player struct {
	ID         string
	Name       string
	UniqueName string
	Password   string
	CreatedAt  time.Time
}

// Score is a leaf entity: one per (level, player) pair.
type Score struct {
	ID         string
	LevelID    string
	PlayerID   string
	Value      int64
	RecordedAt string
	CreatedAt  time.Time
}

// LevelScoreEntry is one row of a level's score listing, with the owning
// player resolved.
type LevelScoreEntry struct {
	PlayerName       string
	PlayerUniqueName string
	Value            int64
	RecordedAt       string
}

// PlayerScoreEntry is one row of a player's cross-game score listing,
// enriched with the owning game and level.
type PlayerScoreEntry struct {
	GameName   string
	LevelName  string
	LevelID    string
	ScoreKind  ScoreKind
	Value      int64
	RecordedAt string
}

// DeriveUniqueName converts a display name into its URL-safe form:
// lowercased with spaces replaced by underscores.
func DeriveUniqueName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// PasswordMatches compares an opaque hex credential case-insensitively.
func PasswordMatches(stored, provided string) bool {
	return strings.EqualFold(stored, provided)
}
