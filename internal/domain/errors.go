package domain

import "errors"

// Domain errors
var (
	ErrGameNotFound   = errors.New("game not found")
	ErrLevelNotFound  = errors.New("level not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrScoreNotFound  = errors.New("score not found")

	ErrGameExists   = errors.New("game already exists")
	ErrLevelExists  = errors.New("level already exists")
	ErrPlayerExists = errors.New("player already exists")
	ErrScoreExists  = errors.New("score already exists")

	ErrInvalidCredentials = errors.New("invalid password")
	ErrOwnerImmutable     = errors.New("score owner cannot be changed")
	ErrInvalidReference   = errors.New("referenced entity does not exist")
)

// isNotFound checks if an error is a natural-key lookup miss
func isNotFound(err error) bool {
	return errors.Is(err, ErrGameNotFound) ||
		errors.Is(err, ErrLevelNotFound) ||
		errors.Is(err, ErrPlayerNotFound) ||
		errors.Is(err, ErrScoreNotFound)
}

// isConflict checks if an error is a uniqueness violation
func isConflict(err error) bool {
	return errors.Is(err, ErrGameExists) ||
		errors.Is(err, ErrLevelExists) ||
		errors.Is(err, ErrPlayerExists) ||
		errors.Is(err, ErrScoreExists)
}
