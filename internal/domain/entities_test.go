package domain

import "testing"

func TestDeriveUniqueName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Player 5", "player_5"},
		{"player_5", "player_5"},
		{"Some Long Name", "some_long_name"},
		{"UPPER", "upper"},
	}
	for _, tt := range tests {
		if got := DeriveUniqueName(tt.name); got != tt.want {
			t.Errorf("DeriveUniqueName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestPasswordMatches(t *testing.T) {
	if !PasswordMatches("AABBCCDD00112233AABBCCDD00112233", "aabbccdd00112233aabbccdd00112233") {
		t.Error("password comparison should be case-insensitive")
	}
	if PasswordMatches("aabbccdd00112233aabbccdd00112233", "ffffffffffffffffffffffffffffffff") {
		t.Error("different passwords should not match")
	}
}

func TestErrorClassification(t *testing.T) {
	for _, err := range []error{ErrGameNotFound, ErrLevelNotFound, ErrPlayerNotFound, ErrScoreNotFound} {
		if !isNotFound(err) {
			t.Errorf("isNotFound(%v) = false", err)
		}
		if isConflict(err) {
			t.Errorf("isConflict(%v) = true", err)
		}
	}
	for _, err := range []error{ErrGameExists, ErrLevelExists, ErrPlayerExists, ErrScoreExists} {
		if !isConflict(err) {
			t.Errorf("isConflict(%v) = false", err)
		}
	}
	if isNotFound(ErrInvalidCredentials) || isConflict(ErrOwnerImmutable) {
		t.Error("auth errors must not classify as not-found or conflict")
	}
}
