package schema

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestGameValid(t *testing.T) {
	payload := map[string]any{
		"name":      "Game 1",
		"publisher": "Pub",
		"genre":     "Racing",
	}
	if err := Game.Validate(payload); err != nil {
		t.Fatalf("valid game payload rejected: %v", err)
	}
}

func TestGameMissingName(t *testing.T) {
	err := Game.Validate(map[string]any{"publisher": "Pub"})
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if !strings.Contains(err.Error(), "required") {
		t.Errorf("error %q should mention the missing required field", err)
	}
}

func TestGameNamePattern(t *testing.T) {
	cases := []string{"", "bad!name", strings.Repeat("a", 65)}
	for _, name := range cases {
		if err := Game.Validate(map[string]any{"name": name}); err == nil {
			t.Errorf("name %q should fail pattern validation", name)
		}
	}
}

func TestGameNameWrongType(t *testing.T) {
	err := Game.Validate(map[string]any{"name": 42.0})
	if err == nil {
		t.Fatal("expected type violation")
	}
	if !strings.Contains(err.Error(), "string") {
		t.Errorf("error %q should mention the expected type", err)
	}
}

func TestLevelRequiresAllFields(t *testing.T) {
	err := Level.Validate(map[string]any{"name": "Level 1", "type": "number"})
	if err == nil {
		t.Fatal("expected missing 'order' to fail")
	}
	payload := map[string]any{"name": "Level 1", "type": "time", "order": "ascending"}
	if err := Level.Validate(payload); err != nil {
		t.Fatalf("valid level payload rejected: %v", err)
	}
}

func TestLevelEnums(t *testing.T) {
	err := Level.Validate(map[string]any{"name": "L", "type": "points", "order": "descending"})
	if err == nil {
		t.Error("unknown score type should fail")
	}
	err = Level.Validate(map[string]any{"name": "L", "type": "number", "order": "sideways"})
	if err == nil {
		t.Error("unknown sort order should fail")
	}
}

func TestLevelEnumsAnchored(t *testing.T) {
	// Values that merely contain a valid alternative must not slip through.
	err := Level.Validate(map[string]any{"name": "L", "type": "numberx", "order": "descending"})
	if err == nil {
		t.Error("trailing garbage after the type keyword should fail")
	}
	err = Level.Validate(map[string]any{"name": "L", "type": "number", "order": "xxascending"})
	if err == nil {
		t.Error("leading garbage before the order keyword should fail")
	}
}

func TestScoreSchema(t *testing.T) {
	payload := map[string]any{
		"value":    100.0,
		"player":   "player_1",
		"password": "aabbccdd00112233aabbccdd00112233",
	}
	if err := Score.Validate(payload); err != nil {
		t.Fatalf("valid score payload rejected: %v", err)
	}

	payload["date"] = ""
	if err := Score.Validate(payload); err != nil {
		t.Errorf("empty date should be accepted: %v", err)
	}
	payload["date"] = "2026-08-29 12:30:00"
	if err := Score.Validate(payload); err != nil {
		t.Errorf("well-formed date should be accepted: %v", err)
	}
	payload["date"] = "29.8.2026"
	if err := Score.Validate(payload); err == nil {
		t.Error("malformed date should fail")
	}
	delete(payload, "date")

	payload["value"] = "100"
	if err := Score.Validate(payload); err == nil {
		t.Error("string value should fail the number type check")
	}
	payload["value"] = 100.0

	payload["password"] = "not-hex"
	if err := Score.Validate(payload); err == nil {
		t.Error("non-hex password should fail")
	}
}

func TestPlayerSchema(t *testing.T) {
	payload := map[string]any{
		"name":     "Player 5",
		"password": "aabbccdd00112233aabbccdd00112233",
	}
	if err := Player.Validate(payload); err != nil {
		t.Fatalf("player without unique_name should be valid: %v", err)
	}
	payload["unique_name"] = "Player 5"
	if err := Player.Validate(payload); err == nil {
		t.Error("unique_name with uppercase and spaces should fail")
	}
	payload["unique_name"] = "player_5"
	if err := Player.Validate(payload); err != nil {
		t.Errorf("valid unique_name rejected: %v", err)
	}
}

func TestSchemaMarshalShape(t *testing.T) {
	data, err := json.Marshal(Game)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["type"] != "object" {
		t.Errorf("type = %v, want object", decoded["type"])
	}
	props, ok := decoded["properties"].(map[string]any)
	if !ok {
		t.Fatal("properties missing")
	}
	name, ok := props["name"].(map[string]any)
	if !ok {
		t.Fatal("name property missing")
	}
	if name["pattern"] != "^[a-zA-Z0-9_ ]{1,64}$" {
		t.Errorf("name pattern = %v", name["pattern"])
	}
	req, ok := decoded["required"].([]any)
	if !ok || len(req) != 1 || req[0] != "name" {
		t.Errorf("required = %v, want [name]", decoded["required"])
	}
}

func TestUnknownFieldsIgnored(t *testing.T) {
	payload := map[string]any{"name": "Game 1", "bogus": true}
	if err := Game.Validate(payload); err != nil {
		t.Errorf("unknown fields should be ignored: %v", err)
	}
}
