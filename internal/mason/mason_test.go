package mason

import (
	"encoding/json"
	"testing"

	"github.com/gamescore-service/internal/schema"
)

func roundTrip(t *testing.T, doc Document) map[string]any {
	t.Helper()
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return decoded
}

func TestNewCarriesFields(t *testing.T) {
	doc := New(map[string]any{"name": "Game 1", "genre": "Racing"})
	decoded := roundTrip(t, doc)
	if decoded["name"] != "Game 1" || decoded["genre"] != "Racing" {
		t.Errorf("application fields lost: %v", decoded)
	}
}

func TestAddNamespace(t *testing.T) {
	doc := Document{}
	doc.AddNamespace("gss", "/gamescoreservice/link-relations/")
	decoded := roundTrip(t, doc)
	ns, ok := decoded["@namespaces"].(map[string]any)
	if !ok {
		t.Fatal("@namespaces missing")
	}
	gss, ok := ns["gss"].(map[string]any)
	if !ok || gss["name"] != "/gamescoreservice/link-relations/" {
		t.Errorf("gss namespace = %v", ns["gss"])
	}
}

func TestAddControl(t *testing.T) {
	doc := Document{}
	doc.AddControl("self", Control{Href: "/games/Game%201/"})
	doc.AddControl("gss:add-game", Control{
		Href:     "/games/",
		Method:   "POST",
		Encoding: "json",
		Title:    "Add a new game",
		Schema:   schema.Game,
	})
	decoded := roundTrip(t, doc)
	controls, ok := decoded["@controls"].(map[string]any)
	if !ok {
		t.Fatal("@controls missing")
	}

	self, ok := controls["self"].(map[string]any)
	if !ok {
		t.Fatal("self control missing")
	}
	if self["href"] != "/games/Game%201/" {
		t.Errorf("self href = %v", self["href"])
	}
	if _, ok := self["method"]; ok {
		t.Error("self control should omit method")
	}

	add, ok := controls["gss:add-game"].(map[string]any)
	if !ok {
		t.Fatal("add-game control missing")
	}
	if add["method"] != "POST" || add["encoding"] != "json" {
		t.Errorf("add-game control = %v", add)
	}
	sch, ok := add["schema"].(map[string]any)
	if !ok || sch["type"] != "object" {
		t.Errorf("add-game schema = %v", add["schema"])
	}
}

func TestAddError(t *testing.T) {
	doc := Document{}
	doc.AddError("Not found", "Game 'Nope' wasn't found.")
	decoded := roundTrip(t, doc)
	errObj, ok := decoded["@error"].(map[string]any)
	if !ok {
		t.Fatal("@error missing")
	}
	if errObj["@message"] != "Not found" {
		t.Errorf("@message = %v", errObj["@message"])
	}
	msgs, ok := errObj["@messages"].([]any)
	if !ok || len(msgs) != 1 || msgs[0] != "Game 'Nope' wasn't found." {
		t.Errorf("@messages = %v", errObj["@messages"])
	}
}

func TestAppendItem(t *testing.T) {
	doc := Document{}
	for _, name := range []string{"Level 1", "Level 2"} {
		item := New(map[string]any{"name": name})
		item.AddControl("self", Control{Href: "/games/G/" + name + "/"})
		doc.AppendItem(item)
	}
	decoded := roundTrip(t, doc)
	items, ok := decoded["items"].([]any)
	if !ok || len(items) != 2 {
		t.Fatalf("items = %v", decoded["items"])
	}
	first, ok := items[0].(map[string]any)
	if !ok || first["name"] != "Level 1" {
		t.Errorf("items should keep append order, got %v", items)
	}
}

func TestReservedKeysCoexistWithFields(t *testing.T) {
	doc := New(map[string]any{"name": "Player 1", "unique_name": "player_1"})
	doc.AddNamespace("gss", "/gamescoreservice/link-relations/")
	doc.AddControl("self", Control{Href: "/players/player_1/"})
	decoded := roundTrip(t, doc)
	for _, key := range []string{"name", "unique_name", "@namespaces", "@controls"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("document missing %q", key)
		}
	}
}
