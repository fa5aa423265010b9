package schema

// Static registry mapping entity kind to its schema. The definitions mirror
// the persisted constraints: same charsets, same length limits.
var (
	// Game requires only a name; publisher and genre are optional.
	Game = compile(
		[]string{"name"},
		Property{
			Name:        "name",
			Description: "Game's name",
			Type:        "string",
			Pattern:     "^[a-zA-Z0-9_ ]{1,64}$",
		},
		Property{
			Name:        "publisher",
			Description: "Game's publisher",
			Type:        "string",
			Pattern:     "^[a-zA-Z0-9_ ]{0,64}$",
		},
		Property{
			Name:        "genre",
			Description: "Game's genre",
			Type:        "string",
			Pattern:     "^[a-zA-Z0-9_ ]{0,64}$",
		},
	)

	// Level is a full-replace schema: all three fields are required.
	Level = compile(
		[]string{"name", "type", "order"},
		Property{
			Name:        "name",
			Description: "Level's name",
			Type:        "string",
			Pattern:     "^[a-zA-Z0-9_ ]{1,64}$",
		},
		Property{
			Name:        "type",
			Description: "Type of scores (number or time)",
			Type:        "string",
			Pattern:     "^(number|time)$",
		},
		Property{
			Name:        "order",
			Description: "Order of scores (descending or ascending)",
			Type:        "string",
			Pattern:     "^(descending|ascending)$",
		},
	)

	// Score submissions carry the player's credential. An empty date means
	// "now".
	Score = compile(
		[]string{"value", "player", "password"},
		Property{
			Name:        "value",
			Description: "Score value",
			Type:        "number",
		},
		Property{
			Name:        "date",
			Description: "Score timestamp",
			Type:        "string",
			Pattern:     "^$|^[0-9]{4}-[01][0-9]-[0-3][0-9] [0-2][0-9]:[0-5][0-9]:[0-5][0-9]$",
		},
		Property{
			Name:        "player",
			Description: "Player's unique name",
			Type:        "string",
			Pattern:     "^[a-z0-9_]{1,64}$",
		},
		Property{
			Name:        "password",
			Description: "Player's password",
			Type:        "string",
			Pattern:     "^[a-fA-F0-9]{32}$",
		},
	)

	// Player derives unique_name from name when it is not supplied.
	Player = compile(
		[]string{"name", "password"},
		Property{
			Name:        "name",
			Description: "Player's visible name",
			Type:        "string",
			Pattern:     "^[a-zA-Z0-9_ ]{1,64}$",
		},
		Property{
			Name:        "unique_name",
			Description: "Player's unique name",
			Type:        "string",
			Pattern:     "^[a-z0-9_]{0,64}$",
		},
		Property{
			Name:        "password",
			Description: "Player's password",
			Type:        "string",
			Pattern:     "^[a-fA-F0-9]{32}$",
		},
	)
)
