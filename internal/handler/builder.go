package handler

import (
	"github.com/gamescore-service/internal/mason"
	"github.com/gamescore-service/internal/schema"
)

// Application controls shared by several resources. Each helper attaches
// one "gss:" or common relation with its method, title and, for writes,
// the request schema clients should follow.

func addControlPlayersAll(doc mason.Document) {
	doc.AddControl("gss:players-all", mason.Control{
		Href:   playersURL(),
		Method: "GET",
		Title:  "List all players",
	})
}

func addControlGamesAll(doc mason.Document) {
	doc.AddControl("gss:games-all", mason.Control{
		Href:   gamesURL(),
		Method: "GET",
		Title:  "List all games",
	})
}

func addControlScoresBy(doc mason.Document, player string) {
	doc.AddControl("gss:scores-by", mason.Control{
		Href:   scoresByURL(player),
		Method: "GET",
		Title:  "List all scores by the player",
	})
}

func addControlAddPlayer(doc mason.Document) {
	doc.AddControl("gss:add-player", mason.Control{
		Href:     playersURL(),
		Method:   "POST",
		Encoding: "json",
		Title:    "Add a new player",
		Schema:   schema.Player,
	})
}

func addControlAddGame(doc mason.Document) {
	doc.AddControl("gss:add-game", mason.Control{
		Href:     gamesURL(),
		Method:   "POST",
		Encoding: "json",
		Title:    "Add a new game",
		Schema:   schema.Game,
	})
}

func addControlAddLevel(doc mason.Document, game string) {
	doc.AddControl("gss:add-level", mason.Control{
		Href:     gameURL(game),
		Method:   "POST",
		Encoding: "json",
		Title:    "Add a new level",
		Schema:   schema.Level,
	})
}

func addControlAddScore(doc mason.Document, game, level string) {
	doc.AddControl("gss:add-score", mason.Control{
		Href:     levelURL(game, level),
		Method:   "POST",
		Encoding: "json",
		Title:    "Add a new score",
		Schema:   schema.Score,
	})
}

func addControlEdit(doc mason.Document, href string, s *schema.Schema, title string) {
	doc.AddControl("edit", mason.Control{
		Href:     href,
		Method:   "PUT",
		Encoding: "json",
		Title:    title,
		Schema:   s,
	})
}

func addControlDelete(doc mason.Document, href string) {
	doc.AddControl("gss:delete", mason.Control{
		Href:   href,
		Method: "DELETE",
		Title:  "Delete this resource",
	})
}
