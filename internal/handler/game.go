package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gamescore-service/internal/domain"
	"github.com/gamescore-service/internal/mason"
	"github.com/gamescore-service/internal/schema"
)

// ListGames serves the game collection.
func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.service.ListGames(r.Context())
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	doc := mason.New(nil)
	doc.AddNamespace("gss", linkRelationsURL)
	doc.AddControl("self", mason.Control{Href: gamesURL()})
	addControlPlayersAll(doc)
	addControlAddGame(doc)
	doc["items"] = []mason.Document{}
	for _, game := range games {
		item := mason.New(map[string]any{
			"name":      game.Name,
			"publisher": game.Publisher,
			"genre":     game.Genre,
		})
		item.AddControl("self", mason.Control{Href: gameURL(game.Name)})
		item.AddControl("profile", mason.Control{Href: gameProfile})
		doc.AppendItem(item)
	}

	h.writeMason(w, http.StatusOK, doc)
}

// CreateGame adds a game to the collection.
func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeJSON(r)
	if err != nil {
		h.writeBodyError(w, r, err)
		return
	}
	if err := schema.Game.Validate(payload); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid JSON document", err.Error())
		return
	}

	game := &domain.Game{
		Name:      stringField(payload, "name"),
		Publisher: stringField(payload, "publisher"),
		Genre:     stringField(payload, "genre"),
	}
	if err := h.service.CreateGame(r.Context(), game); err != nil {
		if errors.Is(err, domain.ErrGameExists) {
			h.writeError(w, r, http.StatusConflict, "Already exists",
				fmt.Sprintf("Game '%s' already exists.", game.Name))
			return
		}
		h.writeError(w, r, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	w.Header().Set("Location", gameURL(game.Name))
	w.WriteHeader(http.StatusCreated)
}

// GetGame serves one game with its levels embedded.
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	game := pathParam(r, "game")

	entry, levels, err := h.service.GetGame(r.Context(), game)
	if err != nil {
		if errors.Is(err, domain.ErrGameNotFound) {
			h.writeError(w, r, http.StatusNotFound, "Not found",
				fmt.Sprintf("Game '%s' wasn't found.", game))
			return
		}
		h.writeError(w, r, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	doc := mason.New(map[string]any{
		"name":      entry.Name,
		"publisher": entry.Publisher,
		"genre":     entry.Genre,
	})
	doc.AddNamespace("gss", linkRelationsURL)
	doc.AddControl("self", mason.Control{Href: gameURL(game)})
	doc.AddControl("profile", mason.Control{Href: gameProfile})
	doc.AddControl("collection", mason.Control{Href: gamesURL()})
	addControlAddLevel(doc, game)
	addControlEdit(doc, gameURL(game), schema.Game, "Edit this game")
	addControlDelete(doc, gameURL(game))
	doc["items"] = []mason.Document{}
	for _, level := range levels {
		item := mason.New(map[string]any{"name": level.Name})
		item.AddControl("self", mason.Control{Href: levelURL(game, level.Name)})
		item.AddControl("profile", mason.Control{Href: levelProfile})
		doc.AppendItem(item)
	}

	h.writeMason(w, http.StatusOK, doc)
}

// UpdateGame replaces a game's fields. Renames move the resource and
// answer with the new location.
func (h *Handler) UpdateGame(w http.ResponseWriter, r *http.Request) {
	game := pathParam(r, "game")

	payload, err := decodeJSON(r)
	if err != nil {
		h.writeBodyError(w, r, err)
		return
	}
	if err := schema.Game.Validate(payload); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid JSON document", err.Error())
		return
	}

	upd := domain.Game{
		Name:      stringField(payload, "name"),
		Publisher: stringField(payload, "publisher"),
		Genre:     stringField(payload, "genre"),
	}
	renamed, err := h.service.UpdateGame(r.Context(), game, upd)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrGameNotFound):
			h.writeError(w, r, http.StatusNotFound, "Not found",
				fmt.Sprintf("Game '%s' wasn't found.", game))
		case errors.Is(err, domain.ErrGameExists):
			h.writeError(w, r, http.StatusConflict, "Already exists",
				fmt.Sprintf("Game '%s' already exists.", upd.Name))
		default:
			h.writeError(w, r, http.StatusInternalServerError, "Internal server error", err.Error())
		}
		return
	}

	if renamed {
		w.Header().Set("Location", gameURL(upd.Name))
		w.WriteHeader(http.StatusMovedPermanently)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteGame removes a game with its levels and scores.
func (h *Handler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	game := pathParam(r, "game")

	if err := h.service.DeleteGame(r.Context(), game); err != nil {
		if errors.Is(err, domain.ErrGameNotFound) {
			h.writeError(w, r, http.StatusNotFound, "Not found",
				fmt.Sprintf("Game '%s' wasn't found.", game))
			return
		}
		h.writeError(w, r, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
