package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gamescore-service/internal/domain"
	"github.com/gamescore-service/internal/mason"
	"github.com/gamescore-service/internal/schema"
	"github.com/gamescore-service/internal/service"
)

// ListPlayers serves the player collection. Passwords never appear in
// any response body.
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.service.ListPlayers(r.Context())
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	doc := mason.New(nil)
	doc.AddNamespace("gss", linkRelationsURL)
	doc.AddControl("self", mason.Control{Href: playersURL()})
	addControlGamesAll(doc)
	addControlAddPlayer(doc)
	doc["items"] = []mason.Document{}
	for _, player := range players {
		item := mason.New(map[string]any{
			"name":        player.Name,
			"unique_name": player.UniqueName,
		})
		item.AddControl("self", mason.Control{Href: playerURL(player.UniqueName)})
		item.AddControl("profile", mason.Control{Href: playerProfile})
		doc.AppendItem(item)
	}

	h.writeMason(w, http.StatusOK, doc)
}

// CreatePlayer registers a player.
func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeJSON(r)
	if err != nil {
		h.writeBodyError(w, r, err)
		return
	}
	if err := schema.Player.Validate(payload); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid JSON document", err.Error())
		return
	}

	player := &domain.Player{
		Name:       stringField(payload, "name"),
		UniqueName: stringField(payload, "unique_name"),
		Password:   stringField(payload, "password"),
	}
	if err := h.service.CreatePlayer(r.Context(), player); err != nil {
		if errors.Is(err, domain.ErrPlayerExists) {
			h.writeError(w, r, http.StatusConflict, "Already exists",
				fmt.Sprintf("Player '%s' already exists.", player.UniqueName))
			return
		}
		h.writeError(w, r, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	w.Header().Set("Location", playerURL(player.UniqueName))
	w.WriteHeader(http.StatusCreated)
}

// GetPlayer serves one player.
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	player := pathParam(r, "player")

	entry, err := h.service.GetPlayer(r.Context(), player)
	if err != nil {
		if errors.Is(err, domain.ErrPlayerNotFound) {
			h.writeError(w, r, http.StatusNotFound, "Not found",
				fmt.Sprintf("Player '%s' wasn't found.", player))
			return
		}
		h.writeError(w, r, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	doc := mason.New(map[string]any{
		"name":        entry.Name,
		"unique_name": entry.UniqueName,
	})
	doc.AddNamespace("gss", linkRelationsURL)
	doc.AddControl("self", mason.Control{Href: playerURL(player)})
	doc.AddControl("profile", mason.Control{Href: playerProfile})
	doc.AddControl("collection", mason.Control{Href: playersURL()})
	addControlScoresBy(doc, player)
	addControlDelete(doc, playerURL(player))
	addControlEdit(doc, playerURL(player), schema.Player, "Edit this player")

	h.writeMason(w, http.StatusOK, doc)
}

// UpdatePlayer renames a player. The payload password confirms the
// caller's identity and the stored credential never changes.
func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	player := pathParam(r, "player")

	payload, err := decodeJSON(r)
	if err != nil {
		h.writeBodyError(w, r, err)
		return
	}
	if err := schema.Player.Validate(payload); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid JSON document", err.Error())
		return
	}

	upd := service.PlayerUpdate{
		Name:       stringField(payload, "name"),
		UniqueName: stringField(payload, "unique_name"),
		Password:   stringField(payload, "password"),
	}
	renamed, err := h.service.UpdatePlayer(r.Context(), player, upd)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPlayerNotFound):
			h.writeError(w, r, http.StatusNotFound, "Not found",
				fmt.Sprintf("Player '%s' wasn't found.", player))
		case errors.Is(err, domain.ErrInvalidCredentials):
			h.writeError(w, r, http.StatusUnauthorized, "Unauthorized", "Invalid password.")
		case errors.Is(err, domain.ErrPlayerExists):
			h.writeError(w, r, http.StatusConflict, "Already exists",
				fmt.Sprintf("Player '%s' already exists.", upd.UniqueName))
		default:
			h.writeError(w, r, http.StatusInternalServerError, "Internal server error", err.Error())
		}
		return
	}

	if renamed {
		newUnique := upd.UniqueName
		if newUnique == "" {
			newUnique = domain.DeriveUniqueName(upd.Name)
		}
		w.Header().Set("Location", playerURL(newUnique))
		w.WriteHeader(http.StatusMovedPermanently)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeletePlayer removes a player with their scores.
func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	player := pathParam(r, "player")

	if err := h.service.DeletePlayer(r.Context(), player); err != nil {
		if errors.Is(err, domain.ErrPlayerNotFound) {
			h.writeError(w, r, http.StatusNotFound, "Not found",
				fmt.Sprintf("Player '%s' wasn't found.", player))
			return
		}
		h.writeError(w, r, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListPlayerScores serves a player's scores across all games.
func (h *Handler) ListPlayerScores(w http.ResponseWriter, r *http.Request) {
	player := pathParam(r, "player")

	entry, scores, err := h.service.ListPlayerScores(r.Context(), player)
	if err != nil {
		if errors.Is(err, domain.ErrPlayerNotFound) {
			h.writeError(w, r, http.StatusNotFound, "Not found",
				fmt.Sprintf("Player '%s' wasn't found.", player))
			return
		}
		h.writeError(w, r, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	doc := mason.New(nil)
	doc.AddNamespace("gss", linkRelationsURL)
	doc.AddControl("self", mason.Control{Href: scoresByURL(player)})
	doc.AddControl("author", mason.Control{Href: playerURL(player)})
	doc["items"] = []mason.Document{}
	for _, score := range scores {
		item := mason.New(map[string]any{
			"game":  score.GameName,
			"level": score.LevelName,
			"value": score.Value,
			"type":  score.ScoreKind,
			"date":  score.RecordedAt,
		})
		item.AddControl("self", mason.Control{Href: scoreURL(score.GameName, score.LevelName, entry.UniqueName)})
		item.AddControl("profile", mason.Control{Href: scoreProfile})
		doc.AppendItem(item)
	}

	h.writeMason(w, http.StatusOK, doc)
}
