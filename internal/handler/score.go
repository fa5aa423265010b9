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

// GetScore serves one player's score on a level. The lookup resolves
// the level within the game first, then the score within that level.
func (h *Handler) GetScore(w http.ResponseWriter, r *http.Request) {
	game := pathParam(r, "game")
	level := pathParam(r, "level")
	player := pathParam(r, "player")

	entry, err := h.service.GetLevel(r.Context(), game, level)
	if err != nil {
		if errors.Is(err, domain.ErrLevelNotFound) {
			h.writeError(w, r, http.StatusNotFound, "Not found",
				fmt.Sprintf("Level '%s' wasn't found.", level))
			return
		}
		h.writeError(w, r, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	score, err := h.service.GetScore(r.Context(), game, level, player)
	if err != nil {
		if errors.Is(err, domain.ErrScoreNotFound) {
			h.writeError(w, r, http.StatusNotFound, "Not found", "Score wasn't found.")
			return
		}
		h.writeError(w, r, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	doc := mason.New(map[string]any{
		"name":  player,
		"value": score.Value,
		"type":  entry.ScoreKind,
		"date":  score.RecordedAt,
	})
	doc.AddNamespace("gss", linkRelationsURL)
	doc.AddControl("self", mason.Control{Href: scoreURL(game, level, player)})
	doc.AddControl("profile", mason.Control{Href: scoreProfile})
	doc.AddControl("up", mason.Control{Href: levelURL(game, level)})
	doc.AddControl("author", mason.Control{Href: playerURL(player)})
	addControlScoresBy(doc, player)
	addControlEdit(doc, scoreURL(game, level, player), schema.Score, "Edit this score")
	addControlDelete(doc, scoreURL(game, level, player))

	h.writeMason(w, http.StatusOK, doc)
}

// UpdateScore replaces the value and timestamp of a score. The owning
// player cannot change; a correct password does not override that.
func (h *Handler) UpdateScore(w http.ResponseWriter, r *http.Request) {
	game := pathParam(r, "game")
	level := pathParam(r, "level")
	player := pathParam(r, "player")

	payload, err := decodeJSON(r)
	if err != nil {
		h.writeBodyError(w, r, err)
		return
	}
	if err := schema.Score.Validate(payload); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid JSON document", err.Error())
		return
	}

	sub := service.ScoreSubmission{
		Player:     stringField(payload, "player"),
		Password:   stringField(payload, "password"),
		Value:      numberField(payload, "value"),
		RecordedAt: stringField(payload, "date"),
	}
	if err := h.service.UpdateScore(r.Context(), game, level, player, sub); err != nil {
		switch {
		case errors.Is(err, domain.ErrLevelNotFound):
			h.writeError(w, r, http.StatusNotFound, "Not found",
				fmt.Sprintf("Level '%s' wasn't found.", level))
		case errors.Is(err, domain.ErrScoreNotFound):
			h.writeError(w, r, http.StatusNotFound, "Not found", "Score wasn't found.")
		case errors.Is(err, domain.ErrPlayerNotFound):
			h.writeError(w, r, http.StatusNotFound, "Not found", "Player wasn't found.")
		case errors.Is(err, domain.ErrOwnerImmutable):
			h.writeError(w, r, http.StatusForbidden, "Forbidden", "Score owner cannot be changed.")
		case errors.Is(err, domain.ErrInvalidCredentials):
			h.writeError(w, r, http.StatusUnauthorized, "Unauthorized", "Invalid password.")
		default:
			h.writeError(w, r, http.StatusInternalServerError, "Internal server error", err.Error())
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteScore removes one player's score from a level.
func (h *Handler) DeleteScore(w http.ResponseWriter, r *http.Request) {
	game := pathParam(r, "game")
	level := pathParam(r, "level")
	player := pathParam(r, "player")

	if err := h.service.DeleteScore(r.Context(), game, level, player); err != nil {
		switch {
		case errors.Is(err, domain.ErrLevelNotFound):
			h.writeError(w, r, http.StatusNotFound, "Not found",
				fmt.Sprintf("Level '%s' wasn't found.", level))
		case errors.Is(err, domain.ErrScoreNotFound):
			h.writeError(w, r, http.StatusNotFound, "Not found", "Score wasn't found.")
		default:
			h.writeError(w, r, http.StatusInternalServerError, "Internal server error", err.Error())
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
