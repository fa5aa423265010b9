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

// GetLevel serves one level with its full score listing embedded,
// ordered by the level's sort order.
func (h *Handler) GetLevel(w http.ResponseWriter, r *http.Request) {
	game := pathParam(r, "game")
	level := pathParam(r, "level")

	entry, scores, err := h.service.GetLevelWithScores(r.Context(), game, level)
	if err != nil {
		if errors.Is(err, domain.ErrLevelNotFound) {
			h.writeError(w, r, http.StatusNotFound, "Not found",
				fmt.Sprintf("Level '%s' wasn't found.", level))
			return
		}
		h.writeError(w, r, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	doc := mason.New(map[string]any{
		"name":  entry.Name,
		"type":  entry.ScoreKind,
		"order": entry.SortOrder,
	})
	doc.AddNamespace("gss", linkRelationsURL)
	doc.AddControl("self", mason.Control{Href: levelURL(game, level)})
	doc.AddControl("profile", mason.Control{Href: levelProfile})
	doc.AddControl("up", mason.Control{Href: gameURL(game)})
	addControlAddScore(doc, game, level)
	addControlEdit(doc, levelURL(game, level), schema.Level, "Edit this level")
	addControlDelete(doc, levelURL(game, level))
	doc["items"] = []mason.Document{}
	for _, score := range scores {
		item := mason.New(map[string]any{
			"player": score.PlayerName,
			"value":  score.Value,
			"date":   score.RecordedAt,
		})
		item.AddControl("self", mason.Control{Href: scoreURL(game, level, score.PlayerUniqueName)})
		item.AddControl("profile", mason.Control{Href: scoreProfile})
		doc.AppendItem(item)
	}

	h.writeMason(w, http.StatusOK, doc)
}

// CreateLevel adds a level under a game.
func (h *Handler) CreateLevel(w http.ResponseWriter, r *http.Request) {
	game := pathParam(r, "game")

	payload, err := decodeJSON(r)
	if err != nil {
		h.writeBodyError(w, r, err)
		return
	}
	if err := schema.Level.Validate(payload); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid JSON document", err.Error())
		return
	}

	level := &domain.Level{
		Name:      stringField(payload, "name"),
		ScoreKind: domain.ScoreKind(stringField(payload, "type")),
		SortOrder: domain.SortOrder(stringField(payload, "order")),
	}
	if err := h.service.CreateLevel(r.Context(), game, level); err != nil {
		switch {
		case errors.Is(err, domain.ErrGameNotFound):
			h.writeError(w, r, http.StatusNotFound, "Not found",
				fmt.Sprintf("Game '%s' wasn't found.", game))
		case errors.Is(err, domain.ErrLevelExists):
			h.writeError(w, r, http.StatusConflict, "Already exists",
				fmt.Sprintf("Level '%s' already exists.", level.Name))
		default:
			h.writeError(w, r, http.StatusInternalServerError, "Internal server error", err.Error())
		}
		return
	}

	w.Header().Set("Location", levelURL(game, level.Name))
	w.WriteHeader(http.StatusCreated)
}

// UpdateLevel replaces a level's fields. A rename answers with the new
// location.
func (h *Handler) UpdateLevel(w http.ResponseWriter, r *http.Request) {
	game := pathParam(r, "game")
	level := pathParam(r, "level")

	payload, err := decodeJSON(r)
	if err != nil {
		h.writeBodyError(w, r, err)
		return
	}
	if err := schema.Level.Validate(payload); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid JSON document", err.Error())
		return
	}

	upd := domain.Level{
		Name:      stringField(payload, "name"),
		ScoreKind: domain.ScoreKind(stringField(payload, "type")),
		SortOrder: domain.SortOrder(stringField(payload, "order")),
	}
	renamed, err := h.service.UpdateLevel(r.Context(), game, level, upd)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLevelNotFound):
			h.writeError(w, r, http.StatusNotFound, "Not found",
				fmt.Sprintf("Level '%s' wasn't found.", level))
		case errors.Is(err, domain.ErrLevelExists):
			h.writeError(w, r, http.StatusConflict, "Already exists",
				fmt.Sprintf("Level '%s' already exists.", upd.Name))
		default:
			h.writeError(w, r, http.StatusInternalServerError, "Internal server error", err.Error())
		}
		return
	}

	if renamed {
		w.Header().Set("Location", levelURL(game, upd.Name))
		w.WriteHeader(http.StatusMovedPermanently)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SubmitScore records a new score on a level.
func (h *Handler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	game := pathParam(r, "game")
	level := pathParam(r, "level")

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
	if _, err := h.service.SubmitScore(r.Context(), game, level, sub); err != nil {
		switch {
		case errors.Is(err, domain.ErrLevelNotFound):
			h.writeError(w, r, http.StatusNotFound, "Not found",
				fmt.Sprintf("Level '%s' wasn't found.", level))
		case errors.Is(err, domain.ErrPlayerNotFound):
			h.writeError(w, r, http.StatusNotFound, "Not found", "Player wasn't found.")
		case errors.Is(err, domain.ErrInvalidCredentials):
			h.writeError(w, r, http.StatusUnauthorized, "Unauthorized", "Invalid password.")
		case errors.Is(err, domain.ErrScoreExists):
			h.writeError(w, r, http.StatusConflict, "Already exists", "Score already exists.")
		default:
			h.writeError(w, r, http.StatusInternalServerError, "Internal server error", err.Error())
		}
		return
	}

	w.Header().Set("Location", scoreURL(game, level, sub.Player))
	w.WriteHeader(http.StatusCreated)
}

// DeleteLevel removes a level with its scores.
func (h *Handler) DeleteLevel(w http.ResponseWriter, r *http.Request) {
	game := pathParam(r, "game")
	level := pathParam(r, "level")

	if err := h.service.DeleteLevel(r.Context(), game, level); err != nil {
		if errors.Is(err, domain.ErrLevelNotFound) {
			h.writeError(w, r, http.StatusNotFound, "Not found",
				fmt.Sprintf("Level '%s' wasn't found.", level))
			return
		}
		h.writeError(w, r, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
