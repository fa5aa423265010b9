package handler

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/gamescore-service/internal/mason"
)

// Sentinel reasons for rejecting a request body before validation.
var (
	errNotJSON     = errors.New("requests must be JSON")
	errUnreadable  = errors.New("request body is not valid JSON")
	errEmptyObject = errors.New("request body must be a JSON object")
)

// pathParam returns a decoded URL parameter. chi hands back the raw
// segment when the path contains percent escapes.
func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

// decodeJSON reads the request body into a generic object. It separates
// media type problems from malformed bodies so callers can answer 415
// or 400 accordingly.
func decodeJSON(r *http.Request) (map[string]any, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return nil, errNotJSON
	}

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return nil, errUnreadable
	}
	if payload == nil {
		return nil, errEmptyObject
	}
	return payload, nil
}

// writeMason serializes a document with the Mason media type.
func (h *Handler) writeMason(w http.ResponseWriter, status int, doc mason.Document) {
	w.Header().Set("Content-Type", mason.MediaType)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(doc); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// writeError sends a Mason error document carrying the canonical title
// plus a longer human-readable detail.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, title, detail string) {
	doc := mason.New(map[string]any{"resource_url": r.URL.Path})
	doc.AddError(title, detail)
	doc.AddControl("profile", mason.Control{Href: errorProfile})
	h.writeMason(w, status, doc)
}

// writeBodyError maps a decode failure to its status code.
func (h *Handler) writeBodyError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, errNotJSON) {
		h.writeError(w, r, http.StatusUnsupportedMediaType, "Unsupported media type", "Requests must be JSON")
		return
	}
	h.writeError(w, r, http.StatusBadRequest, "Invalid JSON document", err.Error())
}

// stringField returns a payload's string field, or empty when absent.
// Validation has already established the type of present fields.
func stringField(payload map[string]any, name string) string {
	value, _ := payload[name].(string)
	return value
}

// numberField returns a payload's numeric field truncated to an integer.
func numberField(payload map[string]any, name string) int64 {
	switch v := payload[name].(type) {
	case float64:
		return int64(v)
	case json.Number:
		n, _ := v.Int64()
		return n
	default:
		return 0
	}
}
