// Package api provides HTTP handlers, middleware, and routing over the
// voiceprefs session layer.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/zerotts/voiceprefs"
)

// handleCheckAdmission answers whether a user's request may proceed under
// the rate limit. An admitted check counts against the user's window.
func (s *Server) handleCheckAdmission(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userIDParam(w, r)
	if !ok {
		return
	}

	allowed := s.manager.CheckAdmission(userID)
	status := http.StatusOK
	if !allowed {
		status = http.StatusTooManyRequests
	}
	s.respondWithJSON(w, r, status, map[string]bool{"allowed": allowed})
}

// handleGetPreference returns the user's value for a preference key. The
// optional "fallback" query parameter overrides the definition default.
func (s *Server) handleGetPreference(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userIDParam(w, r)
	if !ok {
		return
	}
	key := chi.URLParam(r, "key")
	fallback := r.URL.Query().Get("fallback")

	value := s.manager.GetPreference(userID, key, fallback)
	s.respondWithJSON(w, r, http.StatusOK, map[string]string{
		"key":   key,
		"value": value,
	})
}

type setPreferenceRequest struct {
	Value string `json:"value"`
}

// handleSetPreference stores a preference value for a user.
func (s *Server) handleSetPreference(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userIDParam(w, r)
	if !ok {
		return
	}
	key := chi.URLParam(r, "key")

	r.Body = http.MaxBytesReader(w, r.Body, 1024*1024)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req setPreferenceRequest
	if err := decoder.Decode(&req); err != nil {
		s.respondWithError(w, r, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	if err := s.manager.SetPreference(userID, key, req.Value); err != nil {
		switch {
		case errors.Is(err, voiceprefs.ErrPreferenceNotDefined):
			s.respondWithError(w, r, http.StatusNotFound, "Unknown preference key", err)
		case errors.Is(err, voiceprefs.ErrInvalidValue), errors.Is(err, voiceprefs.ErrInvalidInput):
			s.respondWithError(w, r, http.StatusBadRequest, "Invalid preference value", err)
		default:
			s.respondWithError(w, r, http.StatusInternalServerError, "Failed to set preference", err)
		}
		return
	}

	s.respondWithJSON(w, r, http.StatusOK, map[string]string{
		"key":   key,
		"value": req.Value,
	})
}

// handleGetCatalog returns the categorized voice index, refreshing it from
// the provider when stale.
func (s *Server) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	ix, err := s.manager.GetCatalogIndex(r.Context())
	if err != nil {
		s.respondWithError(w, r, http.StatusBadGateway, "Failed to fetch voice catalog", err)
		return
	}
	s.respondWithJSON(w, r, http.StatusOK, ix)
}

// handleGetQuota returns the remaining character budget, refreshing it
// from the provider when stale.
func (s *Server) handleGetQuota(w http.ResponseWriter, r *http.Request) {
	q, err := s.manager.GetRemainingQuota(r.Context())
	if err != nil {
		s.respondWithError(w, r, http.StatusBadGateway, "Failed to fetch quota", err)
		return
	}
	s.respondWithJSON(w, r, http.StatusOK, q)
}

func (s *Server) userIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "userID")
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.respondWithError(w, r, http.StatusBadRequest, "Invalid user id", err)
		return 0, false
	}
	return userID, true
}

// respondWithError is a helper to send JSON error responses.
func (s *Server) respondWithError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	errBody := map[string]string{"message": message}
	if err != nil {
		errBody["details"] = err.Error()
	}
	s.logger.Error("API Error", "status", status, "message", message, "path", r.URL.Path, "error", err)
	respondWithJSONRaw(w, status, map[string]interface{}{"error": errBody})
}

// respondWithJSON is a helper to send JSON responses.
func (s *Server) respondWithJSON(w http.ResponseWriter, _ *http.Request, status int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("Failed to marshal JSON response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"Failed to marshal response"}}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// respondWithJSONRaw is a lower-level helper for error payloads.
func respondWithJSONRaw(w http.ResponseWriter, status int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"Critical: Failed to marshal error response"}}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
