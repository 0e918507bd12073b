package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/learnledger/backend/internal/apperr"
	"github.com/learnledger/backend/internal/middleware"
)

// BaseHandler holds helpers shared by all handlers
type BaseHandler struct {
	logger *zap.Logger
}

// respondJSON sends a JSON response
func (h *BaseHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// respondError sends an error JSON response
func (h *BaseHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps a service error to its status code.
// Client errors carry the error text; server errors are logged and answered with fallback.
func (h *BaseHandler) respondServiceError(w http.ResponseWriter, err error, fallback string) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(fallback, zap.Int("status", status), zap.Error(err))
		h.respondError(w, status, fallback)
		return
	}
	h.respondError(w, status, err.Error())
}

// userID extracts the authenticated user ID, answering 401 when it is missing
func (h *BaseHandler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "user ID not found in context")
		return "", false
	}
	return userID, true
}
