package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/learnledger/backend/internal/apperr"
	"github.com/learnledger/backend/internal/models"
)

// TutorService is the interface that wraps methods for the AI tutor session.
type TutorService interface {
	// Method Send append the user's message to the session and ask the responder for a reply.
	//
	// When the responder fails, the response is still returned, carrying the user message and
	// the error text, together with an error wrapping apperr.ErrUpstreamFailure.
	Send(ctx context.Context, userID string, req models.SendTutorMessageRequest) (*models.SendTutorMessageResponse, error)
	// Method Messages retrieve the current session log.
	Messages(ctx context.Context, userID string) (*models.TutorSessionResponse, error)
	// Method Clear empty the session log and start a new conversation.
	Clear(ctx context.Context, userID string) (*models.TutorSessionResponse, error)
}

// TutorHandler handles HTTP requests for the AI tutor
type TutorHandler struct {
	BaseHandler
	service TutorService
}

// NewTutorHandler creates a new tutor handler
func NewTutorHandler(svc TutorService, logger *zap.Logger) *TutorHandler {
	return &TutorHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all tutor handler routes
func (h *TutorHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/tutor", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/messages", h.Messages)
		r.Post("/messages", h.Send)
		r.Delete("/messages", h.Clear)
	})
}

// Messages handles GET /api/v1/tutor/messages
// @Summary Get tutor session
// @Description Get the current tutor conversation of the authenticated user
// @Tags tutor
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.TutorSessionResponse
// @Failure 401 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/tutor/messages [get]
func (h *TutorHandler) Messages(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	session, err := h.service.Messages(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, err, "failed to get tutor messages")
		return
	}

	h.respondJSON(w, http.StatusOK, session)
}

// Send handles POST /api/v1/tutor/messages
// @Summary Send tutor message
// @Description Send a message to the AI tutor. When course and module IDs are given, the module content is passed to the tutor.
// @Description If the tutor fails to answer, the user message is kept and a 502 carries it with the error text.
// @Tags tutor
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.SendTutorMessageRequest true "Message"
// @Success 200 {object} models.SendTutorMessageResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 502 {object} models.SendTutorMessageResponse
// @Router /api/v1/tutor/messages [post]
func (h *TutorHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.SendTutorMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.service.Send(r.Context(), userID, req)
	if err != nil {
		if resp != nil {
			h.logger.Warn("tutor reply failed", zap.String("user_id", userID), zap.Error(err))
			h.respondJSON(w, apperr.HTTPStatus(err), resp)
			return
		}
		h.respondServiceError(w, err, "failed to send tutor message")
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// Clear handles DELETE /api/v1/tutor/messages
// @Summary Clear tutor session
// @Description Empty the tutor conversation and start a new one
// @Tags tutor
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.TutorSessionResponse
// @Failure 401 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/tutor/messages [delete]
func (h *TutorHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	session, err := h.service.Clear(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, err, "failed to clear tutor session")
		return
	}

	h.respondJSON(w, http.StatusOK, session)
}
