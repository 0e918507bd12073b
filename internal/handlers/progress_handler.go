package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/learnledger/backend/internal/models"
)

// ProgressService is the interface that wraps methods for progress tracking business logic.
type ProgressService interface {
	// Method RecordCompletion mark a module of a course as completed by the user.
	//
	// The updated progress entry is returned. Unknown courses and modules yield an error
	// wrapping apperr.ErrNotFound; persistence failures wrap apperr.ErrUpstreamFailure.
	RecordCompletion(ctx context.Context, userID, courseID, moduleID string) (*models.Progress, error)
	// Method GetProgress retrieve the user's progress in a course.
	//
	// A course the user has not started yields a response with "Started" set to false.
	GetProgress(ctx context.Context, userID, courseID string) (*models.ProgressResponse, error)
	// Method ListProgress retrieve all progress entries of the user ordered by course ID.
	ListProgress(ctx context.Context, userID string) ([]models.Progress, error)
}

// ProgressHandler handles HTTP requests for learning progress
type ProgressHandler struct {
	BaseHandler
	service ProgressService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(svc ProgressService, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all progress handler routes
func (h *ProgressHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/progress", h.List)
		r.Get("/courses/{courseID}/progress", h.Get)
		r.Post("/courses/{courseID}/modules/{moduleID}/complete", h.Complete)
	})
}

// Complete handles POST /api/v1/courses/{courseID}/modules/{moduleID}/complete
// @Summary Complete module
// @Description Mark a module as completed by the authenticated user and return the updated progress. Repeated completions are no-ops.
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Param courseID path string true "Course ID"
// @Param moduleID path string true "Module ID"
// @Success 200 {object} models.Progress
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string "Course or module not found"
// @Failure 502 {object} map[string]string
// @Router /api/v1/courses/{courseID}/modules/{moduleID}/complete [post]
func (h *ProgressHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	progress, err := h.service.RecordCompletion(r.Context(), userID, chi.URLParam(r, "courseID"), chi.URLParam(r, "moduleID"))
	if err != nil {
		h.respondServiceError(w, err, "failed to record completion")
		return
	}

	h.respondJSON(w, http.StatusOK, progress)
}

// Get handles GET /api/v1/courses/{courseID}/progress
// @Summary Get course progress
// @Description Get the authenticated user's progress in a course
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Param courseID path string true "Course ID"
// @Success 200 {object} models.ProgressResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/courses/{courseID}/progress [get]
func (h *ProgressHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	progress, err := h.service.GetProgress(r.Context(), userID, chi.URLParam(r, "courseID"))
	if err != nil {
		h.respondServiceError(w, err, "failed to get progress")
		return
	}

	h.respondJSON(w, http.StatusOK, progress)
}

// List handles GET /api/v1/progress
// @Summary List progress
// @Description Get all progress entries of the authenticated user
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.Progress
// @Failure 401 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/progress [get]
func (h *ProgressHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	entries, err := h.service.ListProgress(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, err, "failed to list progress")
		return
	}

	h.respondJSON(w, http.StatusOK, entries)
}
