package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/learnledger/backend/internal/models"
)

// CatalogService is the interface that wraps methods for course catalog business logic.
type CatalogService interface {
	// Method List retrieve the course catalog filtered by the given parameters.
	//
	// "difficulty" is a difficulty name or its abbreviation (b, i, a), "topic" matches one of the
	// course topics case-insensitively and "search" is a case-insensitive title substring.
	// Empty parameters do not filter. An invalid difficulty yields an error wrapping apperr.ErrInvalidInput.
	List(ctx context.Context, difficulty, topic, search string) ([]models.Course, error)
	// Method Get retrieve a course with its modules and exercises.
	//
	// If the course does not exist, the returned error wraps apperr.ErrNotFound.
	Get(ctx context.Context, id string) (*models.Course, error)
}

// CourseHandler handles HTTP requests for the course catalog
type CourseHandler struct {
	BaseHandler
	service CatalogService
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(svc CatalogService, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all course handler routes
func (h *CourseHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/courses", h.List)
		r.Get("/courses/{courseID}", h.Get)
	})
}

// List handles GET /api/v1/courses
// @Summary List courses
// @Description Get the course catalog, optionally filtered by difficulty, topic and title search. Requires authentication.
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param difficulty query string false "Difficulty: beginner, intermediate, advanced (or b, i, a)"
// @Param topic query string false "Topic, case-insensitive"
// @Param search query string false "Case-insensitive title substring"
// @Success 200 {array} models.Course
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/courses [get]
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	courses, err := h.service.List(r.Context(), query.Get("difficulty"), query.Get("topic"), query.Get("search"))
	if err != nil {
		h.respondServiceError(w, err, "failed to list courses")
		return
	}

	h.respondJSON(w, http.StatusOK, courses)
}

// Get handles GET /api/v1/courses/{courseID}
// @Summary Get course
// @Description Get a course with its modules and exercises. Requires authentication.
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param courseID path string true "Course ID"
// @Success 200 {object} models.Course
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/courses/{courseID} [get]
func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	course, err := h.service.Get(r.Context(), chi.URLParam(r, "courseID"))
	if err != nil {
		h.respondServiceError(w, err, "failed to get course")
		return
	}

	h.respondJSON(w, http.StatusOK, course)
}
