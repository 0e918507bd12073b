package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/learnledger/backend/internal/middleware"
	"github.com/learnledger/backend/internal/models"
)

// CredentialService is the interface that wraps methods for credential business logic.
type CredentialService interface {
	// Method Issue create a new pending credential with a fresh verification hash.
	//
	// Missing user ID, title or issuer, or an expiry date before the issue date, yield an error
	// wrapping apperr.ErrInvalidInput. Persistence failures wrap apperr.ErrUpstreamFailure.
	Issue(ctx context.Context, req models.IssueCredentialRequest) (*models.Credential, error)
	// Method Verify run the external signature check for a credential owned by the user.
	//
	// A credential that does not exist or belongs to another user yields apperr.ErrNotFound.
	// A revoked credential or a negative check yields apperr.ErrVerificationFailed and a failed
	// check yields apperr.ErrUpstreamFailure. In all failing cases the status is unchanged.
	Verify(ctx context.Context, userID, id string) (*models.VerificationResponse, error)
	// Method Revoke move a credential of any status to revoked.
	Revoke(ctx context.Context, id string) (*models.Credential, error)
	// Method ListForUser retrieve the user's credentials, optionally filtered by status.
	//
	// "status" is empty or one of pending, verified, revoked; other values yield apperr.ErrInvalidInput.
	ListForUser(ctx context.Context, userID, status string) ([]models.Credential, error)
	// Method Grouped retrieve the user's credentials grouped by status.
	Grouped(ctx context.Context, userID string) (*models.GroupedCredentials, error)
}

// CredentialHandler handles HTTP requests for credentials
type CredentialHandler struct {
	BaseHandler
	service CredentialService
}

// NewCredentialHandler creates a new credential handler
func NewCredentialHandler(svc CredentialService, logger *zap.Logger) *CredentialHandler {
	return &CredentialHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all credential handler routes
func (h *CredentialHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/credentials", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.List)
		r.Get("/grouped", h.Grouped)
		r.Post("/{credentialID}/verify", h.Verify)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RoleMiddleware(models.RoleAdmin))
			r.Post("/", h.Issue)
			r.Post("/{credentialID}/revoke", h.Revoke)
		})
	})
}

// List handles GET /api/v1/credentials
// @Summary List credentials
// @Description Get the credentials of the authenticated user, optionally filtered by status
// @Tags credentials
// @Produce json
// @Security ApiKeyAuth
// @Param status query string false "Status: pending, verified, revoked"
// @Success 200 {array} models.Credential
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/credentials [get]
func (h *CredentialHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	credentials, err := h.service.ListForUser(r.Context(), userID, r.URL.Query().Get("status"))
	if err != nil {
		h.respondServiceError(w, err, "failed to list credentials")
		return
	}

	h.respondJSON(w, http.StatusOK, credentials)
}

// Grouped handles GET /api/v1/credentials/grouped
// @Summary Group credentials
// @Description Get the credentials of the authenticated user grouped by status
// @Tags credentials
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.GroupedCredentials
// @Failure 401 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/credentials/grouped [get]
func (h *CredentialHandler) Grouped(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	grouped, err := h.service.Grouped(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, err, "failed to group credentials")
		return
	}

	h.respondJSON(w, http.StatusOK, grouped)
}

// Verify handles POST /api/v1/credentials/{credentialID}/verify
// @Summary Verify credential
// @Description Run the signature check for a pending credential of the authenticated user.
// @Description Revoked credentials are never verified.
// @Tags credentials
// @Produce json
// @Security ApiKeyAuth
// @Param credentialID path string true "Credential ID"
// @Success 200 {object} models.VerificationResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string "Verification failed"
// @Failure 502 {object} map[string]string
// @Router /api/v1/credentials/{credentialID}/verify [post]
func (h *CredentialHandler) Verify(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	result, err := h.service.Verify(r.Context(), userID, chi.URLParam(r, "credentialID"))
	if err != nil {
		h.respondServiceError(w, err, "failed to verify credential")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// Issue handles POST /api/v1/credentials
// @Summary Issue credential
// @Description Issue a pending credential to a user. Requires admin role.
// @Tags credentials
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.IssueCredentialRequest true "Credential data"
// @Success 201 {object} models.Credential
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/credentials [post]
func (h *CredentialHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var req models.IssueCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	credential, err := h.service.Issue(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, err, "failed to issue credential")
		return
	}

	h.respondJSON(w, http.StatusCreated, credential)
}

// Revoke handles POST /api/v1/credentials/{credentialID}/revoke
// @Summary Revoke credential
// @Description Revoke a credential of any status. Requires admin role.
// @Tags credentials
// @Produce json
// @Security ApiKeyAuth
// @Param credentialID path string true "Credential ID"
// @Success 200 {object} models.Credential
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/credentials/{credentialID}/revoke [post]
func (h *CredentialHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	credential, err := h.service.Revoke(r.Context(), chi.URLParam(r, "credentialID"))
	if err != nil {
		h.respondServiceError(w, err, "failed to revoke credential")
		return
	}

	h.respondJSON(w, http.StatusOK, credential)
}
