package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/learnledger/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubValidator struct {
	userID string
	role   models.Role
	err    error
	token  string
}

func (s *stubValidator) ValidateAccessToken(token string) (string, models.Role, error) {
	s.token = token
	if s.err != nil {
		return "", 0, s.err
	}
	return s.userID, s.role, nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	t.Run("generates id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))
	})

	t.Run("keeps incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "abc")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "abc", seen)
		assert.Equal(t, "abc", rec.Header().Get("X-Request-ID"))
	})
}

func TestRecoveryMiddleware(t *testing.T) {
	handler := RecoveryMiddleware(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestCORSMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		allowed        []string
		origin         string
		method         string
		expectedOrigin string
		expectedStatus int
	}{
		{name: "wildcard", allowed: []string{"*"}, origin: "https://app.example", method: http.MethodGet, expectedOrigin: "*", expectedStatus: http.StatusOK},
		{name: "listed origin", allowed: []string{"https://app.example"}, origin: "https://APP.example", method: http.MethodGet, expectedOrigin: "https://APP.example", expectedStatus: http.StatusOK},
		{name: "unlisted origin", allowed: []string{"https://app.example"}, origin: "https://evil.example", method: http.MethodGet, expectedOrigin: "", expectedStatus: http.StatusOK},
		{name: "preflight", allowed: []string{"*"}, origin: "https://app.example", method: http.MethodOptions, expectedOrigin: "*", expectedStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()

			CORSMiddleware(tt.allowed)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestCORSMiddleware_Credentials(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example")

	rec := httptest.NewRecorder()
	CORSMiddleware([]string{"https://app.example"})(okHandler()).ServeHTTP(rec, req)
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "X-Request-ID", rec.Header().Get("Access-Control-Expose-Headers"))

	rec = httptest.NewRecorder()
	CORSMiddleware([]string{"*"})(okHandler()).ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	handler := RequestSizeLimitMiddleware(4)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("too long")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("ok")))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoggerMiddleware(t *testing.T) {
	handler := LoggerMiddleware(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		setup          func(r *http.Request)
		validator      *stubValidator
		expectedStatus int
		expectedUser   string
	}{
		{
			name:           "bearer header",
			setup:          func(r *http.Request) { r.Header.Set("Authorization", "Bearer tkn") },
			validator:      &stubValidator{userID: "u1", role: models.RoleUser},
			expectedStatus: http.StatusOK,
			expectedUser:   "u1",
		},
		{
			name:           "cookie",
			setup:          func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "access_token", Value: "tkn"}) },
			validator:      &stubValidator{userID: "u2", role: models.RoleUser},
			expectedStatus: http.StatusOK,
			expectedUser:   "u2",
		},
		{
			name:           "missing token",
			setup:          func(r *http.Request) {},
			validator:      &stubValidator{},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid token",
			setup:          func(r *http.Request) { r.Header.Set("Authorization", "Bearer tkn") },
			validator:      &stubValidator{err: errors.New("expired")},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUser string
			handler := AuthMiddleware(tt.validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser, _ = GetUserID(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedUser, gotUser)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "tkn", tt.validator.token)
			}
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		withUser       bool
		role           models.Role
		expectedStatus int
	}{
		{name: "admin allowed", withUser: true, role: models.RoleAdmin, expectedStatus: http.StatusOK},
		{name: "user forbidden", withUser: true, role: models.RoleUser, expectedStatus: http.StatusForbidden},
		{name: "anonymous", withUser: false, expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.withUser {
				req = req.WithContext(WithUser(req.Context(), "u1", tt.role))
			}
			rec := httptest.NewRecorder()

			RoleMiddleware(models.RoleAdmin)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}
