package apperr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFound(t *testing.T) {
	err := NotFound("course %s", "42")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "course 42: not found", err.Error())
}

func TestUpstream(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Upstream("op", nil))
	})

	t.Run("wraps unknown errors", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := Upstream("failed to save progress", cause)

		assert.True(t, errors.Is(err, ErrUpstreamFailure))
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("keeps taxonomy errors", func(t *testing.T) {
		err := NotFound("credential %s", "1")
		assert.Equal(t, err, Upstream("op", err))
	})
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil", err: nil, expected: http.StatusOK},
		{name: "not found", err: NotFound("course %s", "1"), expected: http.StatusNotFound},
		{name: "invalid input", err: InvalidInput("title is required"), expected: http.StatusBadRequest},
		{name: "verification failed", err: ErrVerificationFailed, expected: http.StatusUnprocessableEntity},
		{name: "upstream", err: Upstream("op", errors.New("boom")), expected: http.StatusBadGateway},
		{name: "unknown", err: errors.New("boom"), expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
