package errors

import (
	"database/sql"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{NotFound("member", nil), http.StatusNotFound},
		{BadRequest("bad", nil), http.StatusBadRequest},
		{Conflict("email already in use", nil), http.StatusConflict},
		{Unauthorized(nil), http.StatusUnauthorized},
		{Unavailable(sql.ErrConnDone), http.StatusServiceUnavailable},
		{Internal(nil), http.StatusInternalServerError},
		{TooManyRequests(nil), http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.StatusCode(), tt.err.Message)
	}
}

func TestAsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("failed to get member: %w", NotFound("member", sql.ErrNoRows))

	appErr, ok := As(err)
	assert.True(t, ok)
	assert.Equal(t, "member not found", appErr.Message)
	assert.True(t, IsNotFound(err))
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.False(t, IsCode(err, ErrConflict))
}
