package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/jwalitptl/club-admin-api/pkg/errors"
)

// DefaultMaxBodySize fits a member record with a long medical summary.
const DefaultMaxBodySize int64 = 1 << 20

var errBodyTooLarge = errors.New("request body too large")

// SizeLimit rejects declared oversize bodies up front and caps the reader for
// the rest, so a lying Content-Length fails during binding instead.
func SizeLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.Error(&apperrors.AppError{
				Code:    apperrors.ErrBadRequest,
				Message: fmt.Sprintf("request body exceeds %d bytes", maxBytes),
				Err:     errBodyTooLarge,
			})
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
