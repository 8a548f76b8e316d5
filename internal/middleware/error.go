package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	apperrors "github.com/jwalitptl/club-admin-api/pkg/errors"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Status    string            `json:"status"`
	Message   string            `json:"message"`
	Code      int               `json:"code,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
	Errors    []ValidationError `json:"errors,omitempty"`
}

// ErrorHandler renders the last error pushed with c.Error. Nothing is written
// if the handler already produced a response body.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		requestID := c.GetString(ContextRequestID)
		for _, e := range c.Errors {
			log.Error().
				Err(e.Err).
				Str("request_id", requestID).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Str("client_ip", c.ClientIP()).
				Msg("Request error")
		}

		if c.Writer.Written() {
			return
		}

		status, body := renderError(c.Errors.Last())
		body.RequestID = requestID
		c.AbortWithStatusJSON(status, body)
	}
}

func renderError(e *gin.Error) (int, ErrorResponse) {
	var verrs validator.ValidationErrors
	if errors.As(e.Err, &verrs) {
		return http.StatusBadRequest, ErrorResponse{
			Status:  "error",
			Message: "validation failed",
			Code:    int(apperrors.ErrBadRequest),
			Errors:  translate(verrs),
		}
	}

	if appErr, ok := apperrors.As(e.Err); ok {
		return appErr.StatusCode(), ErrorResponse{
			Status:  "error",
			Message: appErr.Message,
			Code:    int(appErr.Code),
		}
	}

	if e.IsType(gin.ErrorTypeBind) {
		return http.StatusBadRequest, ErrorResponse{
			Status:  "error",
			Message: "invalid request body",
			Code:    int(apperrors.ErrBadRequest),
		}
	}

	return http.StatusInternalServerError, ErrorResponse{
		Status:  "error",
		Message: "internal server error",
		Code:    int(apperrors.ErrInternal),
	}
}
