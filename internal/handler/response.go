package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/jwalitptl/club-admin-api/pkg/errors"
)

// DateLayout is the format of the ?date= query parameter.
const DateLayout = "2006-01-02"

// Response acknowledges a request that has no resource to return.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func NewSuccessResponse() *Response {
	return &Response{Status: "success"}
}

// Deleted writes the acknowledgement used by every DELETE route.
func Deleted(c *gin.Context) {
	c.JSON(http.StatusOK, NewSuccessResponse())
}

// ParseID reads a positive integer path parameter. On failure the error is
// queued for the error handler and ok is false.
func ParseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		c.Error(apperrors.BadRequest(fmt.Sprintf("invalid %s", param), err))
		return 0, false
	}
	return id, true
}

// BindJSON decodes and validates the request body.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.Error(err).SetType(gin.ErrorTypeBind)
		return false
	}
	return true
}

// BindQuery decodes and validates query parameters.
func BindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		c.Error(err).SetType(gin.ErrorTypeBind)
		return false
	}
	return true
}

// ParseDate reads an optional ?date=YYYY-MM-DD as midnight in loc.
func ParseDate(c *gin.Context, loc *time.Location) (*time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return nil, true
	}
	day, err := time.ParseInLocation(DateLayout, raw, loc)
	if err != nil {
		c.Error(apperrors.BadRequest("date must be YYYY-MM-DD", err))
		return nil, false
	}
	return &day, true
}

// QueryInt64 reads an optional positive integer query parameter.
func QueryInt64(c *gin.Context, name string) (int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		c.Error(apperrors.BadRequest(fmt.Sprintf("invalid %s", name), err))
		return 0, false
	}
	return v, true
}
