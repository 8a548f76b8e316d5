package schedule

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/club-admin-api/internal/handler"
	"github.com/jwalitptl/club-admin-api/internal/model"
)

type Service interface {
	ForDay(ctx context.Context, day *time.Time) (*model.ResourceSchedule, error)
}

type Handler struct {
	service Service
	loc     *time.Location
}

func NewHandler(service Service, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{service: service, loc: loc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/schedule", h.GetSchedule)
}

// GetSchedule renders the day's appointments keyed by resource, in the order
// each resource is first booked. Without ?date= the day is today.
func (h *Handler) GetSchedule(c *gin.Context) {
	day, ok := handler.ParseDate(c, h.loc)
	if !ok {
		return
	}

	schedule, err := h.service.ForDay(c.Request.Context(), day)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}
