package insights

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/club-admin-api/internal/model"
)

type Service interface {
	Get(ctx context.Context) (*model.Insights, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/insights", h.GetInsights)
}

func (h *Handler) GetInsights(c *gin.Context) {
	insights, err := h.service.Get(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, insights)
}
