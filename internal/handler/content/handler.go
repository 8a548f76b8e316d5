package content

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/club-admin-api/internal/handler"
	"github.com/jwalitptl/club-admin-api/internal/model"
)

type Service interface {
	List(ctx context.Context, filter *model.ContentFilter) ([]*model.ContentItem, error)
	Get(ctx context.Context, id int64) (*model.ContentItem, error)
	Create(ctx context.Context, req *model.ContentRequest) (*model.ContentItem, error)
	Update(ctx context.Context, id int64, req *model.ContentRequest) (*model.ContentItem, error)
	Delete(ctx context.Context, id int64) error
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	content := r.Group("/content")
	{
		content.GET("", h.ListContent)
		content.POST("", h.CreateContent)
		content.GET("/:id", h.GetContent)
		content.PUT("/:id", h.UpdateContent)
		content.DELETE("/:id", h.DeleteContent)
	}
}

func (h *Handler) ListContent(c *gin.Context) {
	var filter model.ContentFilter
	if !handler.BindQuery(c, &filter) {
		return
	}

	items, err := h.service.List(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) GetContent(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	item, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) CreateContent(c *gin.Context) {
	var req model.ContentRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	item, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) UpdateContent(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.ContentRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	item, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) DeleteContent(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	handler.Deleted(c)
}
