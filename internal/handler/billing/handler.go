package billing

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/club-admin-api/internal/handler"
	"github.com/jwalitptl/club-admin-api/internal/model"
)

type Service interface {
	ListOrders(ctx context.Context, filter *model.OrderFilter) ([]*model.Order, error)
	GetOrder(ctx context.Context, id int64) (*model.Order, error)
	CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
	ChargeTabs(ctx context.Context) (*model.ChargeTabsResult, error)
	ListInvoices(ctx context.Context, filter *model.InvoiceFilter) ([]*model.Invoice, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	orders := r.Group("/orders")
	{
		orders.GET("", h.ListOrders)
		orders.POST("", h.CreateOrder)
		orders.POST("/charge-tabs", h.ChargeTabs)
		orders.GET("/:id", h.GetOrder)
		orders.DELETE("/:id", h.DeleteOrder)
	}
	r.GET("/invoices", h.ListInvoices)
}

func (h *Handler) ListOrders(c *gin.Context) {
	var filter model.OrderFilter
	if !handler.BindQuery(c, &filter) {
		return
	}

	orders, err := h.service.ListOrders(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	order, err := h.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req model.OrderRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	order, err := h.service.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteOrder(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	handler.Deleted(c)
}

// ChargeTabs marks every open tab as paid and reports what was settled.
func (h *Handler) ChargeTabs(c *gin.Context) {
	result, err := h.service.ChargeTabs(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) ListInvoices(c *gin.Context) {
	var filter model.InvoiceFilter
	if !handler.BindQuery(c, &filter) {
		return
	}

	invoices, err := h.service.ListInvoices(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, invoices)
}
