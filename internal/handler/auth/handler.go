package auth

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/club-admin-api/internal/handler"
	"github.com/jwalitptl/club-admin-api/internal/middleware"
	"github.com/jwalitptl/club-admin-api/internal/model"
	"github.com/jwalitptl/club-admin-api/pkg/auth"
	apperrors "github.com/jwalitptl/club-admin-api/pkg/errors"
)

type Service interface {
	Login(ctx context.Context, req *model.LoginRequest, clientIP string) (*model.LoginResponse, error)
	Logout(ctx context.Context, claims *auth.Claims)
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts login on a public group; logout needs the
// authenticated group so the session's claims are available.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/auth/login", h.Login)
	protected.POST("/auth/logout", h.Logout)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), &req, c.ClientIP())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Logout(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.Error(apperrors.Unauthorized(nil))
		return
	}

	h.svc.Logout(c.Request.Context(), claims)
	c.JSON(http.StatusOK, handler.NewSuccessResponse())
}
