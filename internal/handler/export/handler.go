package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/club-admin-api/internal/handler"
	"github.com/jwalitptl/club-admin-api/internal/model"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Service interface {
	WriteMembers(ctx context.Context, filter *model.MemberFilter, w io.Writer) error
}

type Handler struct {
	service Service
	now     func() time.Time
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service, now: time.Now}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/exports/members.xlsx", h.ExportMembers)
}

// ExportMembers accepts the same filters as the member list. The workbook is
// built in memory so a failure can still be reported as JSON.
func (h *Handler) ExportMembers(c *gin.Context) {
	var filter model.MemberFilter
	if !handler.BindQuery(c, &filter) {
		return
	}

	var buf bytes.Buffer
	if err := h.service.WriteMembers(c.Request.Context(), &filter, &buf); err != nil {
		c.Error(err)
		return
	}

	filename := fmt.Sprintf("members-%s.xlsx", h.now().Format(handler.DateLayout))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
