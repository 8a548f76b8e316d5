package appointment

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/club-admin-api/internal/handler"
	"github.com/jwalitptl/club-admin-api/internal/model"
)

type Service interface {
	List(ctx context.Context, filter *model.AppointmentFilter) ([]*model.Appointment, error)
	Get(ctx context.Context, id int64) (*model.Appointment, error)
	Create(ctx context.Context, req *model.AppointmentRequest) (*model.Appointment, error)
	Update(ctx context.Context, id int64, req *model.AppointmentRequest) (*model.Appointment, error)
	Delete(ctx context.Context, id int64) error
}

type Handler struct {
	service Service
	loc     *time.Location
}

// NewHandler interprets ?date= in loc, the club's timezone.
func NewHandler(service Service, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{service: service, loc: loc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("", h.ListAppointments)
		appointments.POST("", h.CreateAppointment)
		appointments.GET("/:id", h.GetAppointment)
		appointments.PUT("/:id", h.UpdateAppointment)
		appointments.DELETE("/:id", h.DeleteAppointment)
	}
}

type listQuery struct {
	Status model.AppointmentStatus `form:"status" binding:"omitempty,enum"`
}

func (h *Handler) ListAppointments(c *gin.Context) {
	var q listQuery
	if !handler.BindQuery(c, &q) {
		return
	}
	filter := model.AppointmentFilter{Status: q.Status}

	day, ok := handler.ParseDate(c, h.loc)
	if !ok {
		return
	}
	if day != nil {
		window := model.DayWindow(*day)
		filter.Window = &window
	}
	if filter.MemberID, ok = handler.QueryInt64(c, "memberId"); !ok {
		return
	}
	if filter.StaffID, ok = handler.QueryInt64(c, "staffId"); !ok {
		return
	}

	appointments, err := h.service.List(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, appointments)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	appointment, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.AppointmentRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	appointment, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, appointment)
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.AppointmentRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	appointment, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
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
