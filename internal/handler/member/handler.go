package member

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/club-admin-api/internal/handler"
	"github.com/jwalitptl/club-admin-api/internal/model"
)

// Service is the member area as seen by the HTTP layer.
type Service interface {
	List(ctx context.Context, filter *model.MemberFilter) ([]*model.Member, error)
	Create(ctx context.Context, req *model.MemberRequest) (*model.Member, error)
	Update(ctx context.Context, id int64, req *model.MemberRequest) (*model.Member, error)
	Delete(ctx context.Context, id int64) error
	Detail(ctx context.Context, id int64) (*model.MemberDetail, error)

	AddNote(ctx context.Context, memberID int64, req *model.MemberNoteRequest) (*model.MemberNote, error)
	DeleteNote(ctx context.Context, memberID, noteID int64) error

	AddMedicalRecord(ctx context.Context, memberID int64, req *model.MedicalRecordRequest) (*model.MedicalRecord, error)
	DeleteMedicalRecord(ctx context.Context, memberID, recordID int64) error

	PutSubscription(ctx context.Context, memberID int64, req *model.SubscriptionRequest) (*model.Subscription, error)
	DeleteSubscription(ctx context.Context, memberID int64) error
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	members := r.Group("/members")
	{
		members.GET("", h.ListMembers)
		members.POST("", h.CreateMember)
		members.GET("/:id", h.GetMember)
		members.PUT("/:id", h.UpdateMember)
		members.DELETE("/:id", h.DeleteMember)

		members.POST("/:id/notes", h.AddNote)
		members.DELETE("/:id/notes/:noteId", h.DeleteNote)

		members.POST("/:id/medical-records", h.AddMedicalRecord)
		members.DELETE("/:id/medical-records/:recordId", h.DeleteMedicalRecord)

		members.PUT("/:id/subscription", h.PutSubscription)
		members.DELETE("/:id/subscription", h.DeleteSubscription)
	}
}

func (h *Handler) ListMembers(c *gin.Context) {
	var filter model.MemberFilter
	if !handler.BindQuery(c, &filter) {
		return
	}

	members, err := h.service.List(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, members)
}

func (h *Handler) CreateMember(c *gin.Context) {
	var req model.MemberRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	member, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

// GetMember returns the member with every related collection attached.
func (h *Handler) GetMember(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	detail, err := h.service.Detail(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *Handler) UpdateMember(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.MemberRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	member, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *Handler) DeleteMember(c *gin.Context) {
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

func (h *Handler) AddNote(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.MemberNoteRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	note, err := h.service.AddNote(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

func (h *Handler) DeleteNote(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	noteID, ok := handler.ParseID(c, "noteId")
	if !ok {
		return
	}

	if err := h.service.DeleteNote(c.Request.Context(), id, noteID); err != nil {
		c.Error(err)
		return
	}
	handler.Deleted(c)
}

func (h *Handler) AddMedicalRecord(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.MedicalRecordRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	record, err := h.service.AddMedicalRecord(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *Handler) DeleteMedicalRecord(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	recordID, ok := handler.ParseID(c, "recordId")
	if !ok {
		return
	}

	if err := h.service.DeleteMedicalRecord(c.Request.Context(), id, recordID); err != nil {
		c.Error(err)
		return
	}
	handler.Deleted(c)
}

func (h *Handler) PutSubscription(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.SubscriptionRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	sub, err := h.service.PutSubscription(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *Handler) DeleteSubscription(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteSubscription(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	handler.Deleted(c)
}
