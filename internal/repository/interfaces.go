package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/jwalitptl/club-admin-api/internal/model"
)

// All repository interfaces in one file. Implementations translate driver
// errors into pkg/errors values, so callers can test for not-found, conflict
// and unavailable without knowing the driver.
type (
	MemberRepository interface {
		Create(ctx context.Context, member *model.Member) error
		Get(ctx context.Context, id int64) (*model.Member, error)
		Update(ctx context.Context, member *model.Member) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context, filter *model.MemberFilter) ([]*model.Member, error)
		Exists(ctx context.Context, id int64) (bool, error)
	}

	StaffRepository interface {
		Create(ctx context.Context, staff *model.Staff) error
		Get(ctx context.Context, id int64) (*model.Staff, error)
		Update(ctx context.Context, staff *model.Staff) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context) ([]*model.Staff, error)
	}

	ServiceRepository interface {
		Create(ctx context.Context, service *model.Service) error
		Get(ctx context.Context, id int64) (*model.Service, error)
		Update(ctx context.Context, service *model.Service) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context, filter *model.ServiceFilter) ([]*model.Service, error)
	}

	ProductRepository interface {
		Create(ctx context.Context, product *model.Product) error
		Get(ctx context.Context, id int64) (*model.Product, error)
		Update(ctx context.Context, product *model.Product) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context, filter *model.ProductFilter) ([]*model.Product, error)
	}

	ContentRepository interface {
		Create(ctx context.Context, item *model.ContentItem) error
		Get(ctx context.Context, id int64) (*model.ContentItem, error)
		Update(ctx context.Context, item *model.ContentItem) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context, filter *model.ContentFilter) ([]*model.ContentItem, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id int64) (*model.Appointment, error)
		Update(ctx context.Context, appointment *model.Appointment) error
		Delete(ctx context.Context, id int64) error
		// List returns appointments with Member, Service and Staff joined,
		// ordered by start time then id.
		List(ctx context.Context, filter *model.AppointmentFilter) ([]*model.Appointment, error)
		// ListByMember returns the member's appointments newest first with
		// Service and Staff joined.
		ListByMember(ctx context.Context, memberID int64) ([]*model.Appointment, error)
	}

	OrderRepository interface {
		Create(ctx context.Context, order *model.Order) error
		Get(ctx context.Context, id int64) (*model.Order, error)
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context, filter *model.OrderFilter) ([]*model.Order, error)
		ListByMember(ctx context.Context, memberID int64) ([]*model.Order, error)
		// ChargeTabs marks every Tab order Paid in one transaction and
		// returns the orders it changed.
		ChargeTabs(ctx context.Context, chargedAt time.Time) ([]*model.Order, error)
	}

	MedicalRecordRepository interface {
		Create(ctx context.Context, record *model.MedicalRecord) error
		DeleteForMember(ctx context.Context, memberID, id int64) error
		ListByMember(ctx context.Context, memberID int64) ([]*model.MedicalRecord, error)
	}

	SubscriptionRepository interface {
		Upsert(ctx context.Context, sub *model.Subscription) error
		GetByMember(ctx context.Context, memberID int64) (*model.Subscription, error)
		DeleteByMember(ctx context.Context, memberID int64) error
	}

	MemberNoteRepository interface {
		Create(ctx context.Context, note *model.MemberNote) error
		// DeleteForMember removes the note only if it belongs to memberID.
		DeleteForMember(ctx context.Context, memberID, id int64) error
		ListByMember(ctx context.Context, memberID int64) ([]*model.MemberNote, error)
	}

	// InsightsRepository exposes the single-figure queries behind the dashboard.
	InsightsRepository interface {
		CountMembers(ctx context.Context, status *model.MemberStatus) (int64, error)
		CountStaff(ctx context.Context) (int64, error)
		CountAppointments(ctx context.Context, status model.AppointmentStatus, window model.DateRange) (int64, error)
		SumOrders(ctx context.Context, status model.OrderStatus) (decimal.Decimal, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		BeginTx(ctx context.Context) (*sqlx.Tx, error)
		// GetPendingEventsWithLock claims due events inside tx with
		// FOR UPDATE SKIP LOCKED so concurrent relays never share a row.
		GetPendingEventsWithLock(ctx context.Context, tx *sqlx.Tx, limit int) ([]*model.OutboxEvent, error)
		UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, status model.OutboxStatus, errorMessage *string, retryAt *time.Time) error
		CountPending(ctx context.Context) (int64, error)
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}

	// Transactor runs fn in one database transaction. Repository calls made
	// with the ctx handed to fn join it; fn returning an error rolls back.
	Transactor interface {
		InTx(ctx context.Context, fn func(ctx context.Context) error) error
	}
)
