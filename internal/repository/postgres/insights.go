package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/jwalitptl/club-admin-api/internal/model"
	"github.com/jwalitptl/club-admin-api/internal/repository"
)

type insightsRepository struct {
	BaseRepository
}

func NewInsightsRepository(db *sqlx.DB) repository.InsightsRepository {
	return &insightsRepository{NewBaseRepository(db)}
}

// CountMembers counts every member, or only those in status when given.
func (r *insightsRepository) CountMembers(ctx context.Context, status *model.MemberStatus) (int64, error) {
	var n int64
	var err error
	if status == nil {
		err = r.conn(ctx).GetContext(ctx, &n, `SELECT COUNT(*) FROM members`)
	} else {
		err = r.conn(ctx).GetContext(ctx, &n, `SELECT COUNT(*) FROM members WHERE status = $1`, *status)
	}
	if err != nil {
		return 0, mapError(err, "member")
	}
	return n, nil
}

func (r *insightsRepository) CountStaff(ctx context.Context) (int64, error) {
	var n int64
	if err := r.conn(ctx).GetContext(ctx, &n, `SELECT COUNT(*) FROM staff`); err != nil {
		return 0, mapError(err, "staff")
	}
	return n, nil
}

func (r *insightsRepository) CountAppointments(ctx context.Context, status model.AppointmentStatus, window model.DateRange) (int64, error) {
	query := `
		SELECT COUNT(*) FROM appointments
		WHERE status = $1 AND start_time >= $2 AND start_time < $3
	`
	var n int64
	if err := r.conn(ctx).GetContext(ctx, &n, query, status, window.From, window.To); err != nil {
		return 0, mapError(err, "appointment")
	}
	return n, nil
}

// SumOrders never returns NULL; an empty set sums to zero.
func (r *insightsRepository) SumOrders(ctx context.Context, status model.OrderStatus) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.conn(ctx).GetContext(ctx, &sum, `SELECT COALESCE(SUM(total), 0) FROM orders WHERE status = $1`, status)
	if err != nil {
		return decimal.Zero, mapError(err, "order")
	}
	return sum, nil
}
