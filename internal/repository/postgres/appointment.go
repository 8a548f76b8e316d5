package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/jwalitptl/club-admin-api/internal/model"
	"github.com/jwalitptl/club-admin-api/internal/repository"
)

const appointmentJoinQuery = `
	SELECT a.id, a.member_id, a.service_id, a.staff_id, a.start_time, a.end_time,
		a.status, a.notes, a.created_at, a.updated_at,
		m.name AS member_name, m.email AS member_email, m.phone AS member_phone,
		m.status AS member_status, m.tier AS member_tier,
		s.name AS service_name, s.type AS service_type, s.duration AS service_duration,
		s.price AS service_price, s.resource_required AS service_resource_required,
		s.capacity AS service_capacity,
		st.name AS staff_name, st.email AS staff_email, st.role AS staff_role,
		st.speciality AS staff_speciality
	FROM appointments a
	JOIN members m ON m.id = a.member_id
	JOIN services s ON s.id = a.service_id
	LEFT JOIN staff st ON st.id = a.staff_id`

// appointmentRow is one appointment with its joined member, service and
// optional staff columns.
type appointmentRow struct {
	model.Appointment

	MemberName   string             `db:"member_name"`
	MemberEmail  string             `db:"member_email"`
	MemberPhone  string             `db:"member_phone"`
	MemberStatus model.MemberStatus `db:"member_status"`
	MemberTier   model.MemberTier   `db:"member_tier"`

	ServiceName             string            `db:"service_name"`
	ServiceType             model.ServiceType `db:"service_type"`
	ServiceDuration         int               `db:"service_duration"`
	ServicePrice            decimal.Decimal   `db:"service_price"`
	ServiceResourceRequired *string           `db:"service_resource_required"`
	ServiceCapacity         int               `db:"service_capacity"`

	StaffName       *string `db:"staff_name"`
	StaffEmail      *string `db:"staff_email"`
	StaffRole       *string `db:"staff_role"`
	StaffSpeciality *string `db:"staff_speciality"`
}

func (row *appointmentRow) toModel() *model.Appointment {
	a := row.Appointment
	a.Member = &model.Member{
		ID:     a.MemberID,
		Name:   row.MemberName,
		Email:  row.MemberEmail,
		Phone:  row.MemberPhone,
		Status: row.MemberStatus,
		Tier:   row.MemberTier,
	}
	a.Service = &model.Service{
		ID:               a.ServiceID,
		Name:             row.ServiceName,
		Type:             row.ServiceType,
		Duration:         row.ServiceDuration,
		Price:            row.ServicePrice,
		ResourceRequired: row.ServiceResourceRequired,
		Capacity:         row.ServiceCapacity,
	}
	if a.StaffID != nil && row.StaffName != nil {
		a.Staff = &model.Staff{
			ID:         *a.StaffID,
			Name:       *row.StaffName,
			Email:      deref(row.StaffEmail),
			Role:       model.StaffRole(deref(row.StaffRole)),
			Speciality: deref(row.StaffSpeciality),
		}
	}
	return &a
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type appointmentRepository struct {
	BaseRepository
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{NewBaseRepository(db)}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			member_id, service_id, staff_id, start_time, end_time,
			status, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = appointment.CreatedAt

	err := r.conn(ctx).QueryRowxContext(ctx, query,
		appointment.MemberID,
		appointment.ServiceID,
		appointment.StaffID,
		appointment.StartTime,
		appointment.EndTime,
		appointment.Status,
		appointment.Notes,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	).Scan(&appointment.ID)
	return mapError(err, "appointment")
}

func (r *appointmentRepository) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	var row appointmentRow
	if err := r.conn(ctx).GetContext(ctx, &row, appointmentJoinQuery+` WHERE a.id = $1`, id); err != nil {
		return nil, mapError(err, "appointment")
	}
	return row.toModel(), nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	query := `
		UPDATE appointments
		SET member_id = $1, service_id = $2, staff_id = $3, start_time = $4,
			end_time = $5, status = $6, notes = $7, updated_at = $8
		WHERE id = $9
	`
	appointment.UpdatedAt = time.Now()

	res, err := r.conn(ctx).ExecContext(ctx, query,
		appointment.MemberID,
		appointment.ServiceID,
		appointment.StaffID,
		appointment.StartTime,
		appointment.EndTime,
		appointment.Status,
		appointment.Notes,
		appointment.UpdatedAt,
		appointment.ID,
	)
	if err != nil {
		return mapError(err, "appointment")
	}
	return expectOne(res, "appointment")
}

func (r *appointmentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.conn(ctx).ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "appointment")
	}
	return expectOne(res, "appointment")
}

func (r *appointmentRepository) List(ctx context.Context, filter *model.AppointmentFilter) ([]*model.Appointment, error) {
	var (
		p     placeholders
		where []string
	)
	if filter != nil {
		if filter.Window != nil {
			where = append(where, "a.start_time >= "+p.add(filter.Window.From))
			where = append(where, "a.start_time < "+p.add(filter.Window.To))
		}
		if filter.Status != "" {
			where = append(where, "a.status = "+p.add(filter.Status))
		}
		if filter.MemberID != 0 {
			where = append(where, "a.member_id = "+p.add(filter.MemberID))
		}
		if filter.StaffID != 0 {
			where = append(where, "a.staff_id = "+p.add(filter.StaffID))
		}
	}

	query := appointmentJoinQuery
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY a.start_time ASC, a.id ASC"

	return r.selectRows(ctx, query, p.args...)
}

func (r *appointmentRepository) ListByMember(ctx context.Context, memberID int64) ([]*model.Appointment, error) {
	query := appointmentJoinQuery + ` WHERE a.member_id = $1 ORDER BY a.start_time DESC, a.id DESC`

	appointments, err := r.selectRows(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	// The member is the composite's root; repeating it per row adds nothing.
	for _, a := range appointments {
		a.Member = nil
	}
	return appointments, nil
}

func (r *appointmentRepository) selectRows(ctx context.Context, query string, args ...interface{}) ([]*model.Appointment, error) {
	var rows []appointmentRow
	if err := r.conn(ctx).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, mapError(err, "appointment")
	}

	appointments := make([]*model.Appointment, 0, len(rows))
	for i := range rows {
		appointments = append(appointments, rows[i].toModel())
	}
	return appointments, nil
}
