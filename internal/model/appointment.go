package model

import "time"

type Appointment struct {
	ID        int64             `json:"id" db:"id"`
	MemberID  int64             `json:"memberId" db:"member_id"`
	ServiceID int64             `json:"serviceId" db:"service_id"`
	StaffID   *int64            `json:"staffId" db:"staff_id"`
	StartTime time.Time         `json:"startTime" db:"start_time"`
	EndTime   time.Time         `json:"endTime" db:"end_time"`
	Status    AppointmentStatus `json:"status" db:"status"`
	Notes     string            `json:"notes" db:"notes"`
	Timestamps

	Member  *Member  `json:"Member,omitempty" db:"-"`
	Service *Service `json:"Service,omitempty" db:"-"`
	Staff   *Staff   `json:"Staff,omitempty" db:"-"`
}

type AppointmentRequest struct {
	MemberID  int64             `json:"memberId" binding:"required,min=1"`
	ServiceID int64             `json:"serviceId" binding:"required,min=1"`
	StaffID   *int64            `json:"staffId" binding:"omitempty,min=1"`
	StartTime time.Time         `json:"startTime" binding:"required"`
	EndTime   time.Time         `json:"endTime" binding:"required,gtfield=StartTime"`
	Status    AppointmentStatus `json:"status" binding:"omitempty,enum"`
	Notes     string            `json:"notes" binding:"max=2000"`
}

func (r *AppointmentRequest) Apply(a *Appointment) {
	a.MemberID = r.MemberID
	a.ServiceID = r.ServiceID
	a.StaffID = r.StaffID
	a.StartTime = r.StartTime
	a.EndTime = r.EndTime
	a.Status = r.Status
	if a.Status == "" {
		a.Status = AppointmentStatusBooked
	}
	a.Notes = r.Notes
}

type AppointmentFilter struct {
	Window   *DateRange
	Status   AppointmentStatus
	MemberID int64
	StaffID  int64
}
