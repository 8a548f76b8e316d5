package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Member struct {
	ID                  int64           `json:"id" db:"id"`
	Name                string          `json:"name" db:"name"`
	Email               string          `json:"email" db:"email"`
	Phone               string          `json:"phone" db:"phone"`
	Status              MemberStatus    `json:"status" db:"status"`
	Tier                MemberTier      `json:"tier" db:"tier"`
	JoinDate            time.Time       `json:"joinDate" db:"join_date"`
	SubscriptionType    string          `json:"subscriptionType" db:"subscription_type"`
	MonthlyRate         decimal.Decimal `json:"monthlyRate" db:"monthly_rate"`
	EmergencyContact    string          `json:"emergencyContact" db:"emergency_contact"`
	StripeCustomerID    *string         `json:"stripe_customer_id" db:"stripe_customer_id"`
	GoCardlessMandateID *string         `json:"gocardless_mandate_id" db:"gocardless_mandate_id"`
	Notes               string          `json:"notes" db:"notes"`
	Timestamps
}

// MemberDetail is the composite view of one member and everything it owns.
type MemberDetail struct {
	Member
	Appointments   []*Appointment   `json:"Appointments"`
	Orders         []*Order         `json:"Orders"`
	MedicalRecords []*MedicalRecord `json:"MedicalRecords"`
	MemberNotes    []*MemberNote    `json:"MemberNotes"`
	Subscription   *Subscription    `json:"Subscription"`
}

type MemberRequest struct {
	Name                string           `json:"name" binding:"required,max=200"`
	Email               string           `json:"email" binding:"required,email"`
	Phone               string           `json:"phone" binding:"max=50"`
	Status              MemberStatus     `json:"status" binding:"omitempty,enum"`
	Tier                MemberTier       `json:"tier" binding:"omitempty,enum"`
	JoinDate            *time.Time       `json:"joinDate"`
	SubscriptionType    string           `json:"subscriptionType" binding:"max=50"`
	MonthlyRate         *decimal.Decimal `json:"monthlyRate"`
	EmergencyContact    string           `json:"emergencyContact" binding:"max=200"`
	StripeCustomerID    *string          `json:"stripe_customer_id"`
	GoCardlessMandateID *string          `json:"gocardless_mandate_id"`
	Notes               string           `json:"notes"`
}

// Apply copies the request onto m, filling defaults for omitted fields.
func (r *MemberRequest) Apply(m *Member, now time.Time) {
	m.Name = r.Name
	m.Email = r.Email
	m.Phone = r.Phone
	m.Status = r.Status
	if m.Status == "" {
		m.Status = MemberStatusActive
	}
	m.Tier = r.Tier
	if m.Tier == "" {
		m.Tier = MemberTierStandard
	}
	switch {
	case r.JoinDate != nil:
		m.JoinDate = *r.JoinDate
	case m.JoinDate.IsZero():
		m.JoinDate = now
	}
	m.SubscriptionType = r.SubscriptionType
	if r.MonthlyRate != nil {
		m.MonthlyRate = *r.MonthlyRate
	}
	m.EmergencyContact = r.EmergencyContact
	m.StripeCustomerID = r.StripeCustomerID
	m.GoCardlessMandateID = r.GoCardlessMandateID
	m.Notes = r.Notes
}

type MemberFilter struct {
	Status MemberStatus `form:"status" binding:"omitempty,enum"`
	Tier   MemberTier   `form:"tier" binding:"omitempty,enum"`
	Query  string       `form:"q"`
}
