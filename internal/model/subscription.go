package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Subscription struct {
	ID                     int64              `json:"id" db:"id"`
	MemberID               int64              `json:"memberId" db:"member_id"`
	Type                   SubscriptionType   `json:"type" db:"type"`
	Amount                 decimal.Decimal    `json:"amount" db:"amount"`
	Status                 SubscriptionStatus `json:"status" db:"status"`
	StartDate              time.Time          `json:"startDate" db:"start_date"`
	NextBillingDate        *time.Time         `json:"nextBillingDate" db:"next_billing_date"`
	ExternalSubscriptionID *string            `json:"externalSubscriptionId" db:"external_subscription_id"`
	MandateID              *string            `json:"mandateId" db:"mandate_id"`
	Timestamps
}

type SubscriptionRequest struct {
	Type                   SubscriptionType   `json:"type" binding:"required,enum"`
	Amount                 decimal.Decimal    `json:"amount"`
	Status                 SubscriptionStatus `json:"status" binding:"omitempty,enum"`
	StartDate              *time.Time         `json:"startDate"`
	NextBillingDate        *time.Time         `json:"nextBillingDate"`
	ExternalSubscriptionID *string            `json:"externalSubscriptionId"`
	MandateID              *string            `json:"mandateId"`
}

// Apply fills s from the request. The next billing date defaults to one
// period after the start.
func (r *SubscriptionRequest) Apply(s *Subscription, now time.Time) {
	s.Type = r.Type
	s.Amount = r.Amount
	s.Status = r.Status
	if s.Status == "" {
		s.Status = SubscriptionStatusActive
	}
	s.StartDate = now
	if r.StartDate != nil {
		s.StartDate = *r.StartDate
	}
	s.NextBillingDate = r.NextBillingDate
	if s.NextBillingDate == nil {
		next := s.StartDate.AddDate(0, 1, 0)
		if s.Type == SubscriptionTypeAnnual {
			next = s.StartDate.AddDate(1, 0, 0)
		}
		s.NextBillingDate = &next
	}
	s.ExternalSubscriptionID = r.ExternalSubscriptionID
	s.MandateID = r.MandateID
}
