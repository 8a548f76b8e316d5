package model

import "github.com/shopspring/decimal"

// Service is a bookable class, treatment or consultation.
type Service struct {
	ID               int64           `json:"id" db:"id"`
	Name             string          `json:"name" db:"name"`
	Type             ServiceType     `json:"type" db:"type"`
	Duration         int             `json:"duration" db:"duration"` // in minutes
	Price            decimal.Decimal `json:"price" db:"price"`
	ResourceRequired *string         `json:"resourceRequired" db:"resource_required"`
	Capacity         int             `json:"capacity" db:"capacity"`
	Description      string          `json:"description" db:"description"`
	Active           bool            `json:"active" db:"active"`
	Timestamps
}

type ServiceRequest struct {
	Name             string          `json:"name" binding:"required,max=200"`
	Type             ServiceType     `json:"type" binding:"required,enum"`
	Duration         int             `json:"duration" binding:"required,min=1"`
	Price            decimal.Decimal `json:"price"`
	ResourceRequired *string         `json:"resourceRequired"`
	Capacity         int             `json:"capacity" binding:"omitempty,min=1"`
	Description      string          `json:"description"`
	Active           *bool           `json:"active"`
}

func (r *ServiceRequest) Apply(s *Service) {
	s.Name = r.Name
	s.Type = r.Type
	s.Duration = r.Duration
	s.Price = r.Price
	s.ResourceRequired = r.ResourceRequired
	s.Capacity = r.Capacity
	if s.Capacity == 0 {
		s.Capacity = 1
	}
	s.Description = r.Description
	s.Active = r.Active == nil || *r.Active
}

type ServiceFilter struct {
	Type   ServiceType `form:"type" binding:"omitempty,enum"`
	Active *bool       `form:"active"`
}
