package catalog

import (
	"context"
	"fmt"

	"github.com/jwalitptl/club-admin-api/internal/model"
	"github.com/jwalitptl/club-admin-api/internal/repository"
	apperrors "github.com/jwalitptl/club-admin-api/pkg/errors"
)

// Service manages the bookable services offered by the club.
type Service struct {
	repo repository.ServiceRepository
}

func NewService(repo repository.ServiceRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filter *model.ServiceFilter) ([]*model.Service, error) {
	services, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Service, error) {
	svc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return svc, nil
}

func (s *Service) Create(ctx context.Context, req *model.ServiceRequest) (*model.Service, error) {
	if req.Price.IsNegative() {
		return nil, apperrors.BadRequest("price cannot be negative", nil)
	}
	svc := &model.Service{}
	req.Apply(svc)
	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return svc, nil
}

func (s *Service) Update(ctx context.Context, id int64, req *model.ServiceRequest) (*model.Service, error) {
	if req.Price.IsNegative() {
		return nil, apperrors.BadRequest("price cannot be negative", nil)
	}
	svc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	req.Apply(svc)
	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	return svc, nil
}

// Delete is refused with a conflict while appointments reference the service.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	return nil
}
