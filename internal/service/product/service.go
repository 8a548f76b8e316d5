package product

import (
	"context"
	"fmt"

	"github.com/jwalitptl/club-admin-api/internal/model"
	"github.com/jwalitptl/club-admin-api/internal/repository"
	apperrors "github.com/jwalitptl/club-admin-api/pkg/errors"
)

// Service manages the retail price list.
type Service struct {
	repo repository.ProductRepository
}

func NewService(repo repository.ProductRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filter *model.ProductFilter) ([]*model.Product, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

func (s *Service) Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	if req.Price.IsNegative() {
		return nil, apperrors.BadRequest("price cannot be negative", nil)
	}
	product := &model.Product{}
	req.Apply(product)
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *Service) Update(ctx context.Context, id int64, req *model.ProductRequest) (*model.Product, error) {
	if req.Price.IsNegative() {
		return nil, apperrors.BadRequest("price cannot be negative", nil)
	}
	product, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	req.Apply(product)
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}
