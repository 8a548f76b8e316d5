package content

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jwalitptl/club-admin-api/internal/model"
	"github.com/jwalitptl/club-admin-api/internal/repository"
	apperrors "github.com/jwalitptl/club-admin-api/pkg/errors"
)

// Service manages the content library: videos, documents and articles
// linked from the member app.
type Service struct {
	repo repository.ContentRepository
}

func NewService(repo repository.ContentRepository) *Service {
	return &Service{repo: repo}
}

// Only web links are stored; the library never serves the files itself.
func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return apperrors.BadRequest("url must be an http or https link", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, filter *model.ContentFilter) ([]*model.ContentItem, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.ContentItem, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get content item: %w", err)
	}
	return item, nil
}

func (s *Service) Create(ctx context.Context, req *model.ContentRequest) (*model.ContentItem, error) {
	if err := validateURL(req.URL); err != nil {
		return nil, err
	}
	item := &model.ContentItem{}
	req.Apply(item)
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create content item: %w", err)
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id int64, req *model.ContentRequest) (*model.ContentItem, error) {
	if err := validateURL(req.URL); err != nil {
		return nil, err
	}
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get content item: %w", err)
	}
	req.Apply(item)
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update content item: %w", err)
	}
	return item, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete content item: %w", err)
	}
	return nil
}
