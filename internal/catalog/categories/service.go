package categories

import (
	"context"
	"fmt"
	"strings"

	"github.com/clearflow/clearflow-cms/internal/platform/cache"
	"github.com/clearflow/clearflow-cms/internal/shared"
)

// Service owns product category rules. It shares the catalog ListCache
// with products: cached product pages embed the joined category name, so
// a category mutation has to invalidate them too.
type Service struct {
	repo  Repository
	cache *cache.ListCache
}

func NewService(repo Repository, catalogCache *cache.ListCache) *Service {
	return &Service{repo: repo, cache: catalogCache}
}

func (s *Service) List(ctx context.Context, params shared.ListParams) ([]Category, int, error) {
	return s.repo.List(ctx, params.Normalize())
}

func (s *Service) Get(ctx context.Context, id int64) (Category, error) {
	if id <= 0 {
		return Category{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, category Category) (Category, error) {
	if err := s.validate(category); err != nil {
		return Category{}, err
	}
	created, err := s.repo.Create(ctx, category)
	if err != nil {
		return Category{}, err
	}
	_ = s.cache.Bump(ctx)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, category Category) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	if err := s.validate(category); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, id, category); err != nil {
		return err
	}
	_ = s.cache.Bump(ctx)
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Bump(ctx)
	return nil
}

func (s *Service) validate(c Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: category name is required", shared.ErrValidation)
	}
	return nil
}
