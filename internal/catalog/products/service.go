package products

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/clearflow/clearflow-cms/internal/platform/cache"
	"github.com/clearflow/clearflow-cms/internal/shared"
)

// Service owns catalog product rules. When a ListCache is configured, list
// reads are served from Redis and every mutation bumps the cache version.
type Service struct {
	repo  Repository
	cache *cache.ListCache
}

func NewService(repo Repository, listCache *cache.ListCache) *Service {
	return &Service{repo: repo, cache: listCache}
}

type listPayload struct {
	Items []Product `json:"items"`
	Total int       `json:"total"`
}

func (s *Service) List(ctx context.Context, params shared.ListParams) ([]Product, int, error) {
	params = params.Normalize()
	if s.cache == nil {
		return s.repo.List(ctx, params)
	}

	key, err := s.cache.BuildKey(ctx, "catalog", "products",
		strconv.Itoa(params.Page), strconv.Itoa(params.Size), params.Keyword, params.Facet)
	if err != nil {
		// Cache trouble must not take the listing down.
		return s.repo.List(ctx, params)
	}
	var payload listPayload
	err = s.cache.FetchJSON(ctx, key, &payload, func(ctx context.Context) (any, error) {
		items, total, err := s.repo.List(ctx, params)
		if err != nil {
			return nil, err
		}
		return listPayload{Items: items, Total: total}, nil
	})
	if err != nil {
		return nil, 0, err
	}
	return payload.Items, payload.Total, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Product, error) {
	if id <= 0 {
		return Product{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, product Product) (Product, error) {
	if err := s.validate(product); err != nil {
		return Product{}, err
	}
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return Product{}, err
	}
	s.bump(ctx)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, product Product) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	if err := s.validate(product); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, id, product); err != nil {
		return err
	}
	s.bump(ctx)
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.bump(ctx)
	return nil
}

func (s *Service) bump(ctx context.Context) {
	_ = s.cache.Bump(ctx)
}

func (s *Service) validate(p Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is required", shared.ErrValidation)
	}
	if p.CategoryID <= 0 {
		return fmt.Errorf("%w: product category is required", shared.ErrValidation)
	}
	return nil
}
