package news

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/clearflow/clearflow-cms/internal/platform/cache"
	"github.com/clearflow/clearflow-cms/internal/shared"
)

// Service owns news article rules. Lists are cached the same way product
// lists are, with mutations bumping the cache version.
type Service struct {
	repo  Repository
	cache *cache.ListCache
}

func NewService(repo Repository, listCache *cache.ListCache) *Service {
	return &Service{repo: repo, cache: listCache}
}

type listPayload struct {
	Items []Article `json:"items"`
	Total int       `json:"total"`
}

func (s *Service) List(ctx context.Context, params shared.ListParams) ([]Article, int, error) {
	params = params.Normalize()
	if s.cache == nil {
		return s.repo.List(ctx, params)
	}

	key, err := s.cache.BuildKey(ctx, "news", "articles",
		strconv.Itoa(params.Page), strconv.Itoa(params.Size), params.Keyword, params.Facet)
	if err != nil {
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

func (s *Service) Get(ctx context.Context, id int64) (Article, error) {
	if id <= 0 {
		return Article{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (Article, error) {
	if strings.TrimSpace(slug) == "" {
		return Article{}, shared.ErrNotFound
	}
	return s.repo.GetBySlug(ctx, slug)
}

func (s *Service) Create(ctx context.Context, article Article) (Article, error) {
	if err := s.prepare(&article); err != nil {
		return Article{}, err
	}
	created, err := s.repo.Create(ctx, article)
	if err != nil {
		return Article{}, err
	}
	_ = s.cache.Bump(ctx)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, article Article) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	if err := s.prepare(&article); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, id, article); err != nil {
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

// prepare validates the article and fills derived fields: slug from title
// when absent and the publication timestamp on first publish.
func (s *Service) prepare(a *Article) error {
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("%w: article title is required", shared.ErrValidation)
	}
	if a.Type != TypeCompany && a.Type != TypeIndustry {
		return fmt.Errorf("%w: article type must be company or industry", shared.ErrValidation)
	}
	if strings.TrimSpace(a.Slug) == "" {
		a.Slug = shared.Slugify(a.Title)
	}
	if a.IsPublished && a.PublishedAt == nil {
		now := time.Now()
		a.PublishedAt = &now
	}
	return nil
}
