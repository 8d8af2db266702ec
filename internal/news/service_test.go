package news

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearflow/clearflow-cms/internal/shared"
)

type fakeRepo struct {
	articles []Article
}

func (r *fakeRepo) List(_ context.Context, params shared.ListParams) ([]Article, int, error) {
	var items []Article
	for _, a := range r.articles {
		if params.Facet != "" && a.Type != params.Facet {
			continue
		}
		items = append(items, a)
	}
	return items, len(items), nil
}

func (r *fakeRepo) Get(_ context.Context, id int64) (Article, error) {
	for _, a := range r.articles {
		if a.ID == id {
			return a, nil
		}
	}
	return Article{}, shared.ErrNotFound
}

func (r *fakeRepo) GetBySlug(_ context.Context, slug string) (Article, error) {
	for _, a := range r.articles {
		if a.Slug == slug {
			return a, nil
		}
	}
	return Article{}, shared.ErrNotFound
}

func (r *fakeRepo) Create(_ context.Context, a Article) (Article, error) {
	for _, existing := range r.articles {
		if existing.Slug == a.Slug {
			return Article{}, shared.ErrDuplicate
		}
	}
	a.ID = int64(len(r.articles) + 1)
	r.articles = append(r.articles, a)
	return a, nil
}

func (r *fakeRepo) Update(_ context.Context, id int64, a Article) error {
	for i := range r.articles {
		if r.articles[i].ID == id {
			a.ID = id
			r.articles[i] = a
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	for i := range r.articles {
		if r.articles[i].ID == id {
			r.articles = append(r.articles[:i], r.articles[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

func TestCreateDerivesSlugFromTitle(t *testing.T) {
	svc := NewService(&fakeRepo{}, nil)

	created, err := svc.Create(context.Background(), Article{
		Title: "New UF Membrane Line Launched", Type: TypeCompany,
	})
	require.NoError(t, err)
	assert.Equal(t, "new-uf-membrane-line-launched", created.Slug)

	got, err := svc.GetBySlug(context.Background(), created.Slug)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestCreateKeepsExplicitSlug(t *testing.T) {
	svc := NewService(&fakeRepo{}, nil)

	created, err := svc.Create(context.Background(), Article{
		Title: "Industry Outlook 2026", Slug: "outlook-2026", Type: TypeIndustry,
	})
	require.NoError(t, err)
	assert.Equal(t, "outlook-2026", created.Slug)
}

func TestDuplicateSlugRejected(t *testing.T) {
	svc := NewService(&fakeRepo{}, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, Article{Title: "Plant Opening", Type: TypeCompany})
	require.NoError(t, err)

	_, err = svc.Create(ctx, Article{Title: "Plant Opening", Type: TypeCompany})
	assert.ErrorIs(t, err, shared.ErrDuplicate)
}

func TestPublishStampsTimestampOnce(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nil)
	ctx := context.Background()

	draft, err := svc.Create(ctx, Article{Title: "Water Reuse Basics", Type: TypeIndustry})
	require.NoError(t, err)
	assert.Nil(t, draft.PublishedAt)

	published := draft
	published.IsPublished = true
	require.NoError(t, svc.Update(ctx, draft.ID, published))

	stored, err := svc.Get(ctx, draft.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.PublishedAt)
	firstPublished := *stored.PublishedAt

	// Editing an already published article must not move the timestamp.
	stored.Summary = "updated summary"
	require.NoError(t, svc.Update(ctx, stored.ID, stored))
	again, err := svc.Get(ctx, stored.ID)
	require.NoError(t, err)
	require.NotNil(t, again.PublishedAt)
	assert.Equal(t, firstPublished, *again.PublishedAt)
}

func TestArticleValidation(t *testing.T) {
	svc := NewService(&fakeRepo{}, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, Article{Type: TypeCompany})
	assert.ErrorIs(t, err, shared.ErrValidation)
	assert.ErrorContains(t, err, "title")

	_, err = svc.Create(ctx, Article{Title: "x", Type: "press"})
	assert.ErrorIs(t, err, shared.ErrValidation)
	assert.ErrorContains(t, err, "type")

	_, err = svc.GetBySlug(ctx, "  ")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestTypeFacetFiltersList(t *testing.T) {
	repo := &fakeRepo{articles: []Article{
		{ID: 1, Title: "a", Slug: "a", Type: TypeCompany},
		{ID: 2, Title: "b", Slug: "b", Type: TypeIndustry},
		{ID: 3, Title: "c", Slug: "c", Type: TypeCompany},
	}}
	svc := NewService(repo, nil)

	items, total, err := svc.List(context.Background(), shared.ListParams{Facet: TypeCompany})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, items, 2)
}
