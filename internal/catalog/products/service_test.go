package products

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearflow/clearflow-cms/internal/platform/cache"
	"github.com/clearflow/clearflow-cms/internal/shared"
)

type fakeRepo struct {
	listCalls int
	items     []Product
	listErr   error
}

func (r *fakeRepo) List(_ context.Context, _ shared.ListParams) ([]Product, int, error) {
	r.listCalls++
	if r.listErr != nil {
		return nil, 0, r.listErr
	}
	return r.items, len(r.items), nil
}

func (r *fakeRepo) Get(_ context.Context, id int64) (Product, error) {
	for _, p := range r.items {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, shared.ErrNotFound
}

func (r *fakeRepo) Create(_ context.Context, p Product) (Product, error) {
	p.ID = int64(len(r.items) + 1)
	r.items = append(r.items, p)
	return p, nil
}

func (r *fakeRepo) Update(_ context.Context, id int64, p Product) error {
	for i := range r.items {
		if r.items[i].ID == id {
			p.ID = id
			r.items[i] = p
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

func newCachedService(t *testing.T, repo Repository) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewService(repo, cache.NewListCache(client, "catalog:version", 5*time.Minute))
}

func TestListServesFromCache(t *testing.T) {
	repo := &fakeRepo{items: []Product{{ID: 1, Name: "RO Plant", CategoryID: 2}}}
	svc := newCachedService(t, repo)
	ctx := context.Background()
	params := shared.ListParams{Page: 0, Size: 10}

	items, total, err := svc.List(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "RO Plant", items[0].Name)
	assert.Equal(t, 1, repo.listCalls)

	// Second identical read is a cache hit.
	_, _, err = svc.List(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)

	// A different query is its own cache entry.
	_, _, err = svc.List(ctx, shared.ListParams{Page: 0, Size: 10, Keyword: "uv"})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls)
}

func TestMutationsInvalidateListCache(t *testing.T) {
	repo := &fakeRepo{items: []Product{{ID: 1, Name: "RO Plant", CategoryID: 2}}}
	svc := newCachedService(t, repo)
	ctx := context.Background()
	params := shared.ListParams{Page: 0, Size: 10}

	_, _, err := svc.List(ctx, params)
	require.NoError(t, err)
	require.Equal(t, 1, repo.listCalls)

	_, err = svc.Create(ctx, Product{Name: "UV Sterilizer", CategoryID: 3})
	require.NoError(t, err)

	items, total, err := svc.List(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls)
	assert.Equal(t, 2, total)
	assert.Len(t, items, 2)

	require.NoError(t, svc.Update(ctx, 1, Product{Name: "RO Plant XL", CategoryID: 2}))
	_, _, err = svc.List(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, 3, repo.listCalls)

	require.NoError(t, svc.Delete(ctx, 1))
	_, _, err = svc.List(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, 4, repo.listCalls)
}

func TestListWithoutCache(t *testing.T) {
	repo := &fakeRepo{items: []Product{{ID: 1, Name: "Softener", CategoryID: 1}}}
	svc := NewService(repo, nil)

	items, total, err := svc.List(context.Background(), shared.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, items, 1)

	// Mutations must not panic without a cache either.
	_, err = svc.Create(context.Background(), Product{Name: "Dosing Pump", CategoryID: 1})
	require.NoError(t, err)
}

func TestListRepoErrorPropagates(t *testing.T) {
	repo := &fakeRepo{listErr: errors.New("pg down")}
	svc := newCachedService(t, repo)

	_, _, err := svc.List(context.Background(), shared.ListParams{})
	assert.ErrorContains(t, err, "pg down")
}

func TestValidation(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, Product{Name: "  ", CategoryID: 1})
	assert.ErrorIs(t, err, shared.ErrValidation)
	assert.ErrorContains(t, err, "name")

	_, err = svc.Create(ctx, Product{Name: "RO Plant"})
	assert.ErrorIs(t, err, shared.ErrValidation)
	assert.ErrorContains(t, err, "category")

	assert.ErrorIs(t, svc.Update(ctx, 0, Product{Name: "x", CategoryID: 1}), shared.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, -5), shared.ErrNotFound)

	_, err = svc.Get(ctx, 0)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestProductDetailSplitsBlobs(t *testing.T) {
	detail := NewProductDetail(Product{
		Name:             "MBR Unit",
		Advantages:       "Low footprint\nHigh flux; Stable effluent",
		ApplicationAreas: "",
	})
	assert.Equal(t, []string{"Low footprint", "High flux", "Stable effluent"}, detail.AdvantageList)
	assert.NotNil(t, detail.ApplicationAreaList)
	assert.Empty(t, detail.ApplicationAreaList)
}
