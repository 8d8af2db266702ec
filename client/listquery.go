package client

import (
	"context"
	"sync"
)

// DefaultPageSize is applied when a query carries no explicit size.
const DefaultPageSize = 10

// Query is the full state of one list view: which page, how many per
// page, the search keyword and the active facet value. Pages are 1-based
// for display; Index translates to the 0-based index the wire uses.
type Query struct {
	Page     int
	PageSize int
	Keyword  string
	Facet    string
}

// Index returns the 0-based page index.
func (q Query) Index() int {
	if q.Page < 1 {
		return 0
	}
	return q.Page - 1
}

// EffectiveSize returns the page size, falling back to the default.
func (q Query) EffectiveSize() int {
	if q.PageSize < 1 {
		return DefaultPageSize
	}
	return q.PageSize
}

// FetchFunc loads one page for a query.
type FetchFunc[T any] func(ctx context.Context, q Query) (ListResult[T], error)

// ControllerOption configures a ListController.
type ControllerOption func(*controllerConfig)

type controllerConfig struct {
	pageSize int
	facet    string
	keyword  string
}

// WithPageSize sets the initial page size.
func WithPageSize(n int) ControllerOption {
	return func(c *controllerConfig) { c.pageSize = n }
}

// WithFacet sets the initial facet value.
func WithFacet(v string) ControllerOption {
	return func(c *controllerConfig) { c.facet = v }
}

// WithKeyword sets the initial keyword.
func WithKeyword(kw string) ControllerOption {
	return func(c *controllerConfig) { c.keyword = kw }
}

// ListController owns the query state for one paginated list and keeps a
// single result current. Every mutation triggers a fetch; responses that
// arrive after a newer fetch was started are discarded, and a failed
// fetch leaves the previous result in place.
type ListController[T any] struct {
	fetch FetchFunc[T]

	mu      sync.Mutex
	query   Query
	result  ListResult[T]
	loaded  bool
	loading bool
	seq     uint64
	cancel  context.CancelFunc

	onUpdate func(ListResult[T])
	onError  func(error)
}

// NewListController builds a controller around a fetch function. The
// initial page is 1 and nothing is fetched until the first mutation or
// Refetch call.
func NewListController[T any](fetch FetchFunc[T], opts ...ControllerOption) *ListController[T] {
	cfg := controllerConfig{pageSize: DefaultPageSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &ListController[T]{
		fetch: fetch,
		query: Query{Page: 1, PageSize: cfg.pageSize, Keyword: cfg.keyword, Facet: cfg.facet},
	}
}

// OnUpdate registers the callback fired with each fresh result.
func (c *ListController[T]) OnUpdate(fn func(ListResult[T])) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUpdate = fn
}

// OnError registers the callback fired when a fetch fails.
func (c *ListController[T]) OnError(fn func(error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onError = fn
}

// Query returns the current query state.
func (c *ListController[T]) Query() Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Current returns the last successful result. ok is false until the
// first fetch has completed.
func (c *ListController[T]) Current() (ListResult[T], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result, c.loaded
}

// Loading reports whether a fetch is in flight.
func (c *ListController[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// SetPage moves to the given 1-based page and fetches it. The page is
// clamped to at least 1, and to the last page when the total is known.
func (c *ListController[T]) SetPage(ctx context.Context, page int) {
	c.mu.Lock()
	if page < 1 {
		page = 1
	}
	if c.loaded {
		if last := c.lastPageLocked(); page > last {
			page = last
		}
	}
	c.query.Page = page
	c.dispatchLocked(ctx)
}

// SetPageSize changes the page size and returns to the first page.
func (c *ListController[T]) SetPageSize(ctx context.Context, size int) {
	c.mu.Lock()
	if size < 1 {
		size = DefaultPageSize
	}
	c.query.PageSize = size
	c.query.Page = 1
	c.dispatchLocked(ctx)
}

// SetKeyword changes the search keyword and returns to the first page.
func (c *ListController[T]) SetKeyword(ctx context.Context, keyword string) {
	c.mu.Lock()
	c.query.Keyword = keyword
	c.query.Page = 1
	c.dispatchLocked(ctx)
}

// SetFacet changes the active facet value and returns to the first page.
func (c *ListController[T]) SetFacet(ctx context.Context, facet string) {
	c.mu.Lock()
	c.query.Facet = facet
	c.query.Page = 1
	c.dispatchLocked(ctx)
}

// Refetch reloads the current query without changing it.
func (c *ListController[T]) Refetch(ctx context.Context) {
	c.mu.Lock()
	c.dispatchLocked(ctx)
}

// lastPageLocked computes the highest valid page for the known total.
func (c *ListController[T]) lastPageLocked() int {
	size := c.query.EffectiveSize()
	last := int((c.result.TotalCount + int64(size) - 1) / int64(size))
	if last < 1 {
		last = 1
	}
	return last
}

// dispatchLocked starts an asynchronous fetch for the current query. The
// caller must hold the mutex; dispatchLocked releases it. Any in-flight
// fetch is cancelled and its eventual response outranked by sequence
// number, so results are applied in issue order only.
func (c *ListController[T]) dispatchLocked(ctx context.Context) {
	c.seq++
	seq := c.seq
	if c.cancel != nil {
		c.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.loading = true
	query := c.query
	c.mu.Unlock()

	go func() {
		result, err := c.fetch(fetchCtx, query)
		cancel()

		c.mu.Lock()
		if seq != c.seq {
			c.mu.Unlock()
			return
		}
		c.loading = false
		c.cancel = nil
		if err != nil {
			onError := c.onError
			c.mu.Unlock()
			if onError != nil {
				onError(err)
			}
			return
		}
		c.result = result
		c.loaded = true
		onUpdate := c.onUpdate
		c.mu.Unlock()
		if onUpdate != nil {
			onUpdate(result)
		}
	}()
}
