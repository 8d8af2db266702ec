package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetch hands each call to the test, which releases it with a result
// or an error in whatever order it wants.
type fetchCall struct {
	query   Query
	release chan fetchReply
}

type fetchReply struct {
	result ListResult[Product]
	err    error
}

func newFakeFetch() (FetchFunc[Product], chan *fetchCall) {
	calls := make(chan *fetchCall, 8)
	fetch := func(_ context.Context, q Query) (ListResult[Product], error) {
		call := &fetchCall{query: q, release: make(chan fetchReply)}
		calls <- call
		reply := <-call.release
		return reply.result, reply.err
	}
	return fetch, calls
}

func waitCall(t *testing.T, calls chan *fetchCall) *fetchCall {
	t.Helper()
	select {
	case call := <-calls:
		return call
	case <-time.After(time.Second):
		t.Fatal("no fetch dispatched")
		return nil
	}
}

func waitUpdate(t *testing.T, updates chan ListResult[Product]) ListResult[Product] {
	t.Helper()
	select {
	case result := <-updates:
		return result
	case <-time.After(time.Second):
		t.Fatal("no update delivered")
		return ListResult[Product]{}
	}
}

func productsNamed(names ...string) []Product {
	items := make([]Product, len(names))
	for i, name := range names {
		items[i] = Product{ID: int64(i + 1), Name: name}
	}
	return items
}

func TestQueryIndexTranslation(t *testing.T) {
	assert.Equal(t, 0, Query{Page: 1}.Index())
	assert.Equal(t, 4, Query{Page: 5}.Index())
	assert.Equal(t, 0, Query{Page: 0}.Index())
	assert.Equal(t, 0, Query{Page: -3}.Index())
	assert.Equal(t, DefaultPageSize, Query{}.EffectiveSize())
	assert.Equal(t, 25, Query{PageSize: 25}.EffectiveSize())
}

func TestControllerDispatchesZeroBasedIndex(t *testing.T) {
	fetch, calls := newFakeFetch()
	ctrl := NewListController(fetch)

	ctrl.SetPage(context.Background(), 3)
	call := waitCall(t, calls)
	assert.Equal(t, 3, call.query.Page)
	assert.Equal(t, 2, call.query.Index())
	call.release <- fetchReply{result: ListResult[Product]{TotalCount: 100}}
}

func TestControllerDiscardsStaleResponse(t *testing.T) {
	fetch, calls := newFakeFetch()
	ctrl := NewListController(fetch)
	updates := make(chan ListResult[Product], 4)
	ctrl.OnUpdate(func(r ListResult[Product]) { updates <- r })

	ctrl.SetKeyword(context.Background(), "pump")
	slow := waitCall(t, calls)

	ctrl.SetKeyword(context.Background(), "filter")
	fast := waitCall(t, calls)

	// The newer request answers first and wins.
	fast.release <- fetchReply{result: ListResult[Product]{Items: productsNamed("RO Filter"), TotalCount: 1}}
	got := waitUpdate(t, updates)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "RO Filter", got.Items[0].Name)

	// The outranked response arrives late and must not be applied.
	slow.release <- fetchReply{result: ListResult[Product]{Items: productsNamed("Dosing Pump"), TotalCount: 1}}
	select {
	case late := <-updates:
		t.Fatalf("stale response applied: %+v", late)
	case <-time.After(100 * time.Millisecond):
	}

	current, ok := ctrl.Current()
	require.True(t, ok)
	assert.Equal(t, "RO Filter", current.Items[0].Name)
}

func TestControllerKeepsResultOnFetchFailure(t *testing.T) {
	fetch, calls := newFakeFetch()
	ctrl := NewListController(fetch)
	updates := make(chan ListResult[Product], 4)
	errs := make(chan error, 4)
	ctrl.OnUpdate(func(r ListResult[Product]) { updates <- r })
	ctrl.OnError(func(err error) { errs <- err })

	ctrl.Refetch(context.Background())
	first := waitCall(t, calls)
	first.release <- fetchReply{result: ListResult[Product]{Items: productsNamed("Softener"), TotalCount: 1}}
	waitUpdate(t, updates)

	ctrl.Refetch(context.Background())
	second := waitCall(t, calls)
	second.release <- fetchReply{err: &APIError{Kind: KindServer, Status: 500, Message: "boom"}}

	select {
	case err := <-errs:
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, KindServer, apiErr.Kind)
	case <-time.After(time.Second):
		t.Fatal("no error delivered")
	}

	current, ok := ctrl.Current()
	require.True(t, ok)
	require.Len(t, current.Items, 1)
	assert.Equal(t, "Softener", current.Items[0].Name)
	assert.False(t, ctrl.Loading())
}

func TestControllerClampsPageToKnownTotal(t *testing.T) {
	fetch, calls := newFakeFetch()
	ctrl := NewListController(fetch, WithPageSize(10))

	ctrl.Refetch(context.Background())
	call := waitCall(t, calls)
	call.release <- fetchReply{result: ListResult[Product]{Items: productsNamed("a"), TotalCount: 25}}

	require.Eventually(t, func() bool {
		_, ok := ctrl.Current()
		return ok
	}, time.Second, 10*time.Millisecond)

	// 25 items at 10 per page means page 3 is the last valid page.
	ctrl.SetPage(context.Background(), 99)
	call = waitCall(t, calls)
	assert.Equal(t, 3, call.query.Page)
	call.release <- fetchReply{result: ListResult[Product]{TotalCount: 25}}

	ctrl.SetPage(context.Background(), -1)
	call = waitCall(t, calls)
	assert.Equal(t, 1, call.query.Page)
	call.release <- fetchReply{result: ListResult[Product]{TotalCount: 25}}
}

func TestControllerResetsPageOnFilterChange(t *testing.T) {
	fetch, calls := newFakeFetch()
	ctrl := NewListController(fetch)

	ctrl.SetPage(context.Background(), 4)
	waitCall(t, calls).release <- fetchReply{result: ListResult[Product]{TotalCount: 1000}}

	ctrl.SetKeyword(context.Background(), "membrane")
	call := waitCall(t, calls)
	assert.Equal(t, 1, call.query.Page)
	assert.Equal(t, "membrane", call.query.Keyword)
	call.release <- fetchReply{result: ListResult[Product]{TotalCount: 1000}}

	ctrl.SetPage(context.Background(), 4)
	waitCall(t, calls).release <- fetchReply{result: ListResult[Product]{TotalCount: 1000}}

	ctrl.SetFacet(context.Background(), "3")
	call = waitCall(t, calls)
	assert.Equal(t, 1, call.query.Page)
	assert.Equal(t, "3", call.query.Facet)
	call.release <- fetchReply{result: ListResult[Product]{TotalCount: 1000}}

	ctrl.SetPage(context.Background(), 4)
	waitCall(t, calls).release <- fetchReply{result: ListResult[Product]{TotalCount: 1000}}

	ctrl.SetPageSize(context.Background(), 50)
	call = waitCall(t, calls)
	assert.Equal(t, 1, call.query.Page)
	assert.Equal(t, 50, call.query.PageSize)
	call.release <- fetchReply{result: ListResult[Product]{TotalCount: 1000}}
}

func TestControllerRefetchKeepsQuery(t *testing.T) {
	fetch, calls := newFakeFetch()
	ctrl := NewListController(fetch, WithKeyword("valve"), WithFacet("2"), WithPageSize(20))

	ctrl.Refetch(context.Background())
	call := waitCall(t, calls)
	assert.Equal(t, Query{Page: 1, PageSize: 20, Keyword: "valve", Facet: "2"}, call.query)
	call.release <- fetchReply{result: ListResult[Product]{}}
}
