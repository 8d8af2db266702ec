package client

import (
	"context"
	"encoding/json"
	"strconv"
)

// ListResult is one page of a listable resource.
type ListResult[T any] struct {
	Items      []T
	TotalCount int64
}

// Resource gives typed access to one listable collection. All collections
// share the page envelope, so the CRUD surface is generic over the item
// type; only the path and the facet parameter name differ.
type Resource[T any] struct {
	c           *Client
	path        string
	facetKey    string
	defaultSize int
}

// List fetches one page. The query's 1-based page number is translated to
// the 0-based index the backend expects.
func (r *Resource[T]) List(ctx context.Context, q Query) (ListResult[T], error) {
	req := r.c.http.R().SetContext(ctx).
		SetQueryParam("page", strconv.Itoa(q.Index())).
		SetQueryParam("size", strconv.Itoa(q.EffectiveSize()))
	if q.Keyword != "" {
		req.SetQueryParam("keyword", q.Keyword)
	}
	if q.Facet != "" && r.facetKey != "" {
		req.SetQueryParam(r.facetKey, q.Facet)
	}

	resp, err := req.Get(r.path)
	if err != nil {
		return ListResult[T]{}, &APIError{Kind: KindNetwork, Message: err.Error()}
	}
	if resp.IsError() {
		return ListResult[T]{}, r.c.responseError(resp)
	}
	return decodePage[T](resp.Body())
}

// Get fetches a single item by id.
func (r *Resource[T]) Get(ctx context.Context, id int64) (T, error) {
	var item T
	err := r.c.getJSON(ctx, r.path+"/"+strconv.FormatInt(id, 10), &item)
	return item, err
}

// Create posts a new item and returns the stored representation.
func (r *Resource[T]) Create(ctx context.Context, body any) (T, error) {
	var item T
	resp, err := r.c.http.R().SetContext(ctx).SetBody(body).Post(r.path)
	if err != nil {
		return item, &APIError{Kind: KindNetwork, Message: err.Error()}
	}
	if resp.IsError() {
		return item, r.c.responseError(resp)
	}
	if err := json.Unmarshal(resp.Body(), &item); err != nil {
		return item, &APIError{Kind: KindMalformed, Message: err.Error()}
	}
	return item, nil
}

// Update replaces the item with the given id.
func (r *Resource[T]) Update(ctx context.Context, id int64, body any) error {
	resp, err := r.c.http.R().SetContext(ctx).SetBody(body).
		Put(r.path + "/" + strconv.FormatInt(id, 10))
	if err != nil {
		return &APIError{Kind: KindNetwork, Message: err.Error()}
	}
	if resp.IsError() {
		return r.c.responseError(resp)
	}
	return nil
}

// Delete removes the item with the given id.
func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	resp, err := r.c.http.R().SetContext(ctx).
		Delete(r.path + "/" + strconv.FormatInt(id, 10))
	if err != nil {
		return &APIError{Kind: KindNetwork, Message: err.Error()}
	}
	if resp.IsError() {
		return r.c.responseError(resp)
	}
	return nil
}

// Controller builds a list controller bound to this resource, starting
// from the resource's default page size.
func (r *Resource[T]) Controller(opts ...ControllerOption) *ListController[T] {
	if r.defaultSize > 0 {
		opts = append([]ControllerOption{WithPageSize(r.defaultSize)}, opts...)
	}
	return NewListController(r.List, opts...)
}

// decodePage unwraps the page envelope. A body without a content array is
// reported as malformed rather than treated as an empty page.
func decodePage[T any](body []byte) (ListResult[T], error) {
	var envelope struct {
		Content       json.RawMessage `json:"content"`
		TotalElements int64           `json:"totalElements"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ListResult[T]{}, &APIError{Kind: KindMalformed, Message: err.Error()}
	}
	// An absent key and an explicit null both leave no content array.
	if envelope.Content == nil || string(envelope.Content) == "null" {
		return ListResult[T]{}, &APIError{Kind: KindMalformed, Message: "page response missing content"}
	}
	items := []T{}
	if err := json.Unmarshal(envelope.Content, &items); err != nil {
		return ListResult[T]{}, &APIError{Kind: KindMalformed, Message: err.Error()}
	}
	return ListResult[T]{Items: items, TotalCount: envelope.TotalElements}, nil
}
