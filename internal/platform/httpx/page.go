package httpx

import (
	"net/http"
	"strconv"

	"github.com/clearflow/clearflow-cms/internal/shared"
)

// Page is the paginated envelope consumed by the admin console and the
// public site. Number is the 0-based page index that was requested.
type Page[T any] struct {
	Content       []T `json:"content"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Size          int `json:"size"`
	Number        int `json:"number"`
}

// NewPage assembles the envelope for one fetched page. Content is never
// null on the wire, even for an empty page.
func NewPage[T any](items []T, total int, params shared.ListParams) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if params.Size > 0 {
		totalPages = (total + params.Size - 1) / params.Size
	}
	return Page[T]{
		Content:       items,
		TotalElements: total,
		TotalPages:    totalPages,
		Size:          params.Size,
		Number:        params.Page,
	}
}

// ParseListParams reads the standard list query parameters. facetParam names
// the resource's facet query key ("category" for products, "type" for news);
// pass an empty string for resources without one.
func ParseListParams(r *http.Request, facetParam string) shared.ListParams {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("size"))
	params := shared.ListParams{
		Page:    page,
		Size:    size,
		Keyword: q.Get("keyword"),
	}
	if facetParam != "" {
		params.Facet = q.Get(facetParam)
	}
	return params.Normalize()
}
