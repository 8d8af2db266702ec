package httpx

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearflow/clearflow-cms/internal/shared"
)

func TestNewPage(t *testing.T) {
	params := shared.ListParams{Page: 2, Size: 10}

	page := NewPage([]string{"a", "b"}, 25, params)
	assert.Equal(t, []string{"a", "b"}, page.Content)
	assert.Equal(t, 25, page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 10, page.Size)
	assert.Equal(t, 2, page.Number)

	empty := NewPage[string](nil, 0, params)
	assert.NotNil(t, empty.Content)
	assert.Equal(t, 0, empty.TotalPages)

	raw, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"content":[]`)
}

func TestParseListParams(t *testing.T) {
	r := httptest.NewRequest("GET", "/products?page=2&size=20&keyword=ro&category=7", nil)
	params := ParseListParams(r, "category")
	assert.Equal(t, shared.ListParams{Page: 2, Size: 20, Keyword: "ro", Facet: "7"}, params)

	r = httptest.NewRequest("GET", "/products", nil)
	params = ParseListParams(r, "category")
	assert.Equal(t, shared.ListParams{Size: shared.DefaultPageSize}, params)

	// Garbage numbers fall back to defaults instead of erroring.
	r = httptest.NewRequest("GET", "/products?page=x&size=-4", nil)
	params = ParseListParams(r, "")
	assert.Equal(t, 0, params.Page)
	assert.Equal(t, shared.DefaultPageSize, params.Size)

	// A facet key is only read when the resource declares one.
	r = httptest.NewRequest("GET", "/categories?category=7", nil)
	params = ParseListParams(r, "")
	assert.Empty(t, params.Facet)

	r = httptest.NewRequest("GET", "/news?type=all", nil)
	params = ParseListParams(r, "type")
	assert.Empty(t, params.Facet)
}
