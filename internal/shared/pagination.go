package shared

// DefaultPageSize applies when a list request does not specify one.
const DefaultPageSize = 10

// MaxPageSize caps the page size a client may request.
const MaxPageSize = 100

// ListParams carries the normalized query parameters for paginated listings.
// Page is 0-based, matching the wire format consumed by the front ends.
type ListParams struct {
	Page    int
	Size    int
	Keyword string
	Facet   string
}

// Normalize clamps page and size into their valid ranges. An "all" facet is
// treated the same as an absent one.
func (p ListParams) Normalize() ListParams {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	if p.Facet == "all" {
		p.Facet = ""
	}
	return p
}

// Offset returns the row offset for the current page.
func (p ListParams) Offset() int {
	return p.Page * p.Size
}
