package products

import "time"

// Product represents a water-treatment product in the catalog.
// Advantages and ApplicationAreas are stored as the delimited text blobs
// the admin console edits; the DTO layer exposes them as parsed lists.
type Product struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Model            string    `json:"model"`
	CategoryID       int64     `json:"categoryId"`
	CategoryName     string    `json:"categoryName"`
	Summary          string    `json:"summary"`
	Description      string    `json:"description"`
	Advantages       string    `json:"advantages"`
	ApplicationAreas string    `json:"applicationAreas"`
	ImageURL         string    `json:"imageUrl"`
	IsPublished      bool      `json:"isPublished"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
