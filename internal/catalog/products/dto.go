package products

import "github.com/clearflow/clearflow-cms/internal/shared"

// ProductDetail is the detail-page view of a product with the delimited
// blobs parsed into display lists.
type ProductDetail struct {
	Product
	AdvantageList       []string `json:"advantageList"`
	ApplicationAreaList []string `json:"applicationAreaList"`
}

// NewProductDetail builds the detail view for one product.
func NewProductDetail(p Product) ProductDetail {
	return ProductDetail{
		Product:             p,
		AdvantageList:       shared.SplitSections(p.Advantages),
		ApplicationAreaList: shared.SplitSections(p.ApplicationAreas),
	}
}
