package dto

type CreateProductInput struct {
	SKU         *string `json:"sku"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int64   `json:"quantity"`
}

// UpdateProductInput replaces every mutable field; there is no partial patch.
type UpdateProductInput struct {
	SKU         *string `json:"sku"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int64   `json:"quantity"`
}

type AdjustmentInput struct {
	Type string  `json:"type"` // "in" or "out"
	Qty  int64   `json:"qty"`
	Note *string `json:"note"`
}
