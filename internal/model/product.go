package model

type Product struct {
	ProductID     string   `json:"product_id"`
	SKU           string   `json:"sku"`
	ProductName   string   `json:"product_name"`
	Brand         string   `json:"brand,omitempty"`
	Category      string   `json:"category,omitempty"`
	SubCategory   string   `json:"sub_category,omitempty"`
	Description   string   `json:"description,omitempty"`
	UnitOfMeasure string   `json:"unit_of_measure,omitempty"`
	Price         float64  `json:"price"`
	Quantity      int      `json:"quantity"`
	Images        []string `json:"images,omitempty"`
	CreatedAt     string   `json:"created_at,omitempty"`
	UpdatedAt     string   `json:"updated_at,omitempty"`
}

// SetStockPayload is the body of PATCH /api/products/:id/stock.
type SetStockPayload struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}
