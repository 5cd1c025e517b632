package domain

// Money represents a price amount in a specific currency
type Money struct {
	Amount   float64 `json:"amount" db:"amount"`
	Currency string  `json:"currency" db:"currency"`
}

// Product represents an item in the catalog. Catalog products are reference
// data loaded at startup and never mutated while serving, so values can be
// shared freely across requests.
type Product struct {
	ID       string   `json:"product_id" db:"id"`
	Name     string   `json:"name" db:"name"`
	Category string   `json:"category" db:"category"`
	Price    Money    `json:"price"`
	Tags     []string `json:"tags" db:"tags"`
	ImageURL string   `json:"image_url" db:"image_url"`
}
