package catalog

import "retail-concierge/internal/domain"

// Seed returns the built-in catalog used when no database is configured.
func Seed() *Catalog {
	return New([]domain.Product{
		{
			ID:       "SKU_JCK_01",
			Name:     "Denim Trucker Jacket",
			Category: "jackets",
			Price:    domain.Money{Amount: 4999, Currency: "INR"},
			Tags:     []string{"casual", "denim", "blue", "classic"},
			ImageURL: "https://example.com/img/jacket1.jpg",
		},
		{
			ID:       "SKU_JCK_02",
			Name:     "Classic Biker Jacket",
			Category: "jackets",
			Price:    domain.Money{Amount: 8999, Currency: "INR"},
			Tags:     []string{"edgy", "leather", "black", "statement"},
			ImageURL: "https://example.com/img/jacket2.jpg",
		},
		{
			ID:       "SKU_JCK_03",
			Name:     "Lightweight Puffer Jacket",
			Category: "jackets",
			Price:    domain.Money{Amount: 5499, Currency: "INR"},
			Tags:     []string{"sporty", "casual", "comfortable", "blue"},
			ImageURL: "https://example.com/img/jacket3.jpg",
		},
		{
			ID:       "SKU_TSH_01",
			Name:     "Classic White T-Shirt",
			Category: "t-shirts",
			Price:    domain.Money{Amount: 1299, Currency: "INR"},
			Tags:     []string{"basic", "casual", "white", "everyday"},
			ImageURL: "https://example.com/img/tshirt1.jpg",
		},
		{
			ID:       "SKU_CHN_01",
			Name:     "Slim Fit Chinos",
			Category: "pants",
			Price:    domain.Money{Amount: 3499, Currency: "INR"},
			Tags:     []string{"formal-casual", "versatile", "beige"},
			ImageURL: "https://example.com/img/chinos1.jpg",
		},
		{
			ID:       "SKU_SWT_01",
			Name:     "Comfort Hoodie",
			Category: "hoodies",
			Price:    domain.Money{Amount: 2999, Currency: "INR"},
			Tags:     []string{"casual", "comfortable", "grey", "relaxed"},
			ImageURL: "https://example.com/img/hoodie1.jpg",
		},
	})
}
