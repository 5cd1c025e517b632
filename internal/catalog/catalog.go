package catalog

import "retail-concierge/internal/domain"

// Catalog is the immutable, ordered set of products available for
// recommendation. It is built once at startup and only read afterwards, so
// it is safe to share across request handlers.
type Catalog struct {
	products []domain.Product
	byID     map[string]int
}

// New builds a catalog preserving the insertion order of products. Insertion
// order is significant: it is the deterministic tie-breaker for ranking.
func New(products []domain.Product) *Catalog {
	byID := make(map[string]int, len(products))
	for i, p := range products {
		byID[p.ID] = i
	}
	return &Catalog{products: products, byID: byID}
}

// Products returns the ordered product list. Callers must treat the slice
// as read-only.
func (c *Catalog) Products() []domain.Product {
	return c.products
}

// Get looks up a product by identifier.
func (c *Catalog) Get(id string) (domain.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.products)
}
