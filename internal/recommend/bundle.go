package recommend

import (
	"fmt"
	"sort"
	"strings"

	"retail-concierge/internal/domain"
)

// Bundles proposes complementary product groupings anchored on the top
// ranked product. A bundle always contains the anchor plus at least one
// complement; when no product shares a tag with the anchor across category
// lines, no bundle is produced.
func (e *Engine) Bundles(ranked []domain.ScoredProduct, catalog []domain.Product) []domain.Bundle {
	if len(ranked) == 0 {
		return nil
	}
	anchor := ranked[0].Product

	type candidate struct {
		product domain.Product
		overlap int
	}

	var candidates []candidate
	for _, product := range catalog {
		if product.ID == anchor.ID || product.Category == anchor.Category {
			continue
		}
		overlap := tagOverlap(anchor, product)
		if overlap > 0 {
			candidates = append(candidates, candidate{product: product, overlap: overlap})
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	// Highest overlap first; catalog order breaks ties.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].overlap > candidates[j].overlap
	})
	if len(candidates) > e.cfg.BundleMaxComplements {
		candidates = candidates[:e.cfg.BundleMaxComplements]
	}

	ids := []string{anchor.ID}
	total := anchor.Price.Amount
	for _, c := range candidates {
		ids = append(ids, c.product.ID)
		total += c.product.Price.Amount
	}
	total = total * (100 - e.cfg.BundleDiscountPercent) / 100

	return []domain.Bundle{{
		Name:       fmt.Sprintf("Complete %s Look", titleTag(sharedTag(anchor, candidates[0].product))),
		ProductIDs: ids,
		Discount:   fmt.Sprintf("%g%% OFF", e.cfg.BundleDiscountPercent),
		TotalPrice: domain.Money{Amount: total, Currency: anchor.Price.Currency},
	}}
}

// Tag comparisons fold case, matching how scoring treats tags.
func tagOverlap(a, b domain.Product) int {
	overlap := 0
	for _, tag := range a.Tags {
		if hasTagFold(b, tag) {
			overlap++
		}
	}
	return overlap
}

func hasTagFold(p domain.Product, tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// sharedTag returns the first tag of the anchor, in its own tag order,
// that the complement also carries. Tag order is fixed per product, which
// keeps the bundle name deterministic.
func sharedTag(anchor, complement domain.Product) string {
	for _, tag := range anchor.Tags {
		if hasTagFold(complement, tag) {
			return tag
		}
	}
	return anchor.Category
}

func titleTag(tag string) string {
	if tag == "" {
		return tag
	}
	return strings.ToUpper(tag[:1]) + tag[1:]
}
