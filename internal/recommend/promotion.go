package recommend

import "retail-concierge/internal/domain"

// Promotions evaluates the promotion rule table in fixed order. Rules are
// independent, not mutually exclusive, and involve no randomness: the same
// profile and month always yield the same codes in the same order.
func (e *Engine) Promotions(profile *domain.UserProfile) []string {
	var codes []string

	if profile.IsNew() {
		codes = append(codes, e.cfg.NewUserCode)
	}
	if e.cfg.SaleMonths[e.now().Month()] {
		codes = append(codes, e.cfg.SeasonalSaleCode)
	}

	return codes
}
