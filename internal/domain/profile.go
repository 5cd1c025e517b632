package domain

// UserProfile holds stored preference and history data for a returning user.
// It is read-only input to the recommendation engine; profile updates happen
// outside this service.
type UserProfile struct {
	UserID          string   `json:"user_id" db:"user_id"`
	Preferences     []string `json:"preferences" db:"preferences"`
	Size            string   `json:"size" db:"size"`
	PurchaseHistory []string `json:"purchase_history" db:"purchase_history"`
	BrowsingHistory []string `json:"browsing_history" db:"browsing_history"`
}

// IsNew reports whether the profile belongs to a user without any purchases.
func (p *UserProfile) IsNew() bool {
	return p == nil || len(p.PurchaseHistory) == 0
}
