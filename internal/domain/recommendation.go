package domain

// ScoredProduct pairs a catalog product with its score for one request.
// Instances only live for the duration of a single ranking call.
type ScoredProduct struct {
	Product Product  `json:"product"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons,omitempty"`
}

// Bundle is a discounted grouping of complementary products suggested
// together. Bundles are generated per request and never persisted.
type Bundle struct {
	Name       string   `json:"bundle_name"`
	ProductIDs []string `json:"products"`
	Discount   string   `json:"discount"`
	TotalPrice Money    `json:"total_price"`
}
