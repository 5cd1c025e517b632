package recommend

import (
	"context"
	"fmt"

	"retail-concierge/internal/catalog"
	"retail-concierge/internal/domain"
	"retail-concierge/internal/profile"
)

// Result is a complete recommendation response: ranked products, proposed
// bundles and active promotion codes.
type Result struct {
	Recommendations []domain.ScoredProduct
	Bundles         []domain.Bundle
	Promotions      []string
}

// Service defines the interface for the recommendation use case
type Service interface {
	Recommend(ctx context.Context, userID, contextText string, count int) (*Result, error)
}

type service struct {
	catalog  *catalog.Catalog
	profiles profile.Store
	engine   *Engine
}

// NewService creates a new instance of Service
func NewService(cat *catalog.Catalog, profiles profile.Store, engine *Engine) Service {
	return &service{
		catalog:  cat,
		profiles: profiles,
		engine:   engine,
	}
}

// Recommend resolves the user's profile (absence is not an error) and runs
// the scoring, bundling and promotion rules over the catalog.
func (s *service) Recommend(ctx context.Context, userID, contextText string, count int) (*Result, error) {
	var prof *domain.UserProfile
	if userID != "" {
		p, err := s.profiles.Get(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load profile: %w", err)
		}
		prof = p
	}

	ranked, err := s.engine.ScoreAndRank(s.catalog.Products(), prof, contextText, count)
	if err != nil {
		return nil, err
	}

	return &Result{
		Recommendations: ranked,
		Bundles:         s.engine.Bundles(ranked, s.catalog.Products()),
		Promotions:      s.engine.Promotions(prof),
	}, nil
}
