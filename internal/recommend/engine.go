package recommend

import (
	"errors"
	"sort"
	"strings"
	"time"

	"retail-concierge/internal/domain"
)

// Scoring weights for the ranking rule table. They are named constants so
// the rule table stays auditable instead of being buried in expressions.
const (
	ContextMatchWeight     = 5
	PreferenceTagWeight    = 3
	BrowsingCategoryWeight = 2
	SeasonalWeight         = 1
)

var (
	ErrInvalidCount = errors.New("count must be positive")
	ErrEmptyCatalog = errors.New("catalog has no products")
)

// Config carries the tunable parts of the engine. Zero values are filled in
// by DefaultConfig.
type Config struct {
	BundleDiscountPercent float64
	BundleMaxComplements  int
	NewUserCode           string
	SeasonalSaleCode      string
	SaleMonths            map[time.Month]bool
	SeasonalTags          map[time.Month][]string
}

// DefaultConfig returns the shipped rule configuration.
func DefaultConfig() Config {
	return Config{
		BundleDiscountPercent: 15,
		BundleMaxComplements:  2,
		NewUserCode:           "NEW_USER_20",
		SeasonalSaleCode:      "SEASONAL_SALE",
		SaleMonths:   defaultSaleMonths(),
		SeasonalTags: defaultSeasonalTags(),
	}
}

// Engine scores catalog products against a user profile and free-text
// shopping context. All methods are pure functions over their inputs, so a
// single Engine is safe for concurrent use without coordination.
type Engine struct {
	cfg Config
	now func() time.Time
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock overrides the time source used for seasonal scoring. Tests use
// this to pin the current month.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates a scoring engine with the given configuration.
func NewEngine(cfg Config, opts ...Option) *Engine {
	if cfg.BundleDiscountPercent == 0 {
		cfg.BundleDiscountPercent = 15
	}
	if cfg.BundleMaxComplements == 0 {
		cfg.BundleMaxComplements = 2
	}
	if cfg.NewUserCode == "" {
		cfg.NewUserCode = "NEW_USER_20"
	}
	if cfg.SeasonalSaleCode == "" {
		cfg.SeasonalSaleCode = "SEASONAL_SALE"
	}
	if cfg.SaleMonths == nil {
		cfg.SaleMonths = defaultSaleMonths()
	}
	if cfg.SeasonalTags == nil {
		cfg.SeasonalTags = defaultSeasonalTags()
	}

	e := &Engine{
		cfg: cfg,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ScoreAndRank scores every catalog product and returns the top count
// entries in descending score order. Ties keep catalog insertion order, so
// identical inputs always produce identical output. Products scoring zero
// are deprioritized, never filtered out.
func (e *Engine) ScoreAndRank(catalog []domain.Product, profile *domain.UserProfile, contextText string, count int) ([]domain.ScoredProduct, error) {
	if count <= 0 {
		return nil, ErrInvalidCount
	}
	if len(catalog) == 0 {
		return nil, ErrEmptyCatalog
	}

	terms := tokenize(contextText)
	seasonal := e.seasonalTagSet(e.now().Month())

	scored := make([]domain.ScoredProduct, 0, len(catalog))
	for _, product := range catalog {
		scored = append(scored, e.score(product, profile, terms, seasonal))
	}

	// Stable sort keeps catalog order on equal scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if count > len(scored) {
		count = len(scored)
	}
	return scored[:count], nil
}

func (e *Engine) score(product domain.Product, profile *domain.UserProfile, terms []string, seasonal map[string]bool) domain.ScoredProduct {
	sp := domain.ScoredProduct{Product: product}

	tags := make(map[string]bool, len(product.Tags))
	for _, tag := range product.Tags {
		tags[strings.ToLower(tag)] = true
	}

	// Context terms were deduplicated during tokenization, so a repeated
	// term never scores twice against the same product.
	for _, term := range terms {
		if tags[term] {
			sp.Score += ContextMatchWeight
			sp.Reasons = append(sp.Reasons, "matches context term "+term)
		}
	}

	if profile != nil {
		prefs := make(map[string]bool, len(profile.Preferences))
		for _, pref := range profile.Preferences {
			prefs[strings.ToLower(pref)] = true
		}
		for _, tag := range product.Tags {
			if prefs[strings.ToLower(tag)] {
				sp.Score += PreferenceTagWeight
				sp.Reasons = append(sp.Reasons, "matches preference "+strings.ToLower(tag))
			}
		}

		category := strings.ToLower(product.Category)
		for _, browsed := range profile.BrowsingHistory {
			if strings.ToLower(browsed) == category {
				sp.Score += BrowsingCategoryWeight
				sp.Reasons = append(sp.Reasons, "recently browsed "+category)
				break
			}
		}
	}

	for _, tag := range product.Tags {
		if seasonal[strings.ToLower(tag)] {
			sp.Score += SeasonalWeight
			sp.Reasons = append(sp.Reasons, "in season")
			break
		}
	}

	return sp
}

func (e *Engine) seasonalTagSet(month time.Month) map[string]bool {
	tags := e.cfg.SeasonalTags[month]
	set := make(map[string]bool, len(tags))
	for _, tag := range tags {
		set[strings.ToLower(tag)] = true
	}
	return set
}

// tokenize lowercases the context text, splits it on non-alphanumeric
// boundaries and removes duplicate terms while preserving first-seen order.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'))
	})

	seen := make(map[string]bool, len(fields))
	terms := make([]string, 0, len(fields))
	for _, field := range fields {
		if seen[field] {
			continue
		}
		seen[field] = true
		terms = append(terms, field)
	}
	return terms
}

func defaultSaleMonths() map[time.Month]bool {
	return map[time.Month]bool{
		time.January:  true,
		time.July:     true,
		time.December: true,
	}
}

func defaultSeasonalTags() map[time.Month][]string {
	winter := []string{"comfortable", "relaxed", "warm", "layering"}
	spring := []string{"casual", "denim", "light"}
	summer := []string{"light", "white", "breathable", "everyday"}
	fall := []string{"classic", "denim", "layering", "versatile"}

	return map[time.Month][]string{
		time.January:   winter,
		time.February:  winter,
		time.March:     spring,
		time.April:     spring,
		time.May:       spring,
		time.June:      summer,
		time.July:      summer,
		time.August:    summer,
		time.September: fall,
		time.October:   fall,
		time.November:  fall,
		time.December:  winter,
	}
}
