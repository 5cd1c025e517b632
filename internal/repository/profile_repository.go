package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"retail-concierge/internal/domain"
)

// ProfileRepository provides Postgres-backed user profiles. Get satisfies
// the profile.Store interface used by the recommendation service.
type ProfileRepository interface {
	Upsert(ctx context.Context, profile *domain.UserProfile) error
	Get(ctx context.Context, userID string) (*domain.UserProfile, error)
}

type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new instance of ProfileRepository
func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// Upsert inserts or replaces a user profile.
func (r *profileRepository) Upsert(ctx context.Context, profile *domain.UserProfile) error {
	preferences, err := json.Marshal(profile.Preferences)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	purchases, err := json.Marshal(profile.PurchaseHistory)
	if err != nil {
		return fmt.Errorf("failed to encode purchase history: %w", err)
	}
	browsing, err := json.Marshal(profile.BrowsingHistory)
	if err != nil {
		return fmt.Errorf("failed to encode browsing history: %w", err)
	}

	query := `
		INSERT INTO profiles (user_id, preferences, size, purchase_history, browsing_history, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (user_id) DO UPDATE
		SET preferences = $2, size = $3, purchase_history = $4, browsing_history = $5, updated_at = $6
	`

	_, err = r.db.ExecContext(ctx, query, profile.UserID, preferences, profile.Size, purchases, browsing, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return nil
}

// Get retrieves a user profile. A missing profile is not an error: the
// caller treats the user as anonymous.
func (r *profileRepository) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	query := `
		SELECT user_id, preferences, size, purchase_history, browsing_history
		FROM profiles
		WHERE user_id = $1
	`

	var (
		profile     domain.UserProfile
		preferences []byte
		purchases   []byte
		browsing    []byte
	)
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.UserID,
		&preferences,
		&profile.Size,
		&purchases,
		&browsing,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}

	if err := json.Unmarshal(preferences, &profile.Preferences); err != nil {
		return nil, fmt.Errorf("failed to decode preferences: %w", err)
	}
	if err := json.Unmarshal(purchases, &profile.PurchaseHistory); err != nil {
		return nil, fmt.Errorf("failed to decode purchase history: %w", err)
	}
	if err := json.Unmarshal(browsing, &profile.BrowsingHistory); err != nil {
		return nil, fmt.Errorf("failed to decode browsing history: %w", err)
	}

	return &profile, nil
}
