package profile

import (
	"context"
	"sync"

	"retail-concierge/internal/domain"
)

// Store resolves user profiles for the recommendation engine. A missing
// profile is a valid state (anonymous or first-time user), never an error.
type Store interface {
	Get(ctx context.Context, userID string) (*domain.UserProfile, error)
}

// MemoryStore is an in-process profile store seeded with fixture users.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]domain.UserProfile
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]domain.UserProfile)}
}

// NewSeededStore creates an in-memory store preloaded with the demo users.
func NewSeededStore() *MemoryStore {
	s := NewMemoryStore()
	s.Put(domain.UserProfile{
		UserID:          "user_12345",
		Preferences:     []string{"casual", "denim", "blue"},
		Size:            "M",
		PurchaseHistory: []string{"SKU_TSH_01", "SKU_JNS_02"},
		BrowsingHistory: []string{"jackets", "shirts", "casual wear"},
	})
	s.Put(domain.UserProfile{
		UserID:          "user_67890",
		Preferences:     []string{"formal", "black"},
		Size:            "L",
		PurchaseHistory: nil,
		BrowsingHistory: []string{"pants"},
	})
	return s
}

// Put stores or replaces a profile.
func (s *MemoryStore) Put(p domain.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.UserID] = p
}

// Get returns the profile for userID, or nil when the user is unknown.
func (s *MemoryStore) Get(_ context.Context, userID string) (*domain.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}
