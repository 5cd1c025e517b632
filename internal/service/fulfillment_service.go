package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"retail-concierge/internal/domain"
)

var ErrMissingReservationFields = errors.New("user id, product id and store id are required")

// FulfillmentService defines the interface for in-store reservations
type FulfillmentService interface {
	ReserveInStore(ctx context.Context, userID, productID, storeID string) (*domain.Reservation, error)
}

type fulfillmentService struct{}

// NewFulfillmentService creates a new instance of FulfillmentService
func NewFulfillmentService() FulfillmentService {
	return &fulfillmentService{}
}

// ReserveInStore places a 24 hour hold on an item. The reservation ID is a
// deterministic function of its inputs, which keeps retries idempotent.
func (s *fulfillmentService) ReserveInStore(_ context.Context, userID, productID, storeID string) (*domain.Reservation, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(productID) == "" || strings.TrimSpace(storeID) == "" {
		return nil, ErrMissingReservationFields
	}

	reservationID := fmt.Sprintf("RES-%s-%s-%s", prefix(productID, 4), prefix(storeID, 3), suffix(userID, 4))

	return &domain.Reservation{
		ID:        reservationID,
		UserID:    userID,
		ProductID: productID,
		StoreID:   storeID,
		Message:   "Your item has been reserved for 24 hours.",
	}, nil
}

func prefix(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}

func suffix(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[len(s)-n:]
}
