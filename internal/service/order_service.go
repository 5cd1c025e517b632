package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"retail-concierge/internal/domain"
)

var (
	ErrMissingOrderFields = errors.New("order id and user id are required")
	ErrOrderNotFound      = errors.New("order not found")
)

// OrderService defines the interface for post-purchase support
type OrderService interface {
	GetOrderStatus(ctx context.Context, orderID, userID string) (*domain.Order, error)
	InitiateReturn(ctx context.Context, orderID, userID, itemDescription, reason string) (*domain.ReturnRequest, error)
}

type orderService struct {
	orders map[string]seedOrder
	now    func() time.Time
}

type seedOrder struct {
	status       string
	description  string
	deliveryDays int
	items        []string
}

// NewOrderService creates a new instance of OrderService seeded with the
// demo orders. Delivery estimates are offsets from the current date.
func NewOrderService() OrderService {
	return &orderService{
		orders: map[string]seedOrder{
			"ORD-12345": {
				status:       "out_for_delivery",
				description:  "Your order is out for delivery and should arrive today.",
				deliveryDays: 0,
				items:        []string{"Denim Trucker Jacket", "Cotton T-Shirt"},
			},
			"ORD-67890": {
				status:       "in_transit",
				description:  "Your package is currently in transit and expected tomorrow.",
				deliveryDays: 1,
				items:        []string{"Classic Biker Jacket"},
			},
			"ORD-A1465": {
				status:       "dispatched",
				description:  "Your order has been dispatched and will reach you soon.",
				deliveryDays: 2,
				items:        []string{"Lightweight Puffer Jacket"},
			},
		},
		now: time.Now,
	}
}

// GetOrderStatus returns tracking details for a previously placed order.
func (s *orderService) GetOrderStatus(_ context.Context, orderID, userID string) (*domain.Order, error) {
	if strings.TrimSpace(orderID) == "" || strings.TrimSpace(userID) == "" {
		return nil, ErrMissingOrderFields
	}

	seed, ok := s.orders[orderID]
	if !ok {
		return nil, ErrOrderNotFound
	}

	return &domain.Order{
		ID:                orderID,
		Status:            seed.status,
		StatusDescription: seed.description,
		EstimatedDelivery: s.now().AddDate(0, 0, seed.deliveryDays),
		TrackingLink:      "https://track.example.com/" + orderID,
		Items:             seed.items,
	}, nil
}

// InitiateReturn opens a return for an item on an existing order and
// schedules a pickup.
func (s *orderService) InitiateReturn(_ context.Context, orderID, userID, itemDescription, reason string) (*domain.ReturnRequest, error) {
	if strings.TrimSpace(orderID) == "" || strings.TrimSpace(userID) == "" {
		return nil, ErrMissingOrderFields
	}
	if _, ok := s.orders[orderID]; !ok {
		return nil, ErrOrderNotFound
	}
	if reason == "" {
		reason = "Not specified"
	}

	now := s.now()
	return &domain.ReturnRequest{
		ReturnID:       fmt.Sprintf("RET-%s-%s", suffix(orderID, 5), now.Format("150405")),
		OrderID:        orderID,
		ItemDesc:       itemDescription,
		Reason:         reason,
		PickupEstimate: now.AddDate(0, 0, 2),
	}, nil
}
