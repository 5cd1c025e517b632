package domain

import "time"

// Order represents a previously placed order tracked by post-purchase support
type Order struct {
	ID                string    `json:"order_id"`
	Status            string    `json:"status"`
	StatusDescription string    `json:"status_description"`
	EstimatedDelivery time.Time `json:"estimated_delivery"`
	TrackingLink      string    `json:"tracking_link"`
	Items             []string  `json:"items"`
}

// ReturnRequest records an initiated return or exchange
type ReturnRequest struct {
	ReturnID       string    `json:"return_id"`
	OrderID        string    `json:"order_id"`
	ItemDesc       string    `json:"item_description"`
	Reason         string    `json:"reason"`
	PickupEstimate time.Time `json:"pickup_estimate"`
}

// Reservation is a temporary in-store hold placed on an item for a user
type Reservation struct {
	ID        string `json:"reservation_id"`
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
	StoreID   string `json:"store_id"`
	Message   string `json:"confirmation_message"`
}
