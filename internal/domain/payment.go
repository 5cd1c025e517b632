package domain

import "time"

// TransactionStatus tracks the lifecycle of a payment transaction
type TransactionStatus string

const (
	TransactionInitiated TransactionStatus = "initiated"
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
)

// Transaction represents one payment session created at checkout
type Transaction struct {
	ID          string            `json:"transaction_id"`
	UserID      string            `json:"user_id"`
	CartID      string            `json:"cart_id"`
	Amount      float64           `json:"amount"`
	Currency    string            `json:"currency"`
	Status      TransactionStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
}
