package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"retail-concierge/internal/domain"
	"retail-concierge/internal/kvstore"

	"github.com/google/uuid"
)

var (
	ErrMissingCheckoutFields  = errors.New("user id, cart id and total amount are required")
	ErrMissingTransactionID   = errors.New("transaction id is required")
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrUnsupportedPayMethod   = errors.New("unsupported payment method")
	ErrTransactionLoadFailure = errors.New("failed to load transaction")
)

// PaymentOutcome is the result of processing a payment attempt. Declines are
// outcomes, not errors: the transaction exists and was handled.
type PaymentOutcome struct {
	Transaction domain.Transaction
	Approved    bool
	Message     string
}

// PaymentService defines the interface for the mock payment gateway
type PaymentService interface {
	InitiateCheckout(ctx context.Context, userID, cartID string, amount float64, currency string) (*domain.Transaction, string, error)
	ProcessPayment(ctx context.Context, transactionID, method string, details map[string]string) (*PaymentOutcome, error)
	CheckStatus(ctx context.Context, transactionID string) (*domain.Transaction, error)
}

type paymentService struct {
	store      kvstore.Store
	gatewayURL string
	now        func() time.Time
}

// NewPaymentService creates a new instance of PaymentService. Transactions
// live in the injected store so replicas share payment state.
func NewPaymentService(store kvstore.Store) PaymentService {
	return &paymentService{
		store:      store,
		gatewayURL: "https://payment.example.com/checkout",
		now:        time.Now,
	}
}

// InitiateCheckout creates a payment session for the user's cart and
// returns the transaction plus the gateway URL to complete it.
func (s *paymentService) InitiateCheckout(ctx context.Context, userID, cartID string, amount float64, currency string) (*domain.Transaction, string, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(cartID) == "" || amount <= 0 {
		return nil, "", ErrMissingCheckoutFields
	}
	if currency == "" {
		currency = "INR"
	}

	now := s.now()
	txn := domain.Transaction{
		ID:        fmt.Sprintf("TXN-%s-%s", now.Format("20060102150405"), uuid.NewString()[:8]),
		UserID:    userID,
		CartID:    cartID,
		Amount:    amount,
		Currency:  currency,
		Status:    domain.TransactionInitiated,
		CreatedAt: now,
	}
	if err := s.save(ctx, txn); err != nil {
		return nil, "", err
	}

	return &txn, fmt.Sprintf("%s/%s", s.gatewayURL, txn.ID), nil
}

// ProcessPayment simulates the gateway. Card numbers containing 4242
// succeed, 1111 is declined; UPI IDs must contain an @ handle.
func (s *paymentService) ProcessPayment(ctx context.Context, transactionID, method string, details map[string]string) (*PaymentOutcome, error) {
	if strings.TrimSpace(transactionID) == "" {
		return nil, ErrMissingTransactionID
	}

	txn, err := s.load(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	outcome := &PaymentOutcome{Transaction: *txn}
	switch strings.ToLower(method) {
	case "", "credit_card":
		card := details["card_number"]
		switch {
		case strings.Contains(card, "1111"):
			outcome.Message = "Transaction failed: your card was declined due to insufficient funds."
		case strings.Contains(card, "4242"):
			outcome.Approved = true
			outcome.Message = fmt.Sprintf("Payment of %s %.2f processed successfully.", txn.Currency, txn.Amount)
		default:
			outcome.Message = "Invalid card details provided."
		}
	case "upi":
		if strings.Contains(details["upi_id"], "@") {
			outcome.Approved = true
			outcome.Message = fmt.Sprintf("Payment of %s %.2f via UPI completed successfully.", txn.Currency, txn.Amount)
		} else {
			outcome.Message = "Invalid UPI ID."
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPayMethod, method)
	}

	if outcome.Approved {
		completed := s.now()
		txn.Status = domain.TransactionCompleted
		txn.CompletedAt = &completed
	} else {
		txn.Status = domain.TransactionFailed
	}
	if err := s.save(ctx, *txn); err != nil {
		return nil, err
	}
	outcome.Transaction = *txn

	return outcome, nil
}

// CheckStatus looks up a transaction by ID.
func (s *paymentService) CheckStatus(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	if strings.TrimSpace(transactionID) == "" {
		return nil, ErrMissingTransactionID
	}
	return s.load(ctx, transactionID)
}

func (s *paymentService) save(ctx context.Context, txn domain.Transaction) error {
	payload, err := json.Marshal(txn)
	if err != nil {
		return fmt.Errorf("failed to encode transaction: %w", err)
	}
	if err := s.store.Put(ctx, txn.ID, payload); err != nil {
		return fmt.Errorf("failed to store transaction: %w", err)
	}
	return nil
}

func (s *paymentService) load(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	payload, err := s.store.Get(ctx, transactionID)
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrTransactionLoadFailure, err)
	}

	var txn domain.Transaction
	if err := json.Unmarshal(payload, &txn); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransactionLoadFailure, err)
	}
	return &txn, nil
}
