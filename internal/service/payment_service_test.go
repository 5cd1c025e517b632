package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"retail-concierge/internal/domain"
	"retail-concierge/internal/kvstore"
)

func newPaymentFixture() PaymentService {
	return NewPaymentService(kvstore.NewMemoryStore())
}

func TestInitiateCheckout(t *testing.T) {
	svc := newPaymentFixture()
	ctx := context.Background()

	txn, gatewayURL, err := svc.InitiateCheckout(ctx, "user_12345", "cart_1", 4999, "")
	if err != nil {
		t.Fatalf("InitiateCheckout returned error: %v", err)
	}

	if !strings.HasPrefix(txn.ID, "TXN-") {
		t.Errorf("Unexpected transaction ID %q", txn.ID)
	}
	if txn.Status != domain.TransactionInitiated {
		t.Errorf("Expected initiated status, got %s", txn.Status)
	}
	if txn.Currency != "INR" {
		t.Errorf("Expected INR default currency, got %s", txn.Currency)
	}
	if !strings.Contains(gatewayURL, txn.ID) {
		t.Errorf("Gateway URL %q should reference transaction ID", gatewayURL)
	}

	stored, err := svc.CheckStatus(ctx, txn.ID)
	if err != nil {
		t.Fatalf("CheckStatus returned error: %v", err)
	}
	if stored.CartID != "cart_1" || stored.Amount != 4999 {
		t.Errorf("Stored transaction mismatch: %+v", stored)
	}
}

func TestInitiateCheckout_Validation(t *testing.T) {
	svc := newPaymentFixture()
	ctx := context.Background()

	tests := []struct {
		name   string
		userID string
		cartID string
		amount float64
	}{
		{"missing user", "", "cart_1", 100},
		{"missing cart", "user_1", "", 100},
		{"zero amount", "user_1", "cart_1", 0},
		{"negative amount", "user_1", "cart_1", -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.InitiateCheckout(ctx, tt.userID, tt.cartID, tt.amount, "INR")
			if !errors.Is(err, ErrMissingCheckoutFields) {
				t.Errorf("Expected ErrMissingCheckoutFields, got %v", err)
			}
		})
	}
}

func TestProcessPayment_CardOutcomes(t *testing.T) {
	svc := newPaymentFixture()
	ctx := context.Background()

	tests := []struct {
		name       string
		cardNumber string
		approved   bool
		status     domain.TransactionStatus
	}{
		{"successful card", "4242424242424242", true, domain.TransactionCompleted},
		{"declined card", "4111111111111111", false, domain.TransactionFailed},
		{"unknown card", "5500000000000004", false, domain.TransactionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn, _, err := svc.InitiateCheckout(ctx, "user_12345", "cart_1", 1000, "INR")
			if err != nil {
				t.Fatalf("InitiateCheckout returned error: %v", err)
			}

			outcome, err := svc.ProcessPayment(ctx, txn.ID, "credit_card", map[string]string{"card_number": tt.cardNumber})
			if err != nil {
				t.Fatalf("ProcessPayment returned error: %v", err)
			}
			if outcome.Approved != tt.approved {
				t.Errorf("Expected approved=%v, got %v", tt.approved, outcome.Approved)
			}
			if outcome.Transaction.Status != tt.status {
				t.Errorf("Expected status %s, got %s", tt.status, outcome.Transaction.Status)
			}
			if tt.approved && outcome.Transaction.CompletedAt == nil {
				t.Error("Expected CompletedAt to be set on approval")
			}
		})
	}
}

func TestProcessPayment_UPI(t *testing.T) {
	svc := newPaymentFixture()
	ctx := context.Background()

	txn, _, err := svc.InitiateCheckout(ctx, "user_12345", "cart_1", 1000, "INR")
	if err != nil {
		t.Fatalf("InitiateCheckout returned error: %v", err)
	}

	outcome, err := svc.ProcessPayment(ctx, txn.ID, "upi", map[string]string{"upi_id": "rita@upi"})
	if err != nil {
		t.Fatalf("ProcessPayment returned error: %v", err)
	}
	if !outcome.Approved {
		t.Errorf("Expected UPI payment to be approved: %s", outcome.Message)
	}

	txn2, _, _ := svc.InitiateCheckout(ctx, "user_12345", "cart_2", 1000, "INR")
	outcome, err = svc.ProcessPayment(ctx, txn2.ID, "upi", map[string]string{"upi_id": "invalid"})
	if err != nil {
		t.Fatalf("ProcessPayment returned error: %v", err)
	}
	if outcome.Approved {
		t.Error("Expected malformed UPI ID to be declined")
	}
}

func TestProcessPayment_UnknownTransaction(t *testing.T) {
	svc := newPaymentFixture()

	_, err := svc.ProcessPayment(context.Background(), "TXN-missing", "credit_card", nil)
	if !errors.Is(err, ErrTransactionNotFound) {
		t.Errorf("Expected ErrTransactionNotFound, got %v", err)
	}
}

func TestProcessPayment_UnsupportedMethod(t *testing.T) {
	svc := newPaymentFixture()
	ctx := context.Background()

	txn, _, _ := svc.InitiateCheckout(ctx, "user_12345", "cart_1", 1000, "INR")
	_, err := svc.ProcessPayment(ctx, txn.ID, "barter", nil)
	if !errors.Is(err, ErrUnsupportedPayMethod) {
		t.Errorf("Expected ErrUnsupportedPayMethod, got %v", err)
	}
}
