package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"retail-concierge/internal/domain"
	"retail-concierge/internal/kvstore"
	"retail-concierge/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func newAgentRouter(t *testing.T) chi.Router {
	t.Helper()

	logger := zap.NewNop()
	router := chi.NewRouter()

	NewInventoryHandler(service.NewInventoryService(50), logger).RegisterRoutes(router)
	NewFulfillmentHandler(service.NewFulfillmentService(), logger).RegisterRoutes(router)
	NewPaymentHandler(service.NewPaymentService(kvstore.NewMemoryStore()), logger).RegisterRoutes(router)
	NewLoyaltyHandler(service.NewLoyaltyService(), logger).RegisterRoutes(router)
	NewOrderHandler(service.NewOrderService(), logger).RegisterRoutes(router)

	return router
}

func TestInventoryCheckEndpoint(t *testing.T) {
	router := newAgentRouter(t)

	w := postJSON(t, router, "/api/inventory/check", map[string]any{
		"product_id": "SKU_JCK_01",
		"location":   map[string]string{"city": "mumbai"},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var report domain.InventoryReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("Invalid response JSON: %v", err)
	}
	if report.OnlineStatus != domain.StockStatusInStock {
		t.Errorf("Expected in_stock, got %s", report.OnlineStatus)
	}
	if len(report.Stores) != 1 {
		t.Errorf("Expected 1 Mumbai store, got %d", len(report.Stores))
	}
}

func TestInventoryCheckEndpoint_MissingProductID(t *testing.T) {
	router := newAgentRouter(t)

	w := postJSON(t, router, "/api/inventory/check", map[string]any{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func TestReserveEndpoint(t *testing.T) {
	router := newAgentRouter(t)

	w := postJSON(t, router, "/api/fulfillment/reserve", map[string]any{
		"user_id":    "user_12345",
		"product_id": "SKU_JCK_01",
		"store_id":   "STORE_MUM_01",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var reservation domain.Reservation
	if err := json.Unmarshal(w.Body.Bytes(), &reservation); err != nil {
		t.Fatalf("Invalid response JSON: %v", err)
	}
	if reservation.ID == "" {
		t.Error("Expected a reservation ID")
	}
}

func TestPaymentFlowEndpoints(t *testing.T) {
	router := newAgentRouter(t)

	// Checkout
	w := postJSON(t, router, "/api/payments/checkout", map[string]any{
		"user_id": "user_12345",
		"cart_id": "cart_1",
		"amount":  4999,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var checkout CheckoutResponse
	if err := json.Unmarshal(w.Body.Bytes(), &checkout); err != nil {
		t.Fatalf("Invalid checkout JSON: %v", err)
	}
	if checkout.PaymentURL == "" {
		t.Error("Expected a payment URL")
	}

	// Process with the always-approved test card
	w = postJSON(t, router, "/api/payments/process", map[string]any{
		"transaction_id": checkout.Transaction.ID,
		"method":         "credit_card",
		"details":        map[string]string{"card_number": "4242424242424242"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var processed ProcessPaymentResponse
	if err := json.Unmarshal(w.Body.Bytes(), &processed); err != nil {
		t.Fatalf("Invalid process JSON: %v", err)
	}
	if !processed.Approved {
		t.Errorf("Expected approval: %s", processed.Message)
	}

	// Status reflects completion
	w = postJSON(t, router, "/api/payments/status", map[string]any{
		"transaction_id": checkout.Transaction.ID,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var txn domain.Transaction
	if err := json.Unmarshal(w.Body.Bytes(), &txn); err != nil {
		t.Fatalf("Invalid status JSON: %v", err)
	}
	if txn.Status != domain.TransactionCompleted {
		t.Errorf("Expected completed status, got %s", txn.Status)
	}
}

func TestPaymentStatusEndpoint_UnknownTransaction(t *testing.T) {
	router := newAgentRouter(t)

	w := postJSON(t, router, "/api/payments/status", map[string]any{
		"transaction_id": "TXN-missing",
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestLoyaltyEndpoints(t *testing.T) {
	router := newAgentRouter(t)

	w := postJSON(t, router, "/api/loyalty/offers", map[string]any{
		"user_id":     "user_12345",
		"cart_id":     "cart_1",
		"cart_amount": 5000,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = postJSON(t, router, "/api/loyalty/apply-coupon", map[string]any{
		"user_id":     "user_12345",
		"cart_id":     "cart_1",
		"coupon_code": "SAVE10",
		"cart_amount": 1000,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var application service.CouponApplication
	if err := json.Unmarshal(w.Body.Bytes(), &application); err != nil {
		t.Fatalf("Invalid coupon JSON: %v", err)
	}
	if application.FinalAmount != 900 {
		t.Errorf("Expected final amount 900, got %v", application.FinalAmount)
	}
}

func TestLoyaltyApplyCouponEndpoint_UnknownCoupon(t *testing.T) {
	router := newAgentRouter(t)

	w := postJSON(t, router, "/api/loyalty/apply-coupon", map[string]any{
		"user_id":     "user_12345",
		"cart_id":     "cart_1",
		"coupon_code": "BOGUS99",
		"cart_amount": 1000,
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestLoyaltyRedeemEndpoint_BelowMinimum(t *testing.T) {
	router := newAgentRouter(t)

	w := postJSON(t, router, "/api/loyalty/redeem", map[string]any{
		"user_id":     "user_12345",
		"cart_id":     "cart_1",
		"points":      50,
		"cart_amount": 1000,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func TestOrderStatusEndpoint(t *testing.T) {
	router := newAgentRouter(t)

	w := postJSON(t, router, "/api/orders/status", map[string]any{
		"order_id": "ORD-12345",
		"user_id":  "user_12345",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var order domain.Order
	if err := json.Unmarshal(w.Body.Bytes(), &order); err != nil {
		t.Fatalf("Invalid order JSON: %v", err)
	}
	if order.Status != "out_for_delivery" {
		t.Errorf("Expected out_for_delivery, got %s", order.Status)
	}
}

func TestOrderStatusEndpoint_UnknownOrder(t *testing.T) {
	router := newAgentRouter(t)

	w := postJSON(t, router, "/api/orders/status", map[string]any{
		"order_id": "ORD-99999",
		"user_id":  "user_12345",
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestOrderReturnEndpoint(t *testing.T) {
	router := newAgentRouter(t)

	w := postJSON(t, router, "/api/orders/return", map[string]any{
		"order_id":         "ORD-12345",
		"user_id":          "user_12345",
		"item_description": "Denim Trucker Jacket",
		"reason":           "wrong size",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var ret domain.ReturnRequest
	if err := json.Unmarshal(w.Body.Bytes(), &ret); err != nil {
		t.Fatalf("Invalid return JSON: %v", err)
	}
	if ret.ReturnID == "" {
		t.Error("Expected a return ID")
	}
}

// stubOrchestrator answers every chat turn with a fixed reply.
type stubOrchestrator struct {
	reply string
	err   error
}

func (s *stubOrchestrator) Chat(_ context.Context, _, _ string) (string, error) {
	return s.reply, s.err
}

func TestAssistantChatEndpoint(t *testing.T) {
	router := chi.NewRouter()
	NewAssistantHandler(&stubOrchestrator{reply: "Here are some jackets."}, zap.NewNop()).RegisterRoutes(router)

	w := postJSON(t, router, "/api/assistant/chat", map[string]any{
		"user_id": "user_12345",
		"message": "show me jackets",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp ChatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid chat JSON: %v", err)
	}
	if resp.Reply != "Here are some jackets." {
		t.Errorf("Unexpected reply %q", resp.Reply)
	}
}

func TestAssistantChatEndpoint_Validation(t *testing.T) {
	router := chi.NewRouter()
	NewAssistantHandler(&stubOrchestrator{}, zap.NewNop()).RegisterRoutes(router)

	w := postJSON(t, router, "/api/assistant/chat", map[string]any{
		"user_id": "user_12345",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}
