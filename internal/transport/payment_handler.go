package transport

import (
	"errors"
	"net/http"

	"retail-concierge/internal/domain"
	"retail-concierge/internal/middleware"
	"retail-concierge/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CheckoutRequest represents the checkout initiation payload
type CheckoutRequest struct {
	UserID   string  `json:"user_id" validate:"required"`
	CartID   string  `json:"cart_id" validate:"required"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Currency string  `json:"currency"`
}

// CheckoutResponse represents the checkout initiation response
type CheckoutResponse struct {
	Transaction domain.Transaction `json:"transaction"`
	PaymentURL  string             `json:"payment_url"`
}

// ProcessPaymentRequest represents the payment processing payload
type ProcessPaymentRequest struct {
	TransactionID string            `json:"transaction_id" validate:"required"`
	Method        string            `json:"method" validate:"required"`
	Details       map[string]string `json:"details"`
}

// ProcessPaymentResponse represents the payment processing response
type ProcessPaymentResponse struct {
	Transaction domain.Transaction `json:"transaction"`
	Approved    bool               `json:"approved"`
	Message     string             `json:"message"`
}

// PaymentStatusRequest represents the transaction status lookup payload
type PaymentStatusRequest struct {
	TransactionID string `json:"transaction_id" validate:"required"`
}

// PaymentHandler handles HTTP requests for mock payments
type PaymentHandler struct {
	service service.PaymentService
	logger  *zap.Logger
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(svc service.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{service: svc, logger: logger}
}

// RegisterRoutes registers all payment routes
func (h *PaymentHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/payments", func(r chi.Router) {
		r.Post("/checkout", h.Checkout)
		r.Post("/process", h.Process)
		r.Post("/status", h.Status)
	})
}

// Checkout handles checkout initiation
func (h *PaymentHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Checkout validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	txn, paymentURL, err := h.service.InitiateCheckout(r.Context(), req.UserID, req.CartID, req.Amount, req.Currency)
	if err != nil {
		if errors.Is(err, service.ErrMissingCheckoutFields) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		h.logger.Error("Checkout failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to initiate checkout")
		return
	}

	h.logger.Info("Checkout initiated", zap.String("transaction_id", txn.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, CheckoutResponse{
		Transaction: *txn,
		PaymentURL:  paymentURL,
	})
}

// Process handles payment processing
func (h *PaymentHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req ProcessPaymentRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Payment validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	outcome, err := h.service.ProcessPayment(r.Context(), req.TransactionID, req.Method, req.Details)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTransactionNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrUnsupportedPayMethod), errors.Is(err, service.ErrMissingTransactionID):
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Payment processing failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to process payment")
		}
		return
	}

	h.logger.Info("Payment processed",
		zap.String("transaction_id", req.TransactionID),
		zap.Bool("approved", outcome.Approved),
	)
	middleware.RespondWithJSON(w, http.StatusOK, ProcessPaymentResponse{
		Transaction: outcome.Transaction,
		Approved:    outcome.Approved,
		Message:     outcome.Message,
	})
}

// Status handles transaction status lookups
func (h *PaymentHandler) Status(w http.ResponseWriter, r *http.Request) {
	var req PaymentStatusRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	txn, err := h.service.CheckStatus(r.Context(), req.TransactionID)
	if err != nil {
		if errors.Is(err, service.ErrTransactionNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}

		h.logger.Error("Status lookup failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to check transaction status")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, txn)
}
