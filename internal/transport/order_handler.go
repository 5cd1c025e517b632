package transport

import (
	"errors"
	"net/http"

	"retail-concierge/internal/middleware"
	"retail-concierge/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OrderStatusRequest represents the order status lookup payload
type OrderStatusRequest struct {
	OrderID string `json:"order_id" validate:"required"`
	UserID  string `json:"user_id" validate:"required"`
}

// ReturnRequest represents the return initiation payload
type ReturnRequest struct {
	OrderID  string `json:"order_id" validate:"required"`
	UserID   string `json:"user_id" validate:"required"`
	ItemDesc string `json:"item_description"`
	Reason   string `json:"reason"`
}

// OrderHandler handles HTTP requests for post-purchase support
type OrderHandler struct {
	service service.OrderService
	logger  *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(svc service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{service: svc, logger: logger}
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Post("/status", h.Status)
		r.Post("/return", h.Return)
	})
}

// Status handles order status lookups
func (h *OrderHandler) Status(w http.ResponseWriter, r *http.Request) {
	var req OrderStatusRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.service.GetOrderStatus(r.Context(), req.OrderID, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrMissingOrderFields):
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Order status lookup failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to look up order")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, order)
}

// Return handles return initiation
func (h *OrderHandler) Return(w http.ResponseWriter, r *http.Request) {
	var req ReturnRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ret, err := h.service.InitiateReturn(r.Context(), req.OrderID, req.UserID, req.ItemDesc, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrMissingOrderFields):
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Return initiation failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to initiate return")
		}
		return
	}

	h.logger.Info("Return initiated",
		zap.String("return_id", ret.ReturnID),
		zap.String("order_id", ret.OrderID),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, ret)
}
