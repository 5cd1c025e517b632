package transport

import (
	"errors"
	"net/http"

	"retail-concierge/internal/middleware"
	"retail-concierge/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ReservationRequest represents the in-store reservation request payload
type ReservationRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	ProductID string `json:"product_id" validate:"required"`
	StoreID   string `json:"store_id" validate:"required"`
}

// FulfillmentHandler handles HTTP requests for in-store reservations
type FulfillmentHandler struct {
	service service.FulfillmentService
	logger  *zap.Logger
}

// NewFulfillmentHandler creates a new FulfillmentHandler
func NewFulfillmentHandler(svc service.FulfillmentService, logger *zap.Logger) *FulfillmentHandler {
	return &FulfillmentHandler{service: svc, logger: logger}
}

// RegisterRoutes registers the fulfillment routes
func (h *FulfillmentHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/fulfillment/reserve", h.Reserve)
}

// Reserve handles in-store reservation requests
func (h *FulfillmentHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	var req ReservationRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Reservation validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reservation, err := h.service.ReserveInStore(r.Context(), req.UserID, req.ProductID, req.StoreID)
	if err != nil {
		if errors.Is(err, service.ErrMissingReservationFields) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		h.logger.Error("Reservation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to reserve item")
		return
	}

	h.logger.Info("Item reserved",
		zap.String("reservation_id", reservation.ID),
		zap.String("store_id", reservation.StoreID),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, reservation)
}
