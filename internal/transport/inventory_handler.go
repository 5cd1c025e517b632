package transport

import (
	"errors"
	"net/http"

	"retail-concierge/internal/middleware"
	"retail-concierge/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// InventoryCheckRequest represents the inventory check request payload
type InventoryCheckRequest struct {
	ProductID  string                   `json:"product_id" validate:"required"`
	Attributes map[string]string        `json:"attributes"`
	Location   *service.LocationContext `json:"location"`
}

// InventoryHandler handles HTTP requests for stock availability
type InventoryHandler struct {
	service service.InventoryService
	logger  *zap.Logger
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(svc service.InventoryService, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{service: svc, logger: logger}
}

// RegisterRoutes registers the inventory routes
func (h *InventoryHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/inventory/check", h.Check)
}

// Check handles inventory availability requests
func (h *InventoryHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req InventoryCheckRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Inventory check validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	report, err := h.service.CheckInventory(r.Context(), req.ProductID, req.Attributes, req.Location)
	if err != nil {
		if errors.Is(err, service.ErrMissingProductID) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		h.logger.Error("Inventory check failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to check inventory")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, report)
}
