package transport

import (
	"errors"
	"net/http"

	"retail-concierge/internal/middleware"
	"retail-concierge/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OffersRequest represents the applicable offers lookup payload
type OffersRequest struct {
	UserID     string  `json:"user_id" validate:"required"`
	CartID     string  `json:"cart_id" validate:"required"`
	CartAmount float64 `json:"cart_amount" validate:"omitempty,gte=0"`
}

// ApplyCouponRequest represents the coupon application payload
type ApplyCouponRequest struct {
	UserID     string  `json:"user_id" validate:"required"`
	CartID     string  `json:"cart_id" validate:"required"`
	CouponCode string  `json:"coupon_code" validate:"required"`
	CartAmount float64 `json:"cart_amount" validate:"required,gt=0"`
}

// RedeemPointsRequest represents the points redemption payload
type RedeemPointsRequest struct {
	UserID     string  `json:"user_id" validate:"required"`
	CartID     string  `json:"cart_id" validate:"required"`
	Points     int     `json:"points" validate:"required,gt=0"`
	CartAmount float64 `json:"cart_amount" validate:"required,gt=0"`
}

// LoyaltyHandler handles HTTP requests for offers, coupons and points
type LoyaltyHandler struct {
	service service.LoyaltyService
	logger  *zap.Logger
}

// NewLoyaltyHandler creates a new LoyaltyHandler
func NewLoyaltyHandler(svc service.LoyaltyService, logger *zap.Logger) *LoyaltyHandler {
	return &LoyaltyHandler{service: svc, logger: logger}
}

// RegisterRoutes registers all loyalty routes
func (h *LoyaltyHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/loyalty", func(r chi.Router) {
		r.Post("/offers", h.Offers)
		r.Post("/apply-coupon", h.ApplyCoupon)
		r.Post("/redeem", h.Redeem)
	})
}

// Offers handles applicable offer lookups
func (h *LoyaltyHandler) Offers(w http.ResponseWriter, r *http.Request) {
	var req OffersRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	offers, err := h.service.GetApplicableOffers(r.Context(), req.UserID, req.CartID, req.CartAmount)
	if err != nil {
		if errors.Is(err, service.ErrMissingLoyaltyFields) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		h.logger.Error("Offer lookup failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch offers")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, offers)
}

// ApplyCoupon handles coupon application
func (h *LoyaltyHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	var req ApplyCouponRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	application, err := h.service.ApplyCoupon(r.Context(), req.UserID, req.CartID, req.CouponCode, req.CartAmount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownCoupon):
			middleware.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrMissingLoyaltyFields):
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Coupon application failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to apply coupon")
		}
		return
	}

	h.logger.Info("Coupon applied",
		zap.String("user_id", req.UserID),
		zap.String("coupon", application.Coupon.Code),
	)
	middleware.RespondWithJSON(w, http.StatusOK, application)
}

// Redeem handles loyalty points redemption
func (h *LoyaltyHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	var req RedeemPointsRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	redemption, err := h.service.RedeemPoints(r.Context(), req.UserID, req.CartID, req.Points, req.CartAmount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoLoyaltyAccount):
			middleware.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInsufficientPoints), errors.Is(err, service.ErrBelowRedeemMinimum), errors.Is(err, service.ErrMissingLoyaltyFields):
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Points redemption failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to redeem points")
		}
		return
	}

	h.logger.Info("Points redeemed",
		zap.String("user_id", req.UserID),
		zap.Int("points", redemption.PointsRedeemed),
	)
	middleware.RespondWithJSON(w, http.StatusOK, redemption)
}
