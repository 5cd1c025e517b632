package transport

import (
	"errors"
	"net/http"

	"retail-concierge/internal/domain"
	"retail-concierge/internal/middleware"
	"retail-concierge/internal/recommend"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RecommendationRequest represents the recommendation request payload.
// Context may be empty: an empty context still yields a ranked catalog.
type RecommendationRequest struct {
	UserID  string `json:"user_id"`
	Context string `json:"context"`
	Count   int    `json:"count" validate:"omitempty,gt=0,lte=50"`
}

// RecommendedProduct is the wire form of a ranked product. Scores and
// reasons are ranking internals and stay out of the response.
type RecommendedProduct struct {
	ProductID string       `json:"product_id"`
	Name      string       `json:"name"`
	Price     domain.Money `json:"price"`
	Tags      []string     `json:"tags"`
}

// RecommendationResponse represents the recommendation response
type RecommendationResponse struct {
	Status          string               `json:"status"`
	Recommendations []RecommendedProduct `json:"recommendations"`
	Bundles         []domain.Bundle      `json:"bundles"`
	Promotions      []string             `json:"promotions"`
}

// RecommendationHandler handles HTTP requests for recommendations
type RecommendationHandler struct {
	service      recommend.Service
	defaultCount int
	logger       *zap.Logger
}

// NewRecommendationHandler creates a new RecommendationHandler
func NewRecommendationHandler(service recommend.Service, defaultCount int, logger *zap.Logger) *RecommendationHandler {
	if defaultCount <= 0 {
		defaultCount = 3
	}
	return &RecommendationHandler{
		service:      service,
		defaultCount: defaultCount,
		logger:       logger,
	}
}

// RegisterRoutes registers the recommendation routes
func (h *RecommendationHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/recommendations", h.Recommend)
}

// Recommend handles recommendation requests
func (h *RecommendationHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendationRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Recommendation validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	count := req.Count
	if count == 0 {
		count = h.defaultCount
	}

	result, err := h.service.Recommend(r.Context(), req.UserID, req.Context, count)
	if err != nil {
		h.logger.Error("Recommendation failed", zap.Error(err))

		if errors.Is(err, recommend.ErrInvalidCount) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, recommend.ErrEmptyCatalog) {
			middleware.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to generate recommendations")
		return
	}

	recommendations := make([]RecommendedProduct, 0, len(result.Recommendations))
	for _, sp := range result.Recommendations {
		recommendations = append(recommendations, RecommendedProduct{
			ProductID: sp.Product.ID,
			Name:      sp.Product.Name,
			Price:     sp.Product.Price,
			Tags:      sp.Product.Tags,
		})
	}

	// Absent bundles and promotions encode as empty arrays, never null.
	bundles := result.Bundles
	if bundles == nil {
		bundles = []domain.Bundle{}
	}
	promotions := result.Promotions
	if promotions == nil {
		promotions = []string{}
	}

	middleware.RespondWithJSON(w, http.StatusOK, RecommendationResponse{
		Status:          "success",
		Recommendations: recommendations,
		Bundles:         bundles,
		Promotions:      promotions,
	})
}
