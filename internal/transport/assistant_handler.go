package transport

import (
	"errors"
	"net/http"

	"retail-concierge/internal/assistant"
	"retail-concierge/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ChatRequest represents the assistant chat payload
type ChatRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// ChatResponse represents the assistant chat response
type ChatResponse struct {
	Reply string `json:"reply"`
}

// AssistantHandler handles HTTP requests for the conversational assistant
type AssistantHandler struct {
	orchestrator assistant.Orchestrator
	logger       *zap.Logger
}

// NewAssistantHandler creates a new AssistantHandler
func NewAssistantHandler(orch assistant.Orchestrator, logger *zap.Logger) *AssistantHandler {
	return &AssistantHandler{orchestrator: orch, logger: logger}
}

// RegisterRoutes registers the assistant routes
func (h *AssistantHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/assistant/chat", h.Chat)
}

// Chat handles one assistant conversation turn
func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := h.orchestrator.Chat(r.Context(), req.UserID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, assistant.ErrMissingChatFields):
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, assistant.ErrModelUnavailable):
			middleware.RespondWithError(w, http.StatusServiceUnavailable, "assistant is not configured")
		default:
			h.logger.Error("Assistant chat failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "assistant request failed")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ChatResponse{Reply: reply})
}
