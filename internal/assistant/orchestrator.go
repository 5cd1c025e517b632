package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"retail-concierge/internal/kvstore"

	"go.uber.org/zap"
)

const (
	// maxToolIterations bounds the tool loop so a confused model cannot
	// spin forever.
	maxToolIterations = 5

	// maxHistoryTurns caps how much stored conversation is replayed.
	maxHistoryTurns = 20

	systemPrompt = `You are a personal stylist and shopping concierge for an online fashion store.
Help the user find products, check availability, reserve items, apply offers, pay and track orders.
Use the available tools to answer; never invent product data, stock levels or order details.
Keep replies short, friendly and concrete. Prices are in INR unless a tool says otherwise.`
)

var (
	ErrMissingChatFields = errors.New("user id and message are required")
	ErrModelUnavailable  = errors.New("no chat model configured")
)

// Orchestrator defines the interface for the conversational assistant
type Orchestrator interface {
	Chat(ctx context.Context, userID, message string) (string, error)
}

type orchestrator struct {
	model   ChatModel
	toolbox *Toolbox
	history kvstore.Store
	logger  *zap.Logger
}

// NewOrchestrator creates a new Orchestrator. History lives in the injected
// kv store so the assistant works the same over memory or Redis.
func NewOrchestrator(model ChatModel, toolbox *Toolbox, history kvstore.Store, logger *zap.Logger) Orchestrator {
	return &orchestrator{
		model:   model,
		toolbox: toolbox,
		history: history,
		logger:  logger,
	}
}

// Chat runs one user turn: load history, let the model call tools until it
// produces a final answer, persist the new turns.
func (o *orchestrator) Chat(ctx context.Context, userID, message string) (string, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(message) == "" {
		return "", ErrMissingChatFields
	}
	if o.model == nil {
		return "", ErrModelUnavailable
	}

	history, err := o.loadHistory(ctx, userID)
	if err != nil {
		o.logger.Warn("Failed to load chat history, starting fresh",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		history = nil
	}

	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: RoleSystem, Content: systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, Message{Role: RoleUser, Content: message})

	tools := o.toolbox.Definitions()

	var reply string
	for i := 0; i < maxToolIterations; i++ {
		resp, err := o.model.Complete(ctx, &Request{Messages: messages, Tools: tools})
		if err != nil {
			return "", fmt.Errorf("chat completion failed: %w", err)
		}

		if len(resp.ToolCalls) == 0 {
			reply = resp.Content
			messages = append(messages, Message{Role: RoleAssistant, Content: resp.Content})
			break
		}

		messages = append(messages, Message{
			Role:      RoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		for _, call := range resp.ToolCalls {
			o.logger.Debug("Executing assistant tool",
				zap.String("user_id", userID),
				zap.String("tool", call.Name),
			)
			result := o.toolbox.Execute(ctx, userID, call)
			messages = append(messages, Message{
				Role:       RoleTool,
				Content:    result,
				ToolCallID: call.ID,
			})
		}
	}

	if reply == "" {
		reply = "Sorry, I could not complete that request. Could you rephrase it?"
		messages = append(messages, Message{Role: RoleAssistant, Content: reply})
	}

	// Persist everything after the system prompt.
	if err := o.saveHistory(ctx, userID, messages[1:]); err != nil {
		o.logger.Warn("Failed to save chat history",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}

	return reply, nil
}

func (o *orchestrator) loadHistory(ctx context.Context, userID string) ([]Message, error) {
	raw, err := o.history.Get(ctx, historyKey(userID))
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var messages []Message
	if err := json.Unmarshal(raw, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode chat history: %w", err)
	}
	return messages, nil
}

func (o *orchestrator) saveHistory(ctx context.Context, userID string, messages []Message) error {
	if len(messages) > maxHistoryTurns {
		messages = messages[len(messages)-maxHistoryTurns:]
		// Trim to a user turn so no tool result is left without the
		// assistant call that produced it.
		for len(messages) > 0 && messages[0].Role != RoleUser {
			messages = messages[1:]
		}
	}

	raw, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to encode chat history: %w", err)
	}
	return o.history.Put(ctx, historyKey(userID), raw)
}

func historyKey(userID string) string {
	return "chat:" + userID
}
