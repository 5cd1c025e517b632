package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"retail-concierge/internal/catalog"
	"retail-concierge/internal/kvstore"
	"retail-concierge/internal/profile"
	"retail-concierge/internal/recommend"
	"retail-concierge/internal/service"

	"go.uber.org/zap"
)

// fakeModel replays a scripted sequence of responses and records every
// request it receives.
type fakeModel struct {
	script   []*Response
	requests []*Request
}

func (m *fakeModel) Complete(_ context.Context, req *Request) (*Response, error) {
	m.requests = append(m.requests, req)
	if len(m.script) == 0 {
		return nil, errors.New("fake model script exhausted")
	}
	resp := m.script[0]
	m.script = m.script[1:]
	return resp, nil
}

func newTestToolbox() *Toolbox {
	engine := recommend.NewEngine(recommend.DefaultConfig())
	recommender := recommend.NewService(catalog.Seed(), profile.NewSeededStore(), engine)

	return NewToolbox(
		recommender,
		service.NewInventoryService(50),
		service.NewFulfillmentService(),
		service.NewPaymentService(kvstore.NewMemoryStore()),
		service.NewLoyaltyService(),
		service.NewOrderService(),
	)
}

func newTestOrchestrator(model ChatModel) (Orchestrator, kvstore.Store) {
	history := kvstore.NewMemoryStore()
	return NewOrchestrator(model, newTestToolbox(), history, zap.NewNop()), history
}

func TestChat_Validation(t *testing.T) {
	orch, _ := newTestOrchestrator(&fakeModel{})
	ctx := context.Background()

	if _, err := orch.Chat(ctx, "", "hello"); !errors.Is(err, ErrMissingChatFields) {
		t.Errorf("Expected ErrMissingChatFields, got %v", err)
	}
	if _, err := orch.Chat(ctx, "user_12345", "  "); !errors.Is(err, ErrMissingChatFields) {
		t.Errorf("Expected ErrMissingChatFields, got %v", err)
	}
}

func TestChat_NoModelConfigured(t *testing.T) {
	orch, _ := newTestOrchestrator(nil)

	_, err := orch.Chat(context.Background(), "user_12345", "hello")
	if !errors.Is(err, ErrModelUnavailable) {
		t.Errorf("Expected ErrModelUnavailable, got %v", err)
	}
}

func TestChat_DirectAnswer(t *testing.T) {
	model := &fakeModel{script: []*Response{
		{Content: "Hi! What are you shopping for today?"},
	}}
	orch, _ := newTestOrchestrator(model)

	reply, err := orch.Chat(context.Background(), "user_12345", "hello")
	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if reply != "Hi! What are you shopping for today?" {
		t.Errorf("Unexpected reply %q", reply)
	}

	// The model sees the system prompt, and the tool definitions are offered.
	req := model.requests[0]
	if req.Messages[0].Role != RoleSystem {
		t.Error("Expected a system prompt as the first message")
	}
	if len(req.Tools) != 6 {
		t.Errorf("Expected 6 tool definitions, got %d", len(req.Tools))
	}
}

func TestChat_ToolCallLoop(t *testing.T) {
	args, _ := json.Marshal(map[string]any{"context": "blue jacket", "count": 2})
	model := &fakeModel{script: []*Response{
		{ToolCalls: []ToolCall{{ID: "call_1", Name: "get_recommendations", Arguments: string(args)}}},
		{Content: "I found two jackets you might like."},
	}}
	orch, _ := newTestOrchestrator(model)

	reply, err := orch.Chat(context.Background(), "user_12345", "show me blue jackets")
	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if reply != "I found two jackets you might like." {
		t.Errorf("Unexpected reply %q", reply)
	}

	// Second model call must include the tool result keyed by call ID.
	if len(model.requests) != 2 {
		t.Fatalf("Expected 2 model calls, got %d", len(model.requests))
	}
	second := model.requests[1]
	last := second.Messages[len(second.Messages)-1]
	if last.Role != RoleTool || last.ToolCallID != "call_1" {
		t.Errorf("Expected tool result for call_1, got role=%s id=%s", last.Role, last.ToolCallID)
	}
	if !strings.Contains(last.Content, "SKU_") {
		t.Errorf("Tool result should contain catalog products, got %q", last.Content)
	}
}

func TestChat_UnknownToolFeedsErrorBack(t *testing.T) {
	model := &fakeModel{script: []*Response{
		{ToolCalls: []ToolCall{{ID: "call_1", Name: "teleport_item", Arguments: "{}"}}},
		{Content: "That is not something I can do."},
	}}
	orch, _ := newTestOrchestrator(model)

	reply, err := orch.Chat(context.Background(), "user_12345", "teleport my jacket")
	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if reply == "" {
		t.Error("Expected a reply")
	}

	second := model.requests[1]
	last := second.Messages[len(second.Messages)-1]
	if !strings.Contains(last.Content, "error") {
		t.Errorf("Expected error payload in tool result, got %q", last.Content)
	}
}

func TestChat_ToolLoopIsBounded(t *testing.T) {
	// A model that keeps calling tools forever must still terminate.
	script := make([]*Response, maxToolIterations+2)
	for i := range script {
		script[i] = &Response{ToolCalls: []ToolCall{{ID: "call_x", Name: "get_order_status", Arguments: `{"order_id":"ORD-12345"}`}}}
	}
	model := &fakeModel{script: script}
	orch, _ := newTestOrchestrator(model)

	reply, err := orch.Chat(context.Background(), "user_12345", "where is my order")
	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if reply == "" {
		t.Error("Expected a fallback reply")
	}
	if len(model.requests) != maxToolIterations {
		t.Errorf("Expected exactly %d model calls, got %d", maxToolIterations, len(model.requests))
	}
}

func TestChat_HistoryPersistsAcrossTurns(t *testing.T) {
	model := &fakeModel{script: []*Response{
		{Content: "Noted, you like blue."},
		{Content: "Blue it is."},
	}}
	orch, history := newTestOrchestrator(model)
	ctx := context.Background()

	if _, err := orch.Chat(ctx, "user_12345", "I like blue"); err != nil {
		t.Fatalf("First turn failed: %v", err)
	}
	if _, err := orch.Chat(ctx, "user_12345", "remember that"); err != nil {
		t.Fatalf("Second turn failed: %v", err)
	}

	// The second model call replays the first exchange.
	second := model.requests[1]
	found := false
	for _, msg := range second.Messages {
		if msg.Role == RoleUser && msg.Content == "I like blue" {
			found = true
		}
	}
	if !found {
		t.Error("Expected first user turn in second request history")
	}

	raw, err := history.Get(ctx, "chat:user_12345")
	if err != nil {
		t.Fatalf("Expected stored history: %v", err)
	}
	var stored []Message
	if err := json.Unmarshal(raw, &stored); err != nil {
		t.Fatalf("Stored history is not valid JSON: %v", err)
	}
	if len(stored) != 4 {
		t.Errorf("Expected 4 stored turns, got %d", len(stored))
	}
}
