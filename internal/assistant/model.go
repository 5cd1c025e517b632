package assistant

import "context"

// Message roles understood by chat models.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is one normalized chat turn. Assistant turns may carry tool calls
// and tool turns carry the matching call ID.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
}

// ToolCall is a function invocation requested by the model. Arguments is the
// raw JSON payload produced by the model.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolDef describes a callable tool in JSON schema form.
type ToolDef struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Request is a complete model invocation: conversation so far plus the
// tools the model may call.
type Request struct {
	Messages []Message
	Tools    []ToolDef
}

// Response is what the model produced: free text, tool calls, or both.
type Response struct {
	Content   string
	ToolCalls []ToolCall
}

// ChatModel defines the interface for a chat completion backend
type ChatModel interface {
	Complete(ctx context.Context, req *Request) (*Response, error)
}
