package dto

import (
	"time"

	"sales-intel-be/pkg/store"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content" validate:"required"`
}

// ChatRequest mirrors the dashboard's chat wire format. Context fields are
// not mutually exclusive; the mode dispatcher resolves precedence.
type ChatRequest struct {
	Messages          []ChatMessage     `json:"messages" validate:"required,min=1,dive"`
	Model             string            `json:"model,omitempty"`
	ContextType       string            `json:"contextType,omitempty"`
	ContextId         *uuid.UUID        `json:"contextId,omitempty"`
	UserId            *uuid.UUID        `json:"userId,omitempty"`
	UseSemanticSearch bool              `json:"useSemanticSearch,omitempty"`
	PageType          string            `json:"pageType,omitempty"`
	PageContext       store.PageContext `json:"pageContext,omitempty"`
}

// StreamEvent is one server-sent event in the chat response stream.
type StreamEvent struct {
	Type    string       `json:"type"` // "sources", "delta", "error", "done"
	Mode    string       `json:"mode,omitempty"`
	Delta   string       `json:"delta,omitempty"`
	Message string       `json:"message,omitempty"`
	Usage   *StreamUsage `json:"usage,omitempty"`
}

// StreamUsage is the token accounting attached to the final "done" event.
type StreamUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type RunResponse struct {
	Id               uuid.UUID  `json:"id"`
	AgentType        string     `json:"agent_type"`
	Model            string     `json:"model"`
	UserMessage      string     `json:"user_message"`
	Output           string     `json:"output"`
	PromptTokens     int        `json:"prompt_tokens"`
	CompletionTokens int        `json:"completion_tokens"`
	TotalTokens      int        `json:"total_tokens"`
	Cost             float64    `json:"cost"`
	ContextType      string     `json:"context_type"`
	TranscriptId     *uuid.UUID `json:"transcript_id,omitempty"`
	CompanyId        *uuid.UUID `json:"company_id,omitempty"`
	DurationMs       int64      `json:"duration_ms"`
	Status           string     `json:"status"`
	ErrorMessage     *string    `json:"error_message,omitempty"`
	IsBest           bool       `json:"is_best"`
	CreatedAt        time.Time  `json:"created_at"`
}

type ListRunsRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}
