package entity

import (
	"time"

	"github.com/google/uuid"
)

type AgentRun struct {
	Id               uuid.UUID
	AgentType        string
	Prompt           string
	SystemPrompt     string
	UserMessage      string
	Output           string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Cost             float64
	TranscriptId     *uuid.UUID
	CompanyId        *uuid.UUID
	UserId           *uuid.UUID
	ContextType      string
	DurationMs       int64
	Status           string
	ErrorMessage     *string
	IsBest           bool
	CreatedAt        time.Time
}
