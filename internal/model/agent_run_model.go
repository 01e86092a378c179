package model

import (
	"time"

	"github.com/google/uuid"
)

// AgentRun is the append-mostly log of every agent invocation. Rows are
// written once after the model call settles; only IsBest is mutable later.
type AgentRun struct {
	Id               uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AgentType        string     `gorm:"type:varchar(64);not null;index"`
	Prompt           string     `gorm:"type:text"`
	SystemPrompt     string     `gorm:"type:text"`
	UserMessage      string     `gorm:"type:text"`
	Output           string     `gorm:"type:text"`
	Model            string     `gorm:"type:varchar(128)"`
	PromptTokens     int        `gorm:"default:0"`
	CompletionTokens int        `gorm:"default:0"`
	TotalTokens      int        `gorm:"default:0"`
	Cost             float64    `gorm:"type:numeric(12,6);default:0"`
	TranscriptId     *uuid.UUID `gorm:"type:uuid;index"`
	CompanyId        *uuid.UUID `gorm:"type:uuid;index"`
	UserId           *uuid.UUID `gorm:"type:uuid;index"`
	ContextType      string     `gorm:"type:varchar(32)"`
	DurationMs       int64      `gorm:"default:0"`
	Status           string     `gorm:"type:varchar(16);not null;index"`
	ErrorMessage     *string    `gorm:"type:text"`
	IsBest           bool       `gorm:"default:false"`
	CreatedAt        time.Time  `gorm:"autoCreateTime;index"`
}

func (AgentRun) TableName() string {
	return "agent_runs"
}
