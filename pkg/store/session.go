package store

import (
	"time"

	"github.com/google/uuid"
)

// ChatTurn is a single message in a copilot conversation.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatSession holds the short lived conversation state for one user on one
// page. Sessions live in process memory only.
type ChatSession struct {
	ID        string
	UserId    uuid.UUID
	PageType  string
	Turns     []ChatTurn
	CreatedAt time.Time
	UpdatedAt time.Time
}
