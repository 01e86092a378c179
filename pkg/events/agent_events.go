package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeAgentRunCompleted = "agent.run.completed"
	TypeAgentUsageTracked = "agent.usage.tracked"
)

// NewAgentRunCompleted is emitted after a run record is persisted.
func NewAgentRunCompleted(runId uuid.UUID, agentType string, status string, totalTokens int, cost float64) Event {
	return BaseEvent{
		Type: TypeAgentRunCompleted,
		Data: map[string]interface{}{
			"run_id":       runId.String(),
			"agent_type":   agentType,
			"status":       status,
			"total_tokens": totalTokens,
			"cost":         cost,
		},
		OccurredAt: time.Now(),
	}
}

// NewAgentUsageTracked is emitted when a user's daily counters are bumped.
func NewAgentUsageTracked(userId uuid.UUID, requests int, tokens int, model string) Event {
	return BaseEvent{
		Type: TypeAgentUsageTracked,
		Data: map[string]interface{}{
			"user_id":  userId.String(),
			"requests": requests,
			"tokens":   tokens,
			"model":    model,
		},
		OccurredAt: time.Now(),
	}
}
