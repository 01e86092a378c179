package mapper

import (
	"sales-intel-be/internal/entity"
	"sales-intel-be/internal/model"
)

type AgentRunMapper struct{}

func NewAgentRunMapper() *AgentRunMapper {
	return &AgentRunMapper{}
}

func (m *AgentRunMapper) ToEntity(r *model.AgentRun) *entity.AgentRun {
	if r == nil {
		return nil
	}
	return &entity.AgentRun{
		Id:               r.Id,
		AgentType:        r.AgentType,
		Prompt:           r.Prompt,
		SystemPrompt:     r.SystemPrompt,
		UserMessage:      r.UserMessage,
		Output:           r.Output,
		Model:            r.Model,
		PromptTokens:     r.PromptTokens,
		CompletionTokens: r.CompletionTokens,
		TotalTokens:      r.TotalTokens,
		Cost:             r.Cost,
		TranscriptId:     r.TranscriptId,
		CompanyId:        r.CompanyId,
		UserId:           r.UserId,
		ContextType:      r.ContextType,
		DurationMs:       r.DurationMs,
		Status:           r.Status,
		ErrorMessage:     r.ErrorMessage,
		IsBest:           r.IsBest,
		CreatedAt:        r.CreatedAt,
	}
}

func (m *AgentRunMapper) ToModel(r *entity.AgentRun) *model.AgentRun {
	if r == nil {
		return nil
	}
	return &model.AgentRun{
		Id:               r.Id,
		AgentType:        r.AgentType,
		Prompt:           r.Prompt,
		SystemPrompt:     r.SystemPrompt,
		UserMessage:      r.UserMessage,
		Output:           r.Output,
		Model:            r.Model,
		PromptTokens:     r.PromptTokens,
		CompletionTokens: r.CompletionTokens,
		TotalTokens:      r.TotalTokens,
		Cost:             r.Cost,
		TranscriptId:     r.TranscriptId,
		CompanyId:        r.CompanyId,
		UserId:           r.UserId,
		ContextType:      r.ContextType,
		DurationMs:       r.DurationMs,
		Status:           r.Status,
		ErrorMessage:     r.ErrorMessage,
		IsBest:           r.IsBest,
		CreatedAt:        r.CreatedAt,
	}
}
