package unitofwork

import (
	"context"

	"sales-intel-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	TranscriptRepository() contract.TranscriptRepository
	CompanyRepository() contract.CompanyRepository
	TeamRoleRepository() contract.TeamRoleRepository
	CompanyICPRepository() contract.CompanyICPRepository
	CoachingNoteRepository() contract.CoachingNoteRepository
	TranscriptEmbeddingRepository() contract.TranscriptEmbeddingRepository
	AgentRunRepository() contract.AgentRunRepository
}
