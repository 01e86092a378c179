package contract

import (
	"context"

	"sales-intel-be/internal/entity"
	"sales-intel-be/internal/repository/specification"

	"github.com/google/uuid"
)

type AgentRunRepository interface {
	Create(ctx context.Context, run *entity.AgentRun) error
	Update(ctx context.Context, run *entity.AgentRun) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AgentRun, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AgentRun, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	UnsetBestForTranscript(ctx context.Context, transcriptId uuid.UUID) error
}
