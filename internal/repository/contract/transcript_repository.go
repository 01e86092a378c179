package contract

import (
	"context"

	"sales-intel-be/internal/entity"
	"sales-intel-be/internal/repository/specification"

	"github.com/google/uuid"
)

type TranscriptRepository interface {
	Create(ctx context.Context, transcript *entity.Transcript) error
	Update(ctx context.Context, transcript *entity.Transcript) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Transcript, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Transcript, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
