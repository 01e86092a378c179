package contract

import (
	"context"

	"sales-intel-be/internal/entity"
	"sales-intel-be/internal/repository/specification"
)

type CoachingNoteRepository interface {
	Create(ctx context.Context, note *entity.CoachingNote) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CoachingNote, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CoachingNote, error)
}
