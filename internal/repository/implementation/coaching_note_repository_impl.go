package implementation

import (
	"context"
	"errors"

	"sales-intel-be/internal/entity"
	"sales-intel-be/internal/mapper"
	"sales-intel-be/internal/model"
	"sales-intel-be/internal/repository/contract"
	"sales-intel-be/internal/repository/specification"

	"gorm.io/gorm"
)

type CoachingNoteRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TeamMapper
}

func NewCoachingNoteRepository(db *gorm.DB) contract.CoachingNoteRepository {
	return &CoachingNoteRepositoryImpl{
		db:     db,
		mapper: mapper.NewTeamMapper(),
	}
}

func (r *CoachingNoteRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CoachingNoteRepositoryImpl) Create(ctx context.Context, note *entity.CoachingNote) error {
	m := r.mapper.CoachingNoteToModel(note)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*note = *r.mapper.CoachingNoteToEntity(m)
	return nil
}

func (r *CoachingNoteRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CoachingNote, error) {
	var m model.CoachingNote
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.CoachingNoteToEntity(&m), nil
}

func (r *CoachingNoteRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CoachingNote, error) {
	var models []*model.CoachingNote
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.CoachingNote, len(models))
	for i, m := range models {
		entities[i] = r.mapper.CoachingNoteToEntity(m)
	}
	return entities, nil
}
