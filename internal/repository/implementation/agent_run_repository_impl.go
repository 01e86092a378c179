package implementation

import (
	"context"
	"errors"

	"sales-intel-be/internal/entity"
	"sales-intel-be/internal/mapper"
	"sales-intel-be/internal/model"
	"sales-intel-be/internal/repository/contract"
	"sales-intel-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AgentRunRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AgentRunMapper
}

func NewAgentRunRepository(db *gorm.DB) contract.AgentRunRepository {
	return &AgentRunRepositoryImpl{
		db:     db,
		mapper: mapper.NewAgentRunMapper(),
	}
}

func (r *AgentRunRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AgentRunRepositoryImpl) Create(ctx context.Context, run *entity.AgentRun) error {
	m := r.mapper.ToModel(run)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*run = *r.mapper.ToEntity(m)
	return nil
}

func (r *AgentRunRepositoryImpl) Update(ctx context.Context, run *entity.AgentRun) error {
	m := r.mapper.ToModel(run)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*run = *r.mapper.ToEntity(m)
	return nil
}

func (r *AgentRunRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AgentRun, error) {
	var m model.AgentRun
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AgentRunRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AgentRun, error) {
	var models []*model.AgentRun
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.AgentRun, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *AgentRunRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.AgentRun{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// UnsetBestForTranscript clears the flag so at most one run per call stays marked.
func (r *AgentRunRepositoryImpl) UnsetBestForTranscript(ctx context.Context, transcriptId uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.AgentRun{}).
		Where("transcript_id = ?", transcriptId).
		Where("is_best = ?", true).
		Update("is_best", false).Error
}
