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

type TeamRoleRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TeamMapper
}

func NewTeamRoleRepository(db *gorm.DB) contract.TeamRoleRepository {
	return &TeamRoleRepositoryImpl{
		db:     db,
		mapper: mapper.NewTeamMapper(),
	}
}

func (r *TeamRoleRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TeamRoleRepositoryImpl) Create(ctx context.Context, role *entity.TeamRole) error {
	m := r.mapper.RoleToModel(role)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*role = *r.mapper.RoleToEntity(m)
	return nil
}

func (r *TeamRoleRepositoryImpl) Update(ctx context.Context, role *entity.TeamRole) error {
	m := r.mapper.RoleToModel(role)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*role = *r.mapper.RoleToEntity(m)
	return nil
}

func (r *TeamRoleRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TeamRole, error) {
	var m model.TeamRole
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.RoleToEntity(&m), nil
}

func (r *TeamRoleRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TeamRole, error) {
	var models []*model.TeamRole
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.TeamRole, len(models))
	for i, m := range models {
		entities[i] = r.mapper.RoleToEntity(m)
	}
	return entities, nil
}
