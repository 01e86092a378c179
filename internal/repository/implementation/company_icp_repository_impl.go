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

type CompanyICPRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.IcpMapper
}

func NewCompanyICPRepository(db *gorm.DB) contract.CompanyICPRepository {
	return &CompanyICPRepositoryImpl{
		db:     db,
		mapper: mapper.NewIcpMapper(),
	}
}

func (r *CompanyICPRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CompanyICPRepositoryImpl) Create(ctx context.Context, icp *entity.CompanyICP) error {
	m := r.mapper.ToModel(icp)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*icp = *r.mapper.ToEntity(m)
	return nil
}

func (r *CompanyICPRepositoryImpl) Update(ctx context.Context, icp *entity.CompanyICP) error {
	m := r.mapper.ToModel(icp)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*icp = *r.mapper.ToEntity(m)
	return nil
}

func (r *CompanyICPRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CompanyICP, error) {
	var m model.CompanyICP
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CompanyICPRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CompanyICP, error) {
	var models []*model.CompanyICP
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.CompanyICP, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
