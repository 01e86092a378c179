package contract

import (
	"context"

	"sales-intel-be/internal/entity"
	"sales-intel-be/internal/repository/specification"
)

type CompanyICPRepository interface {
	Create(ctx context.Context, icp *entity.CompanyICP) error
	Update(ctx context.Context, icp *entity.CompanyICP) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CompanyICP, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CompanyICP, error)
}
