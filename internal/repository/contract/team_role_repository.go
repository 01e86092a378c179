package contract

import (
	"context"

	"sales-intel-be/internal/entity"
	"sales-intel-be/internal/repository/specification"
)

type TeamRoleRepository interface {
	Create(ctx context.Context, role *entity.TeamRole) error
	Update(ctx context.Context, role *entity.TeamRole) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TeamRole, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TeamRole, error)
}
