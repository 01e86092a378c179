package mapper

import (
	"encoding/json"
	"time"

	"sales-intel-be/internal/entity"
	"sales-intel-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CompanyMapper struct{}

func NewCompanyMapper() *CompanyMapper {
	return &CompanyMapper{}
}

func (m *CompanyMapper) ToEntity(c *model.Company) *entity.Company {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		u := c.UpdatedAt
		updatedAt = &u
	}

	return &entity.Company{
		Id:         c.Id,
		Name:       c.Name,
		Domain:     c.Domain,
		Goal:       c.Goal,
		PainPoints: json.RawMessage(c.PainPoints),
		Contacts:   json.RawMessage(c.Contacts),
		AtRisk:     c.AtRisk,
		UserId:     c.UserId,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  updatedAt,
		IsDeleted:  c.DeletedAt.Valid,
	}
}

func (m *CompanyMapper) ToModel(c *entity.Company) *model.Company {
	if c == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if c.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Company{
		Id:         c.Id,
		Name:       c.Name,
		Domain:     c.Domain,
		Goal:       c.Goal,
		PainPoints: datatypes.JSON(c.PainPoints),
		Contacts:   datatypes.JSON(c.Contacts),
		AtRisk:     c.AtRisk,
		UserId:     c.UserId,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
	}
}
