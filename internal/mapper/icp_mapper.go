package mapper

import (
	"encoding/json"

	"sales-intel-be/internal/entity"
	"sales-intel-be/internal/model"

	"gorm.io/datatypes"
)

type IcpMapper struct{}

func NewIcpMapper() *IcpMapper {
	return &IcpMapper{}
}

func (m *IcpMapper) ToEntity(c *model.CompanyICP) *entity.CompanyICP {
	if c == nil {
		return nil
	}
	return &entity.CompanyICP{
		Id:               c.Id,
		CompanyId:        c.CompanyId,
		ValueProposition: c.ValueProposition,
		Products:         json.RawMessage(c.Products),
		IcpAttributes:    json.RawMessage(c.IcpAttributes),
		Personas:         json.RawMessage(c.Personas),
		CreatedAt:        c.CreatedAt,
	}
}

func (m *IcpMapper) ToModel(c *entity.CompanyICP) *model.CompanyICP {
	if c == nil {
		return nil
	}
	return &model.CompanyICP{
		Id:               c.Id,
		CompanyId:        c.CompanyId,
		ValueProposition: c.ValueProposition,
		Products:         datatypes.JSON(c.Products),
		IcpAttributes:    datatypes.JSON(c.IcpAttributes),
		Personas:         datatypes.JSON(c.Personas),
		CreatedAt:        c.CreatedAt,
	}
}
