package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CompanyICP holds the ideal-customer-profile enrichment produced by the
// onboarding wizard. Personas is a JSONB array of buyer personas.
type CompanyICP struct {
	Id               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyId        uuid.UUID      `gorm:"type:uuid;not null;index"`
	ValueProposition string         `gorm:"type:text"`
	Products         datatypes.JSON `gorm:"type:jsonb"`
	IcpAttributes    datatypes.JSON `gorm:"type:jsonb"`
	Personas         datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt        time.Time      `gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime"`
}

func (CompanyICP) TableName() string {
	return "company_icps"
}
