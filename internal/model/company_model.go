package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Company struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string         `gorm:"type:varchar(255);not null"`
	Domain     string         `gorm:"type:varchar(255)"`
	Goal       string         `gorm:"type:text"`
	PainPoints datatypes.JSON `gorm:"type:jsonb"`
	Contacts   datatypes.JSON `gorm:"type:jsonb"`
	AtRisk     bool           `gorm:"default:false"`
	UserId     uuid.UUID      `gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (Company) TableName() string {
	return "companies"
}
