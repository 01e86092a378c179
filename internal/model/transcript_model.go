package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Transcript mirrors the externally-owned transcripts table. The JSONB
// columns hold the analysis payloads written by the scoring worker; their
// shapes are decoded defensively by the fetchers.
type Transcript struct {
	Id                uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title             string         `gorm:"type:varchar(255);not null"`
	UserId            uuid.UUID      `gorm:"type:uuid;not null;index"`
	CompanyId         *uuid.UUID     `gorm:"type:uuid;index"`
	Score             *int           `gorm:"type:int"`
	DealSignal        string         `gorm:"type:varchar(64)"`
	Summary           string         `gorm:"type:text"`
	Participants      datatypes.JSON `gorm:"type:jsonb"`
	Analysis          datatypes.JSON `gorm:"type:jsonb"`
	RiskAlerts        datatypes.JSON `gorm:"type:jsonb"`
	QualificationGaps datatypes.JSON `gorm:"type:jsonb"`
	Lines             datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt         time.Time      `gorm:"autoCreateTime"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime"`
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

func (Transcript) TableName() string {
	return "transcripts"
}
