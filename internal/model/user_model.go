package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	Id                    uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email                 string         `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName              string         `gorm:"type:varchar(255)"`
	SalesMotion           string         `gorm:"type:text"`
	TeamId                *uuid.UUID     `gorm:"type:uuid;index"`
	AiDailyRequests       int            `gorm:"default:0"`
	AiDailyTokens         int            `gorm:"default:0"`
	AiDailyUsageLastReset time.Time      `gorm:"autoCreateTime"`
	CreatedAt             time.Time      `gorm:"autoCreateTime"`
	UpdatedAt             time.Time      `gorm:"autoUpdateTime"`
	DeletedAt             gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
