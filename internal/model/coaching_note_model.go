package model

import (
	"time"

	"github.com/google/uuid"
)

type CoachingNote struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID  `gorm:"type:uuid;not null;index"`
	TranscriptId *uuid.UUID `gorm:"type:uuid;index"`
	Note         string     `gorm:"type:text;not null"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
}

func (CoachingNote) TableName() string {
	return "coaching_notes"
}
