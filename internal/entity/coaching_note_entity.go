package entity

import (
	"time"

	"github.com/google/uuid"
)

type CoachingNote struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	TranscriptId *uuid.UUID
	Note         string
	CreatedAt    time.Time
}
