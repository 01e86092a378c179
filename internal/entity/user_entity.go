package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id                    uuid.UUID
	Email                 string
	FullName              string
	SalesMotion           string
	TeamId                *uuid.UUID
	AiDailyRequests       int
	AiDailyTokens         int
	AiDailyUsageLastReset time.Time
	CreatedAt             time.Time
	UpdatedAt             *time.Time
}
