package entity

import (
	"time"

	"github.com/google/uuid"
)

type TeamRole struct {
	Id             uuid.UUID
	TeamId         uuid.UUID
	UserId         uuid.UUID
	Role           string
	DepartmentRole *string
	Description    *string
	CreatedAt      time.Time
}
