package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Company struct {
	Id         uuid.UUID
	Name       string
	Domain     string
	Goal       string
	PainPoints json.RawMessage
	Contacts   json.RawMessage
	AtRisk     bool
	UserId     uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	IsDeleted  bool
}
