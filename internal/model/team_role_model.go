package model

import (
	"time"

	"github.com/google/uuid"
)

type TeamRole struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TeamId         uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId         uuid.UUID `gorm:"type:uuid;not null;index"`
	Role           string    `gorm:"type:varchar(64);not null"` // system role: admin, manager, rep
	DepartmentRole *string   `gorm:"type:varchar(128)"`         // free-form custom role
	Description    *string   `gorm:"type:text"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (TeamRole) TableName() string {
	return "team_roles"
}
