package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByCompany scopes calls to one account
type ByCompany struct {
	CompanyId uuid.UUID
}

func (s ByCompany) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("company_id = ?", s.CompanyId)
}

// OwnedByUsers scopes rows to any member of a set of owners
type OwnedByUsers struct {
	UserIds []uuid.UUID
}

func (s OwnedByUsers) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id IN ?", s.UserIds)
}

// Scored keeps only calls that have been analyzed
type Scored struct{}

func (s Scored) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("score IS NOT NULL")
}
