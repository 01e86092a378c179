package unitofwork

import (
	"context"
	"fmt"

	"sales-intel-be/internal/repository/contract"
	"sales-intel-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.getDB())
}

func (u *UnitOfWorkImpl) TranscriptRepository() contract.TranscriptRepository {
	return implementation.NewTranscriptRepository(u.getDB())
}

func (u *UnitOfWorkImpl) CompanyRepository() contract.CompanyRepository {
	return implementation.NewCompanyRepository(u.getDB())
}

func (u *UnitOfWorkImpl) TeamRoleRepository() contract.TeamRoleRepository {
	return implementation.NewTeamRoleRepository(u.getDB())
}

func (u *UnitOfWorkImpl) CompanyICPRepository() contract.CompanyICPRepository {
	return implementation.NewCompanyICPRepository(u.getDB())
}

func (u *UnitOfWorkImpl) CoachingNoteRepository() contract.CoachingNoteRepository {
	return implementation.NewCoachingNoteRepository(u.getDB())
}

func (u *UnitOfWorkImpl) TranscriptEmbeddingRepository() contract.TranscriptEmbeddingRepository {
	return implementation.NewTranscriptEmbeddingRepository(u.getDB())
}

func (u *UnitOfWorkImpl) AgentRunRepository() contract.AgentRunRepository {
	return implementation.NewAgentRunRepository(u.getDB())
}
