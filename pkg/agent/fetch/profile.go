package fetch

import (
	"context"

	"sales-intel-be/internal/pkg/logger"
	"sales-intel-be/internal/repository/specification"
	"sales-intel-be/internal/repository/unitofwork"
	"sales-intel-be/pkg/store"

	"github.com/google/uuid"
)

// ProfileFetcher resolves the requesting rep: sales motion plus team role
// entries (system role and optional department role, each optionally
// described).
type ProfileFetcher struct {
	factory unitofwork.RepositoryFactory
	log     logger.ILogger
}

func NewProfileFetcher(factory unitofwork.RepositoryFactory, log logger.ILogger) *ProfileFetcher {
	return &ProfileFetcher{
		factory: factory,
		log:     log,
	}
}

func (f *ProfileFetcher) Fetch(ctx context.Context, userId uuid.UUID) *store.RepProfile {
	uow := f.factory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil || user == nil {
		f.log.Warn("fetch", "rep profile unavailable", map[string]interface{}{
			"user_id": userId.String(),
			"error":   errString(err),
		})
		return nil
	}

	profile := &store.RepProfile{
		SalesMotion: user.SalesMotion,
	}

	// Roles are best effort, the sales motion alone is still useful
	roles, err := uow.TeamRoleRepository().FindAll(ctx, specification.UserOwnedBy{UserId: userId})
	if err != nil {
		f.log.Warn("fetch", "team roles unavailable", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
		return profile
	}

	for _, role := range roles {
		entry := store.TeamRoleEntry{Role: role.Role}
		if role.DepartmentRole != nil {
			entry.DepartmentRole = *role.DepartmentRole
		}
		if role.Description != nil {
			entry.Description = *role.Description
		}
		profile.Roles = append(profile.Roles, entry)
	}
	return profile
}
