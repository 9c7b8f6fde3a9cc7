package usecase

import (
	"context"
	"slices"

	"account-service/internal/data/entity"
	"account-service/internal/data/repository"

	"go.uber.org/zap"
)

type RoleService interface {
	// EnsureDefaults seeds reference roles. Run once before serving traffic.
	EnsureDefaults(ctx context.Context) error
}

type roleService struct {
	roleRepo    repository.RoleRepository
	defaultRole string
	log         *zap.Logger
}

func NewRoleService(roleRepo repository.RoleRepository, defaultRole string, log *zap.Logger) RoleService {
	return &roleService{
		roleRepo:    roleRepo,
		defaultRole: defaultRole,
		log:         log.With(zap.String("service", "role")),
	}
}

func (rs *roleService) EnsureDefaults(ctx context.Context) error {
	names := slices.Clone(entity.DefaultRoles)
	if rs.defaultRole != "" && !slices.Contains(names, rs.defaultRole) {
		names = append(names, rs.defaultRole)
	}

	if err := rs.roleRepo.EnsureDefaults(ctx, names); err != nil {
		return errInternal("failed to seed roles", err)
	}

	rs.log.Info("Roles ensured", zap.Strings("roles", names))
	return nil
}
