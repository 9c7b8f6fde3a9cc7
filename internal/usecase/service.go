package usecase

import (
	"account-service/internal/data/repository"
	"account-service/internal/notify"
	"account-service/pkg/security"
	"account-service/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth AuthService
	User UserService
	Role RoleService
}

func NewService(
	repo *repository.Repository,
	tokens *security.TokenIssuer,
	sender notify.Sender,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth: NewAuthService(repo, tokens, sender, config, log),
		User: NewUserService(repo.Account, log),
		Role: NewRoleService(repo.Role, config.App.DefaultRole, log),
	}
}
