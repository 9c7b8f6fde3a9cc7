package usecase

import (
	"context"
	"strings"
	"time"

	"account-service/internal/data/entity"
	"account-service/internal/data/repository"
	"account-service/internal/dto/request"
	"account-service/internal/dto/response"
	"account-service/pkg/utils"

	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, accountID int64) (*response.AccountResponse, error)
	ListAccounts(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.AccountResponse], error)
	UpdateAccount(ctx context.Context, accountID int64, req *request.UpdateAccountRequest) (*response.AccountResponse, error)
	SoftDelete(ctx context.Context, accountID int64) error
}

type userService struct {
	accountRepo repository.AccountRepository
	log         *zap.Logger
	now         func() time.Time
}

func NewUserService(accountRepo repository.AccountRepository, log *zap.Logger) UserService {
	return &userService{
		accountRepo: accountRepo,
		log:         log.With(zap.String("service", "user")),
		now:         time.Now,
	}
}

func (us *userService) GetProfile(ctx context.Context, accountID int64) (*response.AccountResponse, error) {
	account, err := us.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, errInternal("failed to get profile", err)
	}
	if account == nil || account.IsDeleted() {
		return nil, errNotFound("account not found")
	}

	resp := response.AccountToResponse(account)
	return &resp, nil
}

func (us *userService) ListAccounts(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.AccountResponse], error) {
	req.Page, req.PerPage = utils.NormalizePage(req.Page, req.PerPage)

	accounts, err := us.accountRepo.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, errInternal("failed to get accounts", err)
	}

	total, err := us.accountRepo.CountAll(ctx)
	if err != nil {
		return nil, errInternal("failed to count accounts", err)
	}

	items := make([]response.AccountResponse, len(accounts))
	for i, account := range accounts {
		items[i] = response.AccountToResponse(account)
	}

	us.log.Info("Accounts retrieved",
		zap.Int("count", len(accounts)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
		zap.Int("per_page", req.PerPage),
	)

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

// UpdateAccount changes profile fields and moves status between active and suspended.
// Pending accounts can only become active through OTP verification.
func (us *userService) UpdateAccount(ctx context.Context, accountID int64, req *request.UpdateAccountRequest) (*response.AccountResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		us.log.Warn("Update account validation failed", zap.Any("errors", errs))
		return nil, errValidation(errs)
	}
	if req.Empty() {
		return nil, errValidation(map[string]string{"body": "At least one field is required"})
	}

	account, err := us.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, errInternal("failed to get account", err)
	}
	if account == nil || account.IsDeleted() {
		return nil, errNotFound("account not found")
	}

	if name := optional(req.Name); name != "" {
		account.Name = name
	}
	if lastName := optional(req.LastName); lastName != "" {
		account.LastName = lastName
	}
	if raw := optional(req.Birthdate); raw != "" {
		birthdate, err := parseBirthdate(&raw)
		if err != nil {
			return nil, errValidation(map[string]string{"birthdate": "Must be a date in YYYY-MM-DD format"})
		}
		account.Birthdate = birthdate
	}
	if gender := optional(req.Gender); gender != "" {
		account.Gender = entity.Gender(gender)
	}

	previous := account.Status
	if status := entity.AccountStatus(optional(req.Status)); status != "" && status != account.Status {
		if account.Status == entity.StatusPending {
			return nil, errConflict("account is pending verification")
		}
		account.Status = status
	}

	account.UpdatedAt = us.now()
	if _, err := us.accountRepo.Save(ctx, account); err != nil {
		return nil, errInternal("failed to update account", err)
	}

	us.log.Info("Account updated",
		zap.Int64("account_id", account.ID),
		zap.String("status", string(account.Status)),
		zap.String("previous_status", string(previous)),
	)

	resp := response.AccountToResponse(account)
	return &resp, nil
}

func optional(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}

// SoftDelete flips the status to deleted. Rows are never removed.
func (us *userService) SoftDelete(ctx context.Context, accountID int64) error {
	account, err := us.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return errInternal("failed to get account", err)
	}
	if account == nil || account.IsDeleted() {
		return errNotFound("account not found")
	}

	account.Status = entity.StatusDeleted
	account.ClearOTP()
	account.UpdatedAt = us.now()

	if _, err := us.accountRepo.Save(ctx, account); err != nil {
		return errInternal("failed to delete account", err)
	}

	us.log.Info("Account deleted", zap.Int64("account_id", account.ID), zap.String("email", account.Email))
	return nil
}
