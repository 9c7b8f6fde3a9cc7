package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"account-service/internal/data/entity"
	"account-service/internal/data/repository"
	"account-service/internal/dto/request"
	"account-service/internal/dto/response"
	"account-service/internal/notify"
	"account-service/pkg/security"
	"account-service/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AccountResponse, error)
	VerifyOtp(ctx context.Context, req *request.VerifyOtpRequest) error
	Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error)
	RequestPasswordRecovery(ctx context.Context, req *request.RecoveryRequest) error
	ValidateRecoveryOtp(ctx context.Context, req *request.ValidateRecoveryOtpRequest) (*response.RecoveryTicketResponse, error)
	ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error
	CheckAccountExists(ctx context.Context, req *request.ExistsRequest) (*response.ExistsResponse, error)
	Me(ctx context.Context, accountID int64) (*response.AccountResponse, error)
}

type authService struct {
	repo   *repository.Repository
	hasher *security.PasswordHasher
	otp    *security.OTPGenerator
	tokens *security.TokenIssuer
	sender notify.Sender
	config *utils.Config
	log    *zap.Logger

	now       func() time.Time
	newTicket func() string
}

func NewAuthService(
	repo *repository.Repository,
	tokens *security.TokenIssuer,
	sender notify.Sender,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:      repo,
		hasher:    security.NewPasswordHasher(config.Security.BcryptCost),
		otp:       security.NewOTPGenerator(config.OTP.Length, config.OTP.TTL()),
		tokens:    tokens,
		sender:    sender,
		config:    config,
		log:       log.With(zap.String("service", "auth")),
		now:       time.Now,
		newTicket: uuid.NewString,
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AccountResponse, error) {
	// 1. Validate input
	req.Email = normalizeEmail(req.Email)
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, errValidation(errs)
	}

	// 2. Fast-path duplicate check; the unique constraint is the real guard
	existing, err := s.repo.Account.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, errInternal("failed to check email", err)
	}
	if existing != nil {
		s.log.Info("Register rejected, email taken", zap.String("email", req.Email))
		return nil, errConflict("email already registered")
	}

	// 3. Resolve role
	role, err := s.resolveRole(ctx, req.RoleID)
	if err != nil {
		return nil, err
	}

	birthdate, err := parseBirthdate(req.Birthdate)
	if err != nil {
		return nil, errValidation(map[string]string{"birthdate": "Must be a date in YYYY-MM-DD format"})
	}

	// 4. Hash password
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, errInternal("failed to process password", err)
	}

	// 5. Build pending account with OTP slot filled
	now := s.now()
	account := s.repo.Account.Create(entity.Account{
		Base:         entity.Base{CreatedAt: now, UpdatedAt: now},
		Email:        req.Email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		LastName:     strings.TrimSpace(req.LastName),
		Birthdate:    birthdate,
		Gender:       entity.Gender(req.Gender),
		Status:       entity.StatusPending,
		RoleID:       &role.ID,
	})

	code, err := s.issueOTP(account, now)
	if err != nil {
		return nil, err
	}

	// 6. Save
	saved, err := s.repo.Account.Save(ctx, account)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			s.log.Info("Register lost race on email", zap.String("email", req.Email))
			return nil, errConflict("email already registered")
		}
		return nil, errInternal("failed to create account", err)
	}
	saved.RoleName = role.Name

	s.log.Info("Account registered",
		zap.Int64("account_id", saved.ID),
		zap.String("email", saved.Email),
		zap.String("role", role.Name))

	// 7. Send verification code; the pending account stays on failure
	if err := s.sendOTP(ctx, saved, code, notify.PurposeVerification); err != nil {
		return nil, err
	}

	resp := response.AccountToResponse(saved)
	if s.config.App.ExposeOTP {
		resp.OTP = code
	}

	return &resp, nil
}

func (s *authService) VerifyOtp(ctx context.Context, req *request.VerifyOtpRequest) error {
	req.Email = normalizeEmail(req.Email)
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Verify OTP validation failed", zap.Any("errors", errs))
		return errValidation(errs)
	}

	account, err := s.findLiveAccount(ctx, req.Email)
	if err != nil {
		return err
	}

	now := s.now()
	if !account.OTPMatches(req.OTP, now) {
		s.log.Warn("Verification OTP rejected", zap.Int64("account_id", account.ID))
		return errInvalidOrExpired()
	}

	if account.Status == entity.StatusPending {
		account.Status = entity.StatusActive
	}
	account.ClearOTP()
	account.UpdatedAt = now

	if _, err := s.repo.Account.Save(ctx, account); err != nil {
		return errInternal("failed to verify account", err)
	}

	s.log.Info("Account verified",
		zap.Int64("account_id", account.ID),
		zap.String("status", string(account.Status)))

	return nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, errValidation(errs)
	}

	account, err := s.findLiveAccount(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if !s.hasher.Verify(req.Password, account.PasswordHash) {
		s.log.Warn("Invalid password", zap.Int64("account_id", account.ID))
		return nil, errUnauthorized()
	}

	switch account.Status {
	case entity.StatusActive:
		token, expiresAt, err := s.tokens.Issue(account.ID, account.Email)
		if err != nil {
			s.log.Error("Failed to issue token", zap.Error(err), zap.Int64("account_id", account.ID))
			return nil, errInternal("failed to issue token", err)
		}

		s.log.Info("Account logged in", zap.Int64("account_id", account.ID))
		return &response.LoginResponse{
			Outcome:   response.OutcomeAuthorized,
			Status:    string(account.Status),
			Token:     token,
			ExpiresAt: &expiresAt,
		}, nil

	case entity.StatusPending:
		now := s.now()
		code, err := s.issueOTP(account, now)
		if err != nil {
			return nil, err
		}
		account.UpdatedAt = now

		if _, err := s.repo.Account.Save(ctx, account); err != nil {
			return nil, errInternal("failed to issue verification code", err)
		}
		if err := s.sendOTP(ctx, account, code, notify.PurposeVerification); err != nil {
			return nil, err
		}

		s.log.Info("Login deferred, verification required", zap.Int64("account_id", account.ID))
		return &response.LoginResponse{
			Outcome: response.OutcomeVerificationRequired,
			Status:  string(account.Status),
		}, nil

	case entity.StatusSuspended:
		s.log.Warn("Suspended account tried to login", zap.Int64("account_id", account.ID))
		return &response.LoginResponse{
			Outcome: response.OutcomeSuspended,
			Status:  string(account.Status),
		}, nil

	default:
		s.log.Error("Account in unknown status",
			zap.Int64("account_id", account.ID),
			zap.String("status", string(account.Status)))
		return nil, errInternal("account in unknown status", nil)
	}
}

func (s *authService) RequestPasswordRecovery(ctx context.Context, req *request.RecoveryRequest) error {
	req.Email = normalizeEmail(req.Email)
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Password recovery validation failed", zap.Any("errors", errs))
		return errValidation(errs)
	}

	account, err := s.findLiveAccount(ctx, req.Email)
	if err != nil {
		return err
	}

	now := s.now()
	code, err := s.issueOTP(account, now)
	if err != nil {
		return err
	}
	account.UpdatedAt = now

	if _, err := s.repo.Account.Save(ctx, account); err != nil {
		return errInternal("failed to issue recovery code", err)
	}

	if err := s.sendOTP(ctx, account, code, notify.PurposeRecovery); err != nil {
		return err
	}

	s.log.Info("Password recovery requested",
		zap.Int64("account_id", account.ID),
		zap.String("status", string(account.Status)))

	return nil
}

func (s *authService) ValidateRecoveryOtp(ctx context.Context, req *request.ValidateRecoveryOtpRequest) (*response.RecoveryTicketResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Recovery OTP validation failed", zap.Any("errors", errs))
		return nil, errValidation(errs)
	}

	account, err := s.repo.Account.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, errInternal("failed to find account", err)
	}

	now := s.now()
	// unknown email and wrong code look the same to the caller
	if account == nil || account.IsDeleted() || !account.OTPMatches(req.OTP, now) {
		s.log.Warn("Recovery OTP rejected", zap.String("email", req.Email))
		return nil, errInvalidOrExpired()
	}

	// store the ticket before spending the code
	ticket := s.newTicket()
	ttl := s.config.Security.RecoveryTTL()
	if err := s.repo.RecoveryTicket.Put(ctx, account.ID, ticket, ttl); err != nil {
		return nil, errInternal("failed to issue recovery ticket", err)
	}

	account.ClearOTP()
	account.UpdatedAt = now
	if _, err := s.repo.Account.Save(ctx, account); err != nil {
		return nil, errInternal("failed to validate recovery code", err)
	}

	s.log.Info("Recovery OTP validated", zap.Int64("account_id", account.ID))

	return &response.RecoveryTicketResponse{
		RecoveryTicket: ticket,
		ExpiresAt:      now.Add(ttl),
	}, nil
}

func (s *authService) ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error {
	req.Email = normalizeEmail(req.Email)
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Reset password validation failed", zap.Any("errors", errs))
		return errValidation(errs)
	}

	account, err := s.findLiveAccount(ctx, req.Email)
	if err != nil {
		return err
	}

	// hash before consuming the ticket
	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return errInternal("failed to process password", err)
	}

	ok, err := s.repo.RecoveryTicket.Consume(ctx, account.ID, req.RecoveryTicket)
	if err != nil {
		return errInternal("failed to check recovery ticket", err)
	}
	if !ok {
		s.log.Warn("Recovery ticket rejected", zap.Int64("account_id", account.ID))
		return newError(KindInvalidOrExpired, "invalid or expired recovery ticket", nil)
	}

	account.PasswordHash = hash
	account.UpdatedAt = s.now()

	if _, err := s.repo.Account.Save(ctx, account); err != nil {
		return errInternal("failed to reset password", err)
	}

	s.log.Info("Password reset", zap.Int64("account_id", account.ID))
	return nil
}

func (s *authService) CheckAccountExists(ctx context.Context, req *request.ExistsRequest) (*response.ExistsResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, errValidation(errs)
	}

	account, err := s.repo.Account.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, errInternal("failed to check email", err)
	}

	return &response.ExistsResponse{Exists: account != nil && !account.IsDeleted()}, nil
}

func (s *authService) Me(ctx context.Context, accountID int64) (*response.AccountResponse, error) {
	account, err := s.repo.Account.FindByID(ctx, accountID)
	if err != nil {
		return nil, errInternal("failed to get profile", err)
	}
	if account == nil || account.IsDeleted() {
		return nil, errNotFound("account not found")
	}

	resp := response.AccountToResponse(account)
	return &resp, nil
}

// ==================== HELPER METHODS ====================

// findLiveAccount treats deleted accounts as absent.
func (s *authService) findLiveAccount(ctx context.Context, email string) (*entity.Account, error) {
	account, err := s.repo.Account.FindByEmail(ctx, email)
	if err != nil {
		return nil, errInternal("failed to find account", err)
	}
	if account == nil || account.IsDeleted() {
		s.log.Info("Account not found", zap.String("email", email))
		return nil, errNotFound("account not found")
	}
	return account, nil
}

func (s *authService) resolveRole(ctx context.Context, roleID *int64) (*entity.Role, error) {
	if roleID != nil {
		role, err := s.repo.Role.FindByID(ctx, *roleID)
		if err != nil {
			return nil, errInternal("failed to resolve role", err)
		}
		if role != nil {
			return role, nil
		}
		s.log.Info("Requested role missing, using default",
			zap.Int64("role_id", *roleID),
			zap.String("default_role", s.config.App.DefaultRole))
	}

	role, err := s.repo.Role.FindByName(ctx, s.config.App.DefaultRole)
	if err != nil {
		return nil, errInternal("failed to resolve role", err)
	}
	if role == nil {
		s.log.Error("Default role missing", zap.String("default_role", s.config.App.DefaultRole))
		return nil, errNotFound("role not found")
	}
	return role, nil
}

// issueOTP overwrites the account's OTP slot. Only the latest code is ever valid.
func (s *authService) issueOTP(account *entity.Account, now time.Time) (string, error) {
	code, err := s.otp.Generate()
	if err != nil {
		s.log.Error("Failed to generate OTP", zap.Error(err))
		return "", errInternal("failed to generate code", err)
	}
	account.SetOTP(code, s.otp.ExpiryFrom(now))
	return code, nil
}

// sendOTP bounds delivery by the mail timeout. A client hang-up does not cancel it.
func (s *authService) sendOTP(ctx context.Context, account *entity.Account, code string, purpose notify.Purpose) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.Email.Timeout())
	defer cancel()

	if err := s.sender.SendOTP(ctx, account.Email, code, account.DisplayName(), purpose); err != nil {
		s.log.Error("Failed to send OTP",
			zap.Error(err),
			zap.Int64("account_id", account.ID),
			zap.String("purpose", string(purpose)))
		return errDelivery("could not send the code, request a new one", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func parseBirthdate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, *raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
