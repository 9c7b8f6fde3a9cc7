package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"account-service/internal/data/entity"
	"account-service/internal/data/repository"
	"account-service/internal/dto/request"
	"account-service/internal/dto/response"
	"account-service/internal/notify"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (h *harness) register(t *testing.T, email, password, name string) (*response.AccountResponse, string) {
	t.Helper()
	resp, err := h.svc.Register(context.Background(), &request.RegisterRequest{
		Email:    email,
		Password: password,
		Name:     name,
	})
	require.NoError(t, err)
	return resp, h.sender.last().Code
}

func (h *harness) setStatus(t *testing.T, email string, status entity.AccountStatus) {
	t.Helper()
	a := h.accounts.stored(email)
	require.NotNil(t, a)
	a.Status = status
	_, err := h.accounts.Save(context.Background(), a)
	require.NoError(t, err)
}

func requireKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, kind, KindOf(err), "error: %v", err)
}

func TestRegisterCreatesPendingAccount(t *testing.T) {
	h := newHarness(t)
	createdAt := h.clock.Now()

	resp, code := h.register(t, "a@x.com", "p1", "Ana")

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, entity.RoleCustomer, resp.Role)
	assert.Empty(t, resp.OTP)

	stored := h.accounts.stored("a@x.com")
	require.NotNil(t, stored)
	assert.Equal(t, entity.StatusPending, stored.Status)
	require.NotNil(t, stored.OTPCode)
	require.NotNil(t, stored.OTPExpiresAt)
	assert.Len(t, *stored.OTPCode, 6)
	assert.Equal(t, code, *stored.OTPCode)
	assert.Equal(t, createdAt.Add(time.Hour), *stored.OTPExpiresAt)
	assert.NotEqual(t, "p1", stored.PasswordHash)
	assert.True(t, h.svc.hasher.Verify("p1", stored.PasswordHash))
	assert.Equal(t, entity.DefaultLastName, stored.LastName)
	assert.Equal(t, entity.GenderUndefined, stored.Gender)

	sent := h.sender.last()
	assert.Equal(t, "a@x.com", sent.To)
	assert.Equal(t, "Ana", sent.Name)
	assert.Equal(t, notify.PurposeVerification, sent.Purpose)
}

func TestRegisterNormalizesEmail(t *testing.T) {
	h := newHarness(t)

	resp, _ := h.register(t, "  Ana@X.com ", "p1", "Ana")
	assert.Equal(t, "ana@x.com", resp.Email)

	_, err := h.svc.Register(context.Background(), &request.RegisterRequest{Email: "ana@x.com", Password: "p2"})
	requireKind(t, err, KindConflict)
}

func TestRegisterExposesOTPWhenEnabled(t *testing.T) {
	h := newHarness(t)
	h.config.App.ExposeOTP = true

	resp, code := h.register(t, "a@x.com", "p1", "Ana")
	assert.Equal(t, code, resp.OTP)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h := newHarness(t)
	h.register(t, "a@x.com", "p1", "Ana")

	_, err := h.svc.Register(context.Background(), &request.RegisterRequest{Email: "a@x.com", Password: "p2"})
	requireKind(t, err, KindConflict)
	assert.Equal(t, 1, h.sender.count())
}

func TestRegisterStoreUniqueViolationIsConflict(t *testing.T) {
	h := newHarness(t)
	h.accounts.saveErr = repository.ErrDuplicateEmail

	_, err := h.svc.Register(context.Background(), &request.RegisterRequest{Email: "a@x.com", Password: "p1"})
	requireKind(t, err, KindConflict)
	assert.Zero(t, h.sender.count())
}

func TestRegisterRoleResolution(t *testing.T) {
	company := int64(2)
	missing := int64(99)

	tests := []struct {
		name     string
		roleID   *int64
		wantRole string
	}{
		{"no role given", nil, entity.RoleCustomer},
		{"existing role", &company, entity.RoleCompany},
		{"unknown role falls back", &missing, entity.RoleCustomer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			resp, err := h.svc.Register(context.Background(), &request.RegisterRequest{
				Email:    "a@x.com",
				Password: "p1",
				RoleID:   tt.roleID,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, resp.Role)
		})
	}

	t.Run("default role missing", func(t *testing.T) {
		h := newHarness(t)
		h.roles.roles = nil

		_, err := h.svc.Register(context.Background(), &request.RegisterRequest{Email: "a@x.com", Password: "p1"})
		requireKind(t, err, KindNotFound)
		assert.Nil(t, h.accounts.stored("a@x.com"))
	})
}

func TestRegisterDeliveryFailureKeepsAccount(t *testing.T) {
	h := newHarness(t)
	h.sender.err = errSMTPDown

	_, err := h.svc.Register(context.Background(), &request.RegisterRequest{Email: "a@x.com", Password: "p1"})
	requireKind(t, err, KindDeliveryFailed)
	assert.ErrorIs(t, err, errSMTPDown)

	stored := h.accounts.stored("a@x.com")
	require.NotNil(t, stored)
	assert.Equal(t, entity.StatusPending, stored.Status)
}

func TestRegisterValidation(t *testing.T) {
	h := newHarness(t)

	_, err := h.svc.Register(context.Background(), &request.RegisterRequest{Email: "not-an-email", Password: "p1"})
	requireKind(t, err, KindValidation)

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Contains(t, e.Fields, "email")

	bad := "01/02/1990"
	_, err = h.svc.Register(context.Background(), &request.RegisterRequest{Email: "a@x.com", Password: "p1", Birthdate: &bad})
	requireKind(t, err, KindValidation)
}

func TestRegisterPasswordByteLimit(t *testing.T) {
	h := newHarness(t)

	// 72 runes, 144 bytes
	_, err := h.svc.Register(context.Background(), &request.RegisterRequest{
		Email:    "a@x.com",
		Password: strings.Repeat("é", 72),
	})
	requireKind(t, err, KindValidation)

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "Maximum length is 72 bytes", e.Fields["password"])
	assert.Nil(t, h.accounts.stored("a@x.com"))

	resp, err := h.svc.Register(context.Background(), &request.RegisterRequest{
		Email:    "a@x.com",
		Password: strings.Repeat("é", 36),
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
}

func TestRegisterKeepsProfile(t *testing.T) {
	h := newHarness(t)
	birthdate := "1990-05-17"

	resp, err := h.svc.Register(context.Background(), &request.RegisterRequest{
		Email:     "a@x.com",
		Password:  "p1",
		Name:      "Ana",
		LastName:  "Diaz",
		Birthdate: &birthdate,
		Gender:    "female",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", resp.Name)
	assert.Equal(t, "Diaz", resp.LastName)
	assert.Equal(t, "female", resp.Gender)
	require.NotNil(t, resp.Birthdate)
	assert.Equal(t, birthdate, *resp.Birthdate)
}

func TestVerifyOtp(t *testing.T) {
	h := newHarness(t)
	_, code := h.register(t, "a@x.com", "p1", "Ana")

	err := h.svc.VerifyOtp(context.Background(), &request.VerifyOtpRequest{Email: "a@x.com", OTP: code})
	require.NoError(t, err)

	stored := h.accounts.stored("a@x.com")
	assert.Equal(t, entity.StatusActive, stored.Status)
	assert.Nil(t, stored.OTPCode)
	assert.Nil(t, stored.OTPExpiresAt)

	err = h.svc.VerifyOtp(context.Background(), &request.VerifyOtpRequest{Email: "a@x.com", OTP: code})
	requireKind(t, err, KindInvalidOrExpired)
}

func TestVerifyOtpExpiry(t *testing.T) {
	t.Run("just before expiry", func(t *testing.T) {
		h := newHarness(t)
		_, code := h.register(t, "a@x.com", "p1", "Ana")
		h.clock.Advance(time.Hour - time.Nanosecond)

		require.NoError(t, h.svc.VerifyOtp(context.Background(), &request.VerifyOtpRequest{Email: "a@x.com", OTP: code}))
	})

	t.Run("exactly at expiry", func(t *testing.T) {
		h := newHarness(t)
		_, code := h.register(t, "a@x.com", "p1", "Ana")
		h.clock.Advance(time.Hour)

		err := h.svc.VerifyOtp(context.Background(), &request.VerifyOtpRequest{Email: "a@x.com", OTP: code})
		requireKind(t, err, KindInvalidOrExpired)
		assert.Equal(t, entity.StatusPending, h.accounts.stored("a@x.com").Status)
	})

	t.Run("long past expiry", func(t *testing.T) {
		h := newHarness(t)
		_, code := h.register(t, "a@x.com", "p1", "Ana")
		h.clock.Advance(48 * time.Hour)

		err := h.svc.VerifyOtp(context.Background(), &request.VerifyOtpRequest{Email: "a@x.com", OTP: code})
		requireKind(t, err, KindInvalidOrExpired)
	})
}

func TestVerifyOtpFailures(t *testing.T) {
	h := newHarness(t)
	_, code := h.register(t, "a@x.com", "p1", "Ana")

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	err := h.svc.VerifyOtp(context.Background(), &request.VerifyOtpRequest{Email: "a@x.com", OTP: wrong})
	requireKind(t, err, KindInvalidOrExpired)

	err = h.svc.VerifyOtp(context.Background(), &request.VerifyOtpRequest{Email: "nobody@x.com", OTP: code})
	requireKind(t, err, KindNotFound)

	h.setStatus(t, "a@x.com", entity.StatusDeleted)
	err = h.svc.VerifyOtp(context.Background(), &request.VerifyOtpRequest{Email: "a@x.com", OTP: code})
	requireKind(t, err, KindNotFound)
}

func TestLoginActiveIssuesToken(t *testing.T) {
	h := newHarness(t)
	_, code := h.register(t, "a@x.com", "p1", "Ana")
	require.NoError(t, h.svc.VerifyOtp(context.Background(), &request.VerifyOtpRequest{Email: "a@x.com", OTP: code}))

	resp, err := h.svc.Login(context.Background(), &request.LoginRequest{Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)
	assert.Equal(t, response.OutcomeAuthorized, resp.Outcome)
	assert.Equal(t, "active", resp.Status)
	require.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.ExpiresAt)

	claims, err := h.tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.AccountID)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestLoginPendingReissuesOTP(t *testing.T) {
	h := newHarness(t)
	_, first := h.register(t, "a@x.com", "p1", "Ana")
	h.clock.Advance(10 * time.Minute)

	resp, err := h.svc.Login(context.Background(), &request.LoginRequest{Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)
	assert.Equal(t, response.OutcomeVerificationRequired, resp.Outcome)
	assert.Empty(t, resp.Token)
	assert.Nil(t, resp.ExpiresAt)

	assert.Equal(t, 2, h.sender.count())
	second := h.sender.last().Code

	stored := h.accounts.stored("a@x.com")
	require.NotNil(t, stored.OTPCode)
	assert.Equal(t, second, *stored.OTPCode)
	assert.Equal(t, h.clock.Now().Add(time.Hour), *stored.OTPExpiresAt)

	if first != second {
		err = h.svc.VerifyOtp(context.Background(), &request.VerifyOtpRequest{Email: "a@x.com", OTP: first})
		requireKind(t, err, KindInvalidOrExpired)
	}
	require.NoError(t, h.svc.VerifyOtp(context.Background(), &request.VerifyOtpRequest{Email: "a@x.com", OTP: second}))
}

func TestLoginPendingDeliveryFailure(t *testing.T) {
	h := newHarness(t)
	h.register(t, "a@x.com", "p1", "Ana")
	h.sender.err = errSMTPDown

	_, err := h.svc.Login(context.Background(), &request.LoginRequest{Email: "a@x.com", Password: "p1"})
	requireKind(t, err, KindDeliveryFailed)
}

func TestLoginSuspended(t *testing.T) {
	h := newHarness(t)
	h.register(t, "a@x.com", "p1", "Ana")
	h.setStatus(t, "a@x.com", entity.StatusSuspended)

	resp, err := h.svc.Login(context.Background(), &request.LoginRequest{Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)
	assert.Equal(t, response.OutcomeSuspended, resp.Outcome)
	assert.Empty(t, resp.Token)
}

func TestLoginWrongPasswordIsUnauthorizedForEveryStatus(t *testing.T) {
	for _, status := range []entity.AccountStatus{entity.StatusPending, entity.StatusActive, entity.StatusSuspended} {
		t.Run(string(status), func(t *testing.T) {
			h := newHarness(t)
			h.register(t, "a@x.com", "p1", "Ana")
			h.setStatus(t, "a@x.com", status)
			sentBefore := h.sender.count()

			_, err := h.svc.Login(context.Background(), &request.LoginRequest{Email: "a@x.com", Password: "wrong"})
			requireKind(t, err, KindUnauthorized)
			assert.Equal(t, sentBefore, h.sender.count())
		})
	}
}

func TestLoginUnknownOrDeleted(t *testing.T) {
	h := newHarness(t)

	_, err := h.svc.Login(context.Background(), &request.LoginRequest{Email: "nobody@x.com", Password: "p1"})
	requireKind(t, err, KindNotFound)

	h.register(t, "a@x.com", "p1", "Ana")
	h.setStatus(t, "a@x.com", entity.StatusDeleted)
	_, err = h.svc.Login(context.Background(), &request.LoginRequest{Email: "a@x.com", Password: "p1"})
	requireKind(t, err, KindNotFound)
}

func TestPasswordRecoveryFlow(t *testing.T) {
	h := newHarness(t)
	h.register(t, "a@x.com", "old-password", "Ana")

	require.NoError(t, h.svc.RequestPasswordRecovery(context.Background(), &request.RecoveryRequest{Email: "a@x.com"}))
	sent := h.sender.last()
	assert.Equal(t, notify.PurposeRecovery, sent.Purpose)

	ticket, err := h.svc.ValidateRecoveryOtp(context.Background(), &request.ValidateRecoveryOtpRequest{Email: "a@x.com", OTP: sent.Code})
	require.NoError(t, err)
	require.NotEmpty(t, ticket.RecoveryTicket)
	assert.Equal(t, h.clock.Now().Add(10*time.Minute), ticket.ExpiresAt)

	stored := h.accounts.stored("a@x.com")
	assert.Nil(t, stored.OTPCode)
	assert.Equal(t, entity.StatusPending, stored.Status)

	err = h.svc.ResetPassword(context.Background(), &request.ResetPasswordRequest{
		Email:          "a@x.com",
		RecoveryTicket: ticket.RecoveryTicket,
		NewPassword:    "new-password",
	})
	require.NoError(t, err)

	stored = h.accounts.stored("a@x.com")
	assert.False(t, h.svc.hasher.Verify("old-password", stored.PasswordHash))
	assert.True(t, h.svc.hasher.Verify("new-password", stored.PasswordHash))

	err = h.svc.ResetPassword(context.Background(), &request.ResetPasswordRequest{
		Email:          "a@x.com",
		RecoveryTicket: ticket.RecoveryTicket,
		NewPassword:    "third-password",
	})
	requireKind(t, err, KindInvalidOrExpired)
}

func TestRequestPasswordRecoveryFailures(t *testing.T) {
	h := newHarness(t)

	err := h.svc.RequestPasswordRecovery(context.Background(), &request.RecoveryRequest{Email: "nobody@x.com"})
	requireKind(t, err, KindNotFound)

	h.register(t, "a@x.com", "p1", "Ana")
	h.sender.err = errSMTPDown
	err = h.svc.RequestPasswordRecovery(context.Background(), &request.RecoveryRequest{Email: "a@x.com"})
	requireKind(t, err, KindDeliveryFailed)

	h.sender.err = nil
	h.setStatus(t, "a@x.com", entity.StatusDeleted)
	err = h.svc.RequestPasswordRecovery(context.Background(), &request.RecoveryRequest{Email: "a@x.com"})
	requireKind(t, err, KindNotFound)
}

func TestValidateRecoveryOtpCollapsesErrors(t *testing.T) {
	h := newHarness(t)
	h.register(t, "a@x.com", "p1", "Ana")
	require.NoError(t, h.svc.RequestPasswordRecovery(context.Background(), &request.RecoveryRequest{Email: "a@x.com"}))
	code := h.sender.last().Code

	_, unknownErr := h.svc.ValidateRecoveryOtp(context.Background(), &request.ValidateRecoveryOtpRequest{Email: "nobody@x.com", OTP: code})
	requireKind(t, unknownErr, KindInvalidOrExpired)

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	_, wrongErr := h.svc.ValidateRecoveryOtp(context.Background(), &request.ValidateRecoveryOtpRequest{Email: "a@x.com", OTP: wrong})
	requireKind(t, wrongErr, KindInvalidOrExpired)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())

	h.clock.Advance(time.Hour)
	_, err := h.svc.ValidateRecoveryOtp(context.Background(), &request.ValidateRecoveryOtpRequest{Email: "a@x.com", OTP: code})
	requireKind(t, err, KindInvalidOrExpired)
}

func TestResetPasswordRequiresTicket(t *testing.T) {
	h := newHarness(t)
	h.register(t, "a@x.com", "p1", "Ana")
	h.register(t, "b@x.com", "p1", "Bea")

	err := h.svc.ResetPassword(context.Background(), &request.ResetPasswordRequest{
		Email:          "a@x.com",
		RecoveryTicket: uuid.NewString(),
		NewPassword:    "p2",
	})
	requireKind(t, err, KindInvalidOrExpired)

	err = h.svc.ResetPassword(context.Background(), &request.ResetPasswordRequest{
		Email:          "nobody@x.com",
		RecoveryTicket: uuid.NewString(),
		NewPassword:    "p2",
	})
	requireKind(t, err, KindNotFound)

	// ticket issued to b is useless for a
	require.NoError(t, h.svc.RequestPasswordRecovery(context.Background(), &request.RecoveryRequest{Email: "b@x.com"}))
	ticket, err := h.svc.ValidateRecoveryOtp(context.Background(), &request.ValidateRecoveryOtpRequest{Email: "b@x.com", OTP: h.sender.last().Code})
	require.NoError(t, err)

	err = h.svc.ResetPassword(context.Background(), &request.ResetPasswordRequest{
		Email:          "a@x.com",
		RecoveryTicket: ticket.RecoveryTicket,
		NewPassword:    "p2",
	})
	requireKind(t, err, KindInvalidOrExpired)

	// and it expires
	h.clock.Advance(10 * time.Minute)
	err = h.svc.ResetPassword(context.Background(), &request.ResetPasswordRequest{
		Email:          "b@x.com",
		RecoveryTicket: ticket.RecoveryTicket,
		NewPassword:    "p2",
	})
	requireKind(t, err, KindInvalidOrExpired)
	assert.True(t, h.svc.hasher.Verify("p1", h.accounts.stored("b@x.com").PasswordHash))
}

func TestResetPasswordOversizedKeepsTicket(t *testing.T) {
	h := newHarness(t)
	h.register(t, "a@x.com", "p1", "Ana")
	require.NoError(t, h.svc.RequestPasswordRecovery(context.Background(), &request.RecoveryRequest{Email: "a@x.com"}))
	ticket, err := h.svc.ValidateRecoveryOtp(context.Background(), &request.ValidateRecoveryOtpRequest{Email: "a@x.com", OTP: h.sender.last().Code})
	require.NoError(t, err)

	err = h.svc.ResetPassword(context.Background(), &request.ResetPasswordRequest{
		Email:          "a@x.com",
		RecoveryTicket: ticket.RecoveryTicket,
		NewPassword:    strings.Repeat("é", 72),
	})
	requireKind(t, err, KindValidation)

	err = h.svc.ResetPassword(context.Background(), &request.ResetPasswordRequest{
		Email:          "a@x.com",
		RecoveryTicket: ticket.RecoveryTicket,
		NewPassword:    "p2",
	})
	require.NoError(t, err)
	assert.True(t, h.svc.hasher.Verify("p2", h.accounts.stored("a@x.com").PasswordHash))
}

func TestValidateRecoveryOtpTicketStoreDown(t *testing.T) {
	h := newHarness(t)
	h.register(t, "a@x.com", "p1", "Ana")
	require.NoError(t, h.svc.RequestPasswordRecovery(context.Background(), &request.RecoveryRequest{Email: "a@x.com"}))
	code := h.sender.last().Code

	tickets := h.svc.repo.RecoveryTicket
	h.svc.repo.RecoveryTicket = downTicketRepo{}

	_, err := h.svc.ValidateRecoveryOtp(context.Background(), &request.ValidateRecoveryOtpRequest{Email: "a@x.com", OTP: code})
	requireKind(t, err, KindInternal)

	stored := h.accounts.stored("a@x.com")
	require.NotNil(t, stored.OTPCode, "code must survive a ticket store failure")
	assert.Equal(t, code, *stored.OTPCode)

	h.svc.repo.RecoveryTicket = tickets
	ticket, err := h.svc.ValidateRecoveryOtp(context.Background(), &request.ValidateRecoveryOtpRequest{Email: "a@x.com", OTP: code})
	require.NoError(t, err)
	assert.NotEmpty(t, ticket.RecoveryTicket)
}

func TestCheckAccountExists(t *testing.T) {
	h := newHarness(t)
	h.register(t, "a@x.com", "p1", "Ana")
	before := *h.accounts.stored("a@x.com")
	sent := h.sender.count()

	resp, err := h.svc.CheckAccountExists(context.Background(), &request.ExistsRequest{Email: "A@x.com"})
	require.NoError(t, err)
	assert.True(t, resp.Exists)

	resp, err = h.svc.CheckAccountExists(context.Background(), &request.ExistsRequest{Email: "nobody@x.com"})
	require.NoError(t, err)
	assert.False(t, resp.Exists)

	assert.Equal(t, before, *h.accounts.stored("a@x.com"))
	assert.Equal(t, sent, h.sender.count())

	h.setStatus(t, "a@x.com", entity.StatusDeleted)
	resp, err = h.svc.CheckAccountExists(context.Background(), &request.ExistsRequest{Email: "a@x.com"})
	require.NoError(t, err)
	assert.False(t, resp.Exists)
}

func TestMe(t *testing.T) {
	h := newHarness(t)
	h.register(t, "a@x.com", "p1", "Ana")

	resp, err := h.svc.Me(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", resp.Email)
	assert.Empty(t, resp.OTP)

	_, err = h.svc.Me(context.Background(), 42)
	requireKind(t, err, KindNotFound)
}

func TestRegisterVerifyLoginScenario(t *testing.T) {
	h := newHarness(t)
	start := h.clock.Now()

	resp, err := h.svc.Register(context.Background(), &request.RegisterRequest{
		Email:    "a@x.com",
		Password: "p1",
		Name:     "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "pending", resp.Status)

	stored := h.accounts.stored("a@x.com")
	require.NotNil(t, stored.OTPCode)
	assert.Len(t, *stored.OTPCode, h.svc.otp.Digits())
	assert.WithinDuration(t, start.Add(3600*time.Second), *stored.OTPExpiresAt, time.Second)

	require.NoError(t, h.svc.VerifyOtp(context.Background(), &request.VerifyOtpRequest{Email: "a@x.com", OTP: *stored.OTPCode}))
	assert.Equal(t, entity.StatusActive, h.accounts.stored("a@x.com").Status)

	login, err := h.svc.Login(context.Background(), &request.LoginRequest{Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)

	claims, err := h.tokens.Verify(login.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.AccountID)
	assert.Equal(t, "a@x.com", claims.Email)
}
