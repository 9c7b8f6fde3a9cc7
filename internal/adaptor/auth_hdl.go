package adaptor

import (
	"net/http"

	"account-service/internal/dto/request"
	"account-service/internal/dto/response"
	"account-service/internal/usecase"
	"account-service/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	account, err := h.service.Register(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "register")
		return
	}

	utils.ResponseCreated(w, "Registration successful. Check your email for the verification code.", account)
}

// VerifyOtp handles POST /api/auth/verify-otp
func (h *AuthHandler) VerifyOtp(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyOtpRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.VerifyOtp(r.Context(), &req); err != nil {
		handleServiceError(w, h.log, err, "verify OTP")
		return
	}

	utils.ResponseSuccess(w, "Account verified successfully", nil)
}

// Login handles POST /api/auth/login. Pending and suspended accounts get a 200 without a token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.service.Login(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "login")
		return
	}

	switch result.Outcome {
	case response.OutcomeVerificationRequired:
		utils.ResponseSuccess(w, "Account not verified. A new verification code was sent to your email.", result)
	case response.OutcomeSuspended:
		utils.ResponseSuccess(w, "Account suspended", result)
	default:
		utils.ResponseSuccess(w, "Login successful", result)
	}
}

// RequestPasswordRecovery handles POST /api/auth/password/recovery
func (h *AuthHandler) RequestPasswordRecovery(w http.ResponseWriter, r *http.Request) {
	var req request.RecoveryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.RequestPasswordRecovery(r.Context(), &req); err != nil {
		handleServiceError(w, h.log, err, "request password recovery")
		return
	}

	utils.ResponseSuccess(w, "Recovery code sent to your email", nil)
}

// ValidateRecoveryOtp handles POST /api/auth/password/validate-otp
func (h *AuthHandler) ValidateRecoveryOtp(w http.ResponseWriter, r *http.Request) {
	var req request.ValidateRecoveryOtpRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ticket, err := h.service.ValidateRecoveryOtp(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "validate recovery OTP")
		return
	}

	utils.ResponseSuccess(w, "Recovery code accepted", ticket)
}

// ResetPassword handles POST /api/auth/password/reset
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req request.ResetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.ResetPassword(r.Context(), &req); err != nil {
		handleServiceError(w, h.log, err, "reset password")
		return
	}

	utils.ResponseSuccess(w, "Password updated successfully", nil)
}

// CheckAccountExists handles POST /api/auth/exists
func (h *AuthHandler) CheckAccountExists(w http.ResponseWriter, r *http.Request) {
	var req request.ExistsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.service.CheckAccountExists(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "check account")
		return
	}

	utils.ResponseSuccess(w, "Account lookup completed", result)
}

// Me handles GET /api/users/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	accountID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	profile, err := h.service.Me(r.Context(), accountID)
	if err != nil {
		handleServiceError(w, h.log, err, "get current account")
		return
	}

	utils.ResponseSuccess(w, "Profile retrieved successfully", profile)
}
