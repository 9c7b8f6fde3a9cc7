package wire

import (
	"account-service/internal/adaptor"
	"account-service/pkg/middleware"
	"account-service/pkg/security"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	tokens *security.TokenIssuer,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/verify-otp", authHandler.VerifyOtp)
		r.Post("/login", authHandler.Login)
		r.Post("/exists", authHandler.CheckAccountExists)

		r.Route("/password", func(r chi.Router) {
			r.Post("/recovery", authHandler.RequestPasswordRecovery)
			r.Post("/validate-otp", authHandler.ValidateRecoveryOtp)
			r.Post("/reset", authHandler.ResetPassword)
		})
	})

	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.Auth(tokens, log)).Get("/api/users/me", authHandler.Me)
}
