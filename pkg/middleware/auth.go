package middleware

import (
	"errors"
	"net/http"
	"strings"

	"account-service/internal/data/repository"
	"account-service/pkg/security"
	"account-service/pkg/utils"

	"go.uber.org/zap"
)

// Auth validates the bearer JWT and puts the account identity on the request context.
// Expired and malformed tokens get the same response; only the log tells them apart.
func Auth(tokens *security.TokenIssuer, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			claims, err := tokens.Verify(strings.TrimSpace(token))
			if err != nil {
				reason := "invalid"
				if errors.Is(err, security.ErrTokenExpired) {
					reason = "expired"
				}
				logger.Warn("Bearer token rejected",
					zap.String("reason", reason),
					zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := utils.SetAccountContext(r.Context(), claims.AccountID, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole loads the caller's account and rejects it unless it is live and holds role.
// Must run after Auth.
func RequireRole(accountRepo repository.AccountRepository, role string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accountID, ok := utils.GetAccountIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			account, err := accountRepo.FindByID(r.Context(), accountID)
			if err != nil {
				logger.Error("Role check: failed to get account",
					zap.Error(err), zap.Int64("account_id", accountID))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if account == nil || account.IsDeleted() {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if account.RoleName != role {
				logger.Warn("Role check: access denied",
					zap.Int64("account_id", accountID),
					zap.String("required_role", role),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
