package wire

import (
	"account-service/internal/adaptor"
	"account-service/internal/data/entity"
	"account-service/internal/data/repository"
	"account-service/pkg/middleware"
	"account-service/pkg/security"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser configures account administration routes
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	tokens *security.TokenIssuer,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	r.With(
		middleware.Auth(tokens, log),
		middleware.RequireRole(repo.Account, entity.RoleAdmin, log),
	).Route("/api/admin/users", func(r chi.Router) {
		r.Get("/", userHandler.ListAccounts)         // GET /api/admin/users?page=1&per_page=10
		r.Get("/{id}", userHandler.GetAccount)       // GET /api/admin/users/{id}
		r.Patch("/{id}", userHandler.UpdateAccount)  // PATCH /api/admin/users/{id}
		r.Delete("/{id}", userHandler.DeleteAccount) // DELETE /api/admin/users/{id}
	})
}
