package adaptor

import (
	"net/http"
	"strconv"

	"account-service/internal/dto/request"
	"account-service/internal/usecase"
	"account-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// GetAccount handles GET /api/admin/users/{id} (admin only)
func (h *UserHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := parseAccountID(w, r)
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get account")
		return
	}

	utils.ResponseSuccess(w, "Account retrieved successfully", profile)
}

// ListAccounts handles GET /api/admin/users?page=1&per_page=10 (admin only)
func (h *UserHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), utils.DefaultPerPage),
	}

	accounts, err := h.service.ListAccounts(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list accounts")
		return
	}

	utils.ResponseSuccess(w, "Accounts retrieved successfully", accounts)
}

// UpdateAccount handles PATCH /api/admin/users/{id} (admin only)
func (h *UserHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := parseAccountID(w, r)
	if !ok {
		return
	}

	var req request.UpdateAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	account, err := h.service.UpdateAccount(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update account")
		return
	}

	utils.ResponseSuccess(w, "Account updated successfully", account)
}

// DeleteAccount handles DELETE /api/admin/users/{id} (admin only)
func (h *UserHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := parseAccountID(w, r)
	if !ok {
		return
	}

	if err := h.service.SoftDelete(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete account")
		return
	}

	utils.ResponseSuccess(w, "Account deleted successfully", nil)
}

func parseAccountID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		utils.ResponseBadRequest(w, "Invalid account ID", nil)
		return 0, false
	}
	return id, true
}
