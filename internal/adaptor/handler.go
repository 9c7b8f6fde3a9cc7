package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"account-service/internal/usecase"
	"account-service/pkg/utils"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	Auth *AuthHandler
	User *UserHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth: NewAuthHandler(service.Auth, log),
		User: NewUserHandler(service.User, log),
	}
}

// decodeJSON writes a 400 and returns false when the body is not a single JSON object.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// handleServiceError maps a usecase error kind to a status code.
// Internal details are logged, never sent.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var svcErr *usecase.Error
	if !errors.As(err, &svcErr) {
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	switch svcErr.Kind {
	case usecase.KindValidation:
		log.Warn(operation+" validation failed", zap.Any("errors", svcErr.Fields))
		utils.ResponseBadRequest(w, svcErr.Message, svcErr.Fields)

	case usecase.KindNotFound:
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, svcErr.Message)

	case usecase.KindConflict:
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, svcErr.Message)

	case usecase.KindInvalidOrExpired:
		log.Warn(operation+" failed - invalid or expired", zap.Error(err))
		utils.ResponseBadRequest(w, svcErr.Message, nil)

	case usecase.KindUnauthorized:
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, svcErr.Message)

	case usecase.KindDeliveryFailed:
		log.Error(operation+" failed - delivery", zap.Error(err))
		utils.ResponseError(w, http.StatusBadGateway, svcErr.Message, nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
