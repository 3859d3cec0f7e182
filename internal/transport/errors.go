package transport

import (
	"errors"
	"net/http"

	"bazaar/internal/authz"
	"bazaar/internal/middleware"
	"bazaar/internal/repository"
	"bazaar/internal/service"
	"bazaar/internal/storage"

	"go.uber.org/zap"
)

// respondServiceError maps domain sentinels onto HTTP statuses. Anything
// unrecognized is a 500 and gets logged; the client never sees raw storage
// errors.
func respondServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var status int

	switch {
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrOrderNotFound):
		status = http.StatusNotFound

	case errors.Is(err, repository.ErrEmailTaken),
		errors.Is(err, repository.ErrUsernameTaken),
		errors.Is(err, service.ErrProductUnavailable),
		errors.Is(err, service.ErrStatusConflict):
		status = http.StatusConflict

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		status = http.StatusUnauthorized

	case errors.Is(err, authz.ErrForbidden),
		errors.Is(err, service.ErrSelfPurchase),
		errors.Is(err, service.ErrAdminUndeletable):
		status = http.StatusForbidden

	case errors.Is(err, storage.ErrInvalidImageType),
		errors.Is(err, storage.ErrFileTooLarge),
		errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrEmptyContent),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidTransition):
		status = http.StatusBadRequest

	default:
		logger.Error("Unhandled service error", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	middleware.RespondWithError(w, status, err.Error())
}

// decodeAndValidate decodes the body and renders validation failures; returns
// false when a response has already been written.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, logger *zap.Logger, v interface{}) bool {
	if err := middleware.DecodeAndValidate(r, v); err != nil {
		logger.Debug("Request validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return false
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
