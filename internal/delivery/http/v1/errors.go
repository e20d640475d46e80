package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/taskwise/internal/services"
)

var (
	errInvalidRequestBody      = errors.New("invalid request body")
	errInvalidQuery            = errors.New("invalid query parameters")
	errMandatoryCookieNotFound = errors.New("mandatory cookie not found")
	errUnauthenticated         = errors.New("authentication required")
)

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

func newStatusTextError(status int) apiError {
	return newAPIError(status, http.StatusText(status))
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newUnauthorizedError(message string) apiError {
	return newAPIError(http.StatusUnauthorized, message)
}

func newForbiddenError(message string) apiError {
	return newAPIError(http.StatusForbidden, message)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}

func newConflictError(message string) apiError {
	return newAPIError(http.StatusConflict, message)
}

// newServiceError maps the services sentinels onto HTTP statuses. Anything
// unknown becomes a bare 500 so internals never leak to the client.
func newServiceError(err error) apiError {
	switch {
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrNotMember):
		return newNotFoundError(err.Error())
	case errors.Is(err, services.ErrEmptyTitle),
		errors.Is(err, services.ErrEmptyName),
		errors.Is(err, services.ErrInvalidTaskStatus),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrInvalidDueDate),
		errors.Is(err, services.ErrAssigneeNotFound):
		return newBadRequestError(err.Error())
	case errors.Is(err, services.ErrForbidden):
		return newForbiddenError(err.Error())
	case errors.Is(err, services.ErrUserAlreadyExists),
		errors.Is(err, services.ErrAlreadyMember):
		return newConflictError(err.Error())
	case errors.Is(err, services.ErrUserPasswordMismatch),
		errors.Is(err, services.ErrUserInactive),
		errors.Is(err, services.ErrSessionNotFound),
		errors.Is(err, services.ErrSessionExpired):
		return newUnauthorizedError(err.Error())
	default:
		return newStatusTextError(http.StatusInternalServerError)
	}
}

// abortInvalidData answers 500 for a stored record that no longer passes
// validation, e.g. a task status outside the known set.
func (h *handlerImpl) abortInvalidData(c *gin.Context, err error) {
	h.logger.Error().
		Err(err).
		Str("path", c.FullPath()).
		Msg("data integrity violation")
	abort(c, newStatusTextError(http.StatusInternalServerError))
}
