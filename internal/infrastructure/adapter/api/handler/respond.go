package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerr "github.com/watchearn/rewards-ledger/internal/domain/error"
	"github.com/watchearn/rewards-ledger/internal/infrastructure/adapter/api/dto"
)

// statusForError maps domain errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case domainerr.IsNotFoundError(err):
		return http.StatusNotFound
	case errors.Is(err, domainerr.ErrDuplicateAccount),
		errors.Is(err, domainerr.ErrWithdrawalAlreadyResolved):
		return http.StatusConflict
	case domainerr.IsAccountBlockedError(err):
		return http.StatusForbidden
	case errors.Is(err, domainerr.ErrDailyLimitExceeded):
		return http.StatusTooManyRequests
	case domainerr.IsInsufficientBalanceError(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domainerr.ErrInvalidAccountID),
		errors.Is(err, domainerr.ErrInvalidAmount),
		errors.Is(err, domainerr.ErrInvalidDestination),
		errors.Is(err, domainerr.ErrInvalidReward),
		errors.Is(err, domainerr.ErrInvalidEventID),
		errors.Is(err, domainerr.ErrInvalidRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the standardized error response for a domain error
func respondError(c *gin.Context, err error) {
	status := statusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}

	c.JSON(status, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	})
}
