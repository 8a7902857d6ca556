package http

import (
	"errors"
	"net/http"

	"broker/internal/core/application/services"
	"broker/internal/core/application/usecases/commands"
	"broker/internal/core/domain/model/courier"
	"broker/internal/core/domain/model/order"
	"broker/internal/core/ports"
	"broker/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeError(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, errorBody{Code: code, Message: message})
}

// respondError maps application errors to HTTP statuses. Business conflicts
// render as a generic 400 with the conflict message, authorization failures
// as 403, missing objects as 404. Anything unrecognized is a 500 with the
// detail withheld.
func respondError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return writeError(ctx, http.StatusNotFound, err.Error())

	case errors.Is(err, commands.ErrNotRecipient),
		errors.Is(err, order.ErrNotAssignedCourier):
		return writeError(ctx, http.StatusForbidden, err.Error())

	case errors.Is(err, services.ErrInvalidCredentials):
		return writeError(ctx, http.StatusUnauthorized, err.Error())

	case errors.Is(err, commands.ErrOrderAlreadyClaimed),
		errors.Is(err, commands.ErrOrderAlreadyCompleted),
		errors.Is(err, commands.ErrOrderNotClaimed),
		errors.Is(err, commands.ErrCourierNotEligible),
		errors.Is(err, commands.ErrEmailAlreadyRegistered),
		errors.Is(err, commands.ErrUnknownRole),
		errors.Is(err, commands.ErrNameIsRequired),
		errors.Is(err, commands.ErrEmailIsRequired),
		errors.Is(err, commands.ErrPasswordIsRequired),
		errors.Is(err, commands.ErrNotesAreRequired),
		errors.Is(err, commands.ErrAddressIsRequired),
		errors.Is(err, courier.ErrCourierIsBusy),
		errors.Is(err, ports.ErrConcurrentUpdate),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return writeError(ctx, http.StatusBadRequest, err.Error())

	default:
		return writeError(ctx, http.StatusInternalServerError, "internal error")
	}
}
