package http

import (
	"net/http"

	"broker/internal/core/application/usecases/commands"
	"broker/internal/core/domain/model/kernel"
	"broker/internal/pkg/auth"

	"github.com/labstack/echo/v4"
)

// RegisterUser handles POST /api/v1/auth/users/register.
func (s *Server) RegisterUser(ctx echo.Context) error {
	var request registerRequest
	if err := ctx.Bind(&request); err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}

	userID := kernel.NewUUID()
	command, err := commands.NewRegisterUserCommand(
		userID, request.Name, request.Email, request.Phone, request.Password)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.registerUserHandler.Handle(ctx.Request().Context(), command); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": userID.String()})
}

// RegisterCourier handles POST /api/v1/auth/couriers/register.
func (s *Server) RegisterCourier(ctx echo.Context) error {
	var request registerRequest
	if err := ctx.Bind(&request); err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}

	courierID := kernel.NewUUID()
	command, err := commands.NewRegisterCourierCommand(
		courierID, request.Name, request.Email, request.Phone, request.Password)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.registerCourierHandler.Handle(ctx.Request().Context(), command); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": courierID.String()})
}

// LoginUser handles POST /api/v1/auth/users/login.
func (s *Server) LoginUser(ctx echo.Context) error {
	return s.login(ctx, auth.RoleUser)
}

// LoginCourier handles POST /api/v1/auth/couriers/login.
func (s *Server) LoginCourier(ctx echo.Context) error {
	return s.login(ctx, auth.RoleCourier)
}

func (s *Server) login(ctx echo.Context, role string) error {
	var request loginRequest
	if err := ctx.Bind(&request); err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}

	session, err := s.authService.Login(ctx.Request().Context(), request.Email, request.Password, role)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, sessionPayload{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		AccountID: session.AccountID,
		Role:      session.Role,
	})
}

// UpdateDeviceToken handles PUT /api/v1/auth/device-token. An empty token
// clears the registration.
func (s *Server) UpdateDeviceToken(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return writeError(ctx, http.StatusUnauthorized, "missing bearer token")
	}

	var request deviceTokenRequest
	if err := ctx.Bind(&request); err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}

	command, err := commands.NewUpdateDeviceTokenCommand(actor.ID, actor.Role, request.DeviceToken)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.updateDeviceToken.Handle(ctx.Request().Context(), command); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateAvailability handles PUT /api/v1/auth/availability for couriers.
func (s *Server) UpdateAvailability(ctx echo.Context) error {
	actor, ok := requireRole(ctx, auth.RoleCourier)
	if !ok {
		return nil
	}

	var request availabilityRequest
	if err := ctx.Bind(&request); err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}

	if err := s.availability.SetAvailability(ctx.Request().Context(), actor.ID, request.Available); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
