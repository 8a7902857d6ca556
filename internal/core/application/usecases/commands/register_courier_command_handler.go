package commands

import (
	"context"
	"errors"
	"time"

	"broker/internal/core/domain/model/courier"
	"broker/internal/pkg/auth"
	"broker/internal/pkg/errs"
)

// RegisterCourierCommandHandler creates courier accounts. New couriers start
// active and available with zero order counters.
type RegisterCourierCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewRegisterCourierCommandHandler creates a handler for courier registration.
func NewRegisterCourierCommandHandler(uowFactory CourierUoWFactory) RegisterCourierCommandHandler {
	return RegisterCourierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the registration command.
func (h *RegisterCourierCommandHandler) Handle(ctx context.Context, cmd RegisterCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	passwordHash, err := auth.HashPassword(cmd.Password())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	if _, err = courierRepo.GetByEmail(ctx, cmd.Email()); err == nil {
		return ErrEmailAlreadyRegistered
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	account, err := courier.NewCourier(cmd.CourierID(), cmd.Name(), cmd.Email(), cmd.Phone(), passwordHash, time.Now().UTC())
	if err != nil {
		return err
	}

	if err = courierRepo.Add(ctx, account); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
