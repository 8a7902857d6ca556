package commands

import (
	"context"
	"errors"
	"time"

	"broker/internal/core/domain/model/user"
	"broker/internal/pkg/auth"
	"broker/internal/pkg/errs"
)

// ErrEmailAlreadyRegistered is returned when registering with an email that
// belongs to an existing account of the same role.
var ErrEmailAlreadyRegistered = errors.New("email is already registered")

// RegisterUserCommandHandler creates customer accounts. The password is
// hashed before the aggregate ever sees it and the email must be unused.
type RegisterUserCommandHandler struct {
	uowFactory UserUoWFactory
}

// NewRegisterUserCommandHandler creates a handler for user registration.
func NewRegisterUserCommandHandler(uowFactory UserUoWFactory) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the registration command.
func (h *RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) error {
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

	userRepo := uow.UserRepository()
	if _, err = userRepo.GetByEmail(ctx, cmd.Email()); err == nil {
		return ErrEmailAlreadyRegistered
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	account, err := user.NewUser(cmd.UserID(), cmd.Name(), cmd.Email(), cmd.Phone(), passwordHash, time.Now().UTC())
	if err != nil {
		return err
	}

	if err = userRepo.Add(ctx, account); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
