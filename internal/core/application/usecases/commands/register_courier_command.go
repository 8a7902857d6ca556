package commands

import (
	"errors"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/pkg/guard"
)

var ErrRegisterCourierCommandIsNotConstructed = errors.New(
	"RegisterCourierCommand must be created via NewRegisterCourierCommand constructor",
)

// RegisterCourierCommand represents a request to create a courier account.
type RegisterCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	name      string
	email     string
	phone     string
	password  string

	guard guard.ConstructorGuard
}

// NewRegisterCourierCommand creates a courier registration command.
// The phone is optional, everything else is required.
func NewRegisterCourierCommand(courierID kernel.UUID, name, email, phone, password string) (RegisterCourierCommand, error) {
	registerCommand := RegisterCourierCommand{
		phone: phone,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		registerCommand.setCourierID(courierID),
		registerCommand.setName(name),
		registerCommand.setEmail(email),
		registerCommand.setPassword(password),
	); err != nil {
		return RegisterCourierCommand{}, err
	}

	return registerCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterCourierCommand) Validate() error {
	return c.guard.Validate(ErrRegisterCourierCommandIsNotConstructed)
}

// CourierID returns the identifier for the new account.
func (c RegisterCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Name returns the display name.
func (c RegisterCourierCommand) Name() string {
	return c.name
}

// Email returns the login email.
func (c RegisterCourierCommand) Email() string {
	return c.email
}

// Phone returns the optional contact phone.
func (c RegisterCourierCommand) Phone() string {
	return c.phone
}

// Password returns the plaintext password to be hashed by the handler.
func (c RegisterCourierCommand) Password() string {
	return c.password
}

func (c *RegisterCourierCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *RegisterCourierCommand) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *RegisterCourierCommand) setEmail(email string) error {
	if email == "" {
		return ErrEmailIsRequired
	}

	c.email = email
	return nil
}

func (c *RegisterCourierCommand) setPassword(password string) error {
	if password == "" {
		return ErrPasswordIsRequired
	}

	c.password = password
	return nil
}
