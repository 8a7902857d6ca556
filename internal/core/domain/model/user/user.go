// Package user contains the User aggregate: a customer account that places
// orders and receives notifications about them.
package user

import (
	"errors"
	"time"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/pkg/errs"
	"broker/internal/pkg/guard"
)

const (
	nameMaxLen  = 100
	emailMaxLen = 255
)

// ErrUserIsNotConstructed is returned when using an improperly initialized User.
var ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

// User represents a customer account.
type User struct {
	id           kernel.UUID
	name         string
	email        string
	phone        string
	passwordHash string
	deviceToken  string
	active       bool

	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewUser creates an active user account. The password hash must already be
// computed by the caller.
func NewUser(
	id kernel.UUID,
	name string,
	email string,
	phone string,
	passwordHash string,
	now time.Time,
) (*User, error) {
	user := &User{
		phone:     phone,
		active:    true,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		user.setID(id),
		user.setName(name),
		user.setEmail(email),
		user.setPasswordHash(passwordHash),
	); err != nil {
		return nil, err
	}

	return user, nil
}

// RestoreUser reconstructs a User aggregate from persistent storage.
func RestoreUser(
	id kernel.UUID,
	name string,
	email string,
	phone string,
	passwordHash string,
	deviceToken string,
	active bool,
	createdAt time.Time,
	updatedAt time.Time,
) (*User, error) {
	user := &User{
		phone:       phone,
		deviceToken: deviceToken,
		active:      active,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		user.setID(id),
		user.setName(name),
		user.setEmail(email),
		user.setPasswordHash(passwordHash),
	); err != nil {
		return nil, err
	}

	return user, nil
}

// IsEqual compares two users by their unique identifiers.
func (u *User) IsEqual(other *User) bool {
	return other != nil && u.id.IsEqual(other.id)
}

// Validate checks if the User was properly constructed.
func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

// ID returns the user's unique identifier.
func (u *User) ID() kernel.UUID {
	return u.id
}

// Name returns the user's display name.
func (u *User) Name() string {
	return u.name
}

// Email returns the user's login email.
func (u *User) Email() string {
	return u.email
}

// Phone returns the user's contact phone, possibly empty.
func (u *User) Phone() string {
	return u.phone
}

// PasswordHash returns the stored credential hash.
func (u *User) PasswordHash() string {
	return u.passwordHash
}

// DeviceToken returns the push notification token, empty when the user has
// not registered a device.
func (u *User) DeviceToken() string {
	return u.deviceToken
}

// Active reports whether the account is enabled.
func (u *User) Active() bool {
	return u.active
}

// CreatedAt returns the account creation timestamp.
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// UpdatedAt returns the last-mutation timestamp.
func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// UpdateDeviceToken replaces the push notification token.
// An empty token unregisters the device.
func (u *User) UpdateDeviceToken(token string, now time.Time) {
	u.deviceToken = token
	u.updatedAt = now
}

// Deactivate disables the account.
func (u *User) Deactivate(now time.Time) {
	u.active = false
	u.updatedAt = now
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if len(name) > nameMaxLen {
		return errs.NewValueIsOutOfRangeError("name length", len(name), 1, nameMaxLen)
	}
	u.name = name
	return nil
}

func (u *User) setEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if len(email) > emailMaxLen {
		return errs.NewValueIsOutOfRangeError("email length", len(email), 1, emailMaxLen)
	}
	u.email = email
	return nil
}

func (u *User) setPasswordHash(passwordHash string) error {
	if passwordHash == "" {
		return errs.NewValueIsRequiredError("passwordHash")
	}
	u.passwordHash = passwordHash
	return nil
}
