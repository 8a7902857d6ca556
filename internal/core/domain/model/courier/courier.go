package courier

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

// Domain errors for courier operations.
var (
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
	// ErrCourierIsBusy is returned when a courier with active orders tries to go available.
	ErrCourierIsBusy = errors.New("courier has orders in progress")
	// ErrCourierIsInactive is returned when operating on a deactivated courier.
	ErrCourierIsInactive = errors.New("courier account is deactivated")
)

// Courier is the aggregate root for a delivery courier account.
// It tracks identity and credentials alongside the availability state the
// dispatch flow reads: a courier is offered new work only while active and
// available, and availability drops automatically for as long as the courier
// carries at least one order.
//
// Counter rules:
//   - RecordAssignment increments current_orders_count and clears availability
//   - RecordCompletion decrements it (floored at zero), bumps the lifetime
//     total and restores availability once the courier carries nothing
//   - SetAvailability refuses to mark a loaded courier available
type Courier struct {
	id           kernel.UUID
	name         string
	email        string
	phone        string
	passwordHash string
	deviceToken  string

	available            bool
	active               bool
	currentOrdersCount   int
	totalOrdersCompleted int

	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewCourier creates a courier account in its initial state: active,
// available, with zero order counters. The password hash must already be
// computed by the caller; the aggregate never sees plaintext credentials.
func NewCourier(
	id kernel.UUID,
	name string,
	email string,
	phone string,
	passwordHash string,
	now time.Time,
) (*Courier, error) {
	courier := &Courier{
		phone:     phone,
		available: true,
		active:    true,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
		courier.setEmail(email),
		courier.setPasswordHash(passwordHash),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage.
// It validates the availability invariant: a courier carrying orders cannot
// be stored as available.
func RestoreCourier(
	id kernel.UUID,
	name string,
	email string,
	phone string,
	passwordHash string,
	deviceToken string,
	available bool,
	active bool,
	currentOrdersCount int,
	totalOrdersCompleted int,
	createdAt time.Time,
	updatedAt time.Time,
) (*Courier, error) {
	if currentOrdersCount < 0 {
		return nil, errs.NewValueIsOutOfRangeError("currentOrdersCount", currentOrdersCount, 0, int(^uint(0)>>1))
	}
	if totalOrdersCompleted < 0 {
		return nil, errs.NewValueIsOutOfRangeError("totalOrdersCompleted", totalOrdersCompleted, 0, int(^uint(0)>>1))
	}
	if available && currentOrdersCount > 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("available", ErrCourierIsBusy)
	}

	courier := &Courier{
		phone:                phone,
		deviceToken:          deviceToken,
		available:            available,
		active:               active,
		currentOrdersCount:   currentOrdersCount,
		totalOrdersCompleted: totalOrdersCompleted,
		createdAt:            createdAt,
		updatedAt:            updatedAt,
		guard:                guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
		courier.setEmail(email),
		courier.setPasswordHash(passwordHash),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// IsEqual compares two couriers by their unique identifiers.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// Validate checks if the Courier was properly constructed.
// The zero value of Courier is invalid and fails this validation.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's display name.
func (c *Courier) Name() string {
	return c.name
}

// Email returns the courier's login email.
func (c *Courier) Email() string {
	return c.email
}

// Phone returns the courier's contact phone, possibly empty.
func (c *Courier) Phone() string {
	return c.phone
}

// PasswordHash returns the stored credential hash.
func (c *Courier) PasswordHash() string {
	return c.passwordHash
}

// DeviceToken returns the push notification token, empty when the courier
// has not registered a device.
func (c *Courier) DeviceToken() string {
	return c.deviceToken
}

// Available reports whether the courier accepts new orders right now.
func (c *Courier) Available() bool {
	return c.available
}

// Active reports whether the courier account is enabled.
func (c *Courier) Active() bool {
	return c.active
}

// CurrentOrdersCount returns the number of orders the courier carries.
func (c *Courier) CurrentOrdersCount() int {
	return c.currentOrdersCount
}

// TotalOrdersCompleted returns the lifetime completed-order counter.
func (c *Courier) TotalOrdersCompleted() int {
	return c.totalOrdersCompleted
}

// CreatedAt returns the account creation timestamp.
func (c *Courier) CreatedAt() time.Time {
	return c.createdAt
}

// UpdatedAt returns the last-mutation timestamp.
func (c *Courier) UpdatedAt() time.Time {
	return c.updatedAt
}

// IsEligible reports whether the courier can be offered new work:
// the account is active and the courier has flagged themselves available.
func (c *Courier) IsEligible() bool {
	return c.active && c.available
}

// SetAvailability flips the courier's availability flag. Going available
// while carrying orders is rejected with ErrCourierIsBusy, and a deactivated
// account cannot change availability at all.
func (c *Courier) SetAvailability(available bool, now time.Time) error {
	if !c.active {
		return ErrCourierIsInactive
	}
	if available && c.currentOrdersCount > 0 {
		return ErrCourierIsBusy
	}

	c.available = available
	c.updatedAt = now
	return nil
}

// RecordAssignment registers that the courier claimed an order.
// The order counter goes up and availability drops until the load clears.
func (c *Courier) RecordAssignment(now time.Time) error {
	if !c.active {
		return ErrCourierIsInactive
	}

	c.currentOrdersCount++
	c.available = false
	c.updatedAt = now
	return nil
}

// RecordCompletion registers a delivered order. The current counter is
// floored at zero so a replayed completion cannot drive it negative, the
// lifetime total always advances, and availability is restored once the
// courier carries nothing.
func (c *Courier) RecordCompletion(now time.Time) {
	if c.currentOrdersCount > 0 {
		c.currentOrdersCount--
	}
	c.totalOrdersCompleted++
	c.available = c.currentOrdersCount == 0
	c.updatedAt = now
}

// UpdateDeviceToken replaces the push notification token.
// An empty token unregisters the device.
func (c *Courier) UpdateDeviceToken(token string, now time.Time) {
	c.deviceToken = token
	c.updatedAt = now
}

// Deactivate disables the account. An inactive courier keeps its counters
// but is excluded from dispatch until reactivated.
func (c *Courier) Deactivate(now time.Time) {
	c.active = false
	c.updatedAt = now
}

// Activate re-enables a previously deactivated account.
func (c *Courier) Activate(now time.Time) {
	c.active = true
	c.updatedAt = now
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if len(name) > nameMaxLen {
		return errs.NewValueIsOutOfRangeError("name length", len(name), 1, nameMaxLen)
	}
	c.name = name
	return nil
}

func (c *Courier) setEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if len(email) > emailMaxLen {
		return errs.NewValueIsOutOfRangeError("email length", len(email), 1, emailMaxLen)
	}
	c.email = email
	return nil
}

func (c *Courier) setPasswordHash(passwordHash string) error {
	if passwordHash == "" {
		return errs.NewValueIsRequiredError("passwordHash")
	}
	c.passwordHash = passwordHash
	return nil
}
