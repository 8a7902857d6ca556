package order

import (
	"errors"
	"fmt"
	"time"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/pkg/errs"
	"broker/internal/pkg/guard"
)

const (
	// notesMinLen and notesMaxLen bound the free-text order notes.
	notesMinLen = 3
	notesMaxLen = 500
	// addressMaxLen bounds the delivery address.
	addressMaxLen = 255
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrNotAssignedCourier is returned when a courier tries to complete an order
	// that is assigned to somebody else. This is an authorization invariant, not
	// merely a state check.
	ErrNotAssignedCourier = errors.New("order is assigned to a different courier")
)

// Order represents a delivery order. It is the aggregate root that manages the
// order lifecycle from creation through claim to completion.
//
// Order maintains these invariants:
//   - Valid unique identifier and owning-user reference
//   - Notes between 3 and 500 characters, address between 1 and 255
//   - Status transitions follow Pending -> Processing -> Completed only
//   - Courier reference and snapshot are set iff status is Processing or Completed
//   - completed_at is set iff status is Completed
//   - created_at <= assigned_at <= completed_at where present
//
// The struct uses private fields to ensure encapsulation; state changes go
// through Assign and Complete, which stamp the timestamps.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// userID references the user who placed the order
	userID kernel.UUID

	// notes is the free-text description of the order
	notes string

	// address is the delivery address
	address string

	// userInfo is the owner contact snapshot captured at creation
	userInfo ContactInfo

	// status is the current state in the order lifecycle
	status Status

	// courierID is the assigned courier's ID (nil until claimed)
	courierID *kernel.UUID

	// courierInfo is the courier contact snapshot captured at assignment
	courierInfo *ContactInfo

	createdAt   time.Time
	updatedAt   time.Time
	assignedAt  *time.Time
	completedAt *time.Time

	// guard ensures the order was created via a constructor
	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in Pending status with courier fields unset.
// The owner contact snapshot is captured here and never refreshed.
// created_at and updated_at are both stamped with now.
//
// Returns a validation error if the id or owner reference is invalid, or if
// notes/address fall outside their length bounds.
func NewOrder(
	id kernel.UUID,
	userID kernel.UUID,
	notes string,
	address string,
	userInfo ContactInfo,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:    Pending,
		userInfo:  userInfo,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setNotes(notes),
		o.setAddress(address),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
// Unlike NewOrder, it accepts any lifecycle state and verifies the
// status/courier consistency invariant before returning the aggregate.
func RestoreOrder(
	id kernel.UUID,
	userID kernel.UUID,
	notes string,
	address string,
	userInfo ContactInfo,
	status Status,
	courierID *kernel.UUID,
	courierInfo *ContactInfo,
	createdAt time.Time,
	updatedAt time.Time,
	assignedAt *time.Time,
	completedAt *time.Time,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := status.ValidateCanHaveCourier(courierID != nil); err != nil {
		return nil, err
	}
	if status == Completed && completedAt == nil {
		return nil, errs.NewValueIsRequiredError("completedAt")
	}

	o := &Order{
		status:      status,
		userInfo:    userInfo,
		courierID:   courierID,
		courierInfo: courierInfo,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		assignedAt:  assignedAt,
		completedAt: completedAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setNotes(notes),
		o.setAddress(address),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed for zero-value instances.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// UserID returns the owning user's identifier.
func (o *Order) UserID() kernel.UUID {
	return o.userID
}

// Notes returns the free-text order notes.
func (o *Order) Notes() string {
	return o.notes
}

// Address returns the delivery address.
func (o *Order) Address() string {
	return o.address
}

// UserInfo returns the owner contact snapshot captured at creation.
func (o *Order) UserInfo() ContactInfo {
	return o.userInfo
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Courier returns the assigned courier's ID, or nil if unclaimed.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// CourierInfo returns the courier contact snapshot, or nil if unclaimed.
func (o *Order) CourierInfo() *ContactInfo {
	return o.courierInfo
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last-mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// AssignedAt returns the claim timestamp, or nil if unclaimed.
func (o *Order) AssignedAt() *time.Time {
	return o.assignedAt
}

// CompletedAt returns the completion timestamp, or nil if not completed.
func (o *Order) CompletedAt() *time.Time {
	return o.completedAt
}

// Assign claims the order for a courier, transitioning Pending -> Processing.
// Sets the courier reference and contact snapshot and stamps
// assigned_at = updated_at = now (set once, never rewritten).
//
// Returns an error if the courier ID is invalid or the order is not Pending.
// The in-memory transition mirrors the conditional update the repository
// performs; under a claim race the storage write is what decides the winner.
func (o *Order) Assign(courierID kernel.UUID, courierInfo ContactInfo, now time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courierID = &courierID
	o.courierInfo = &courierInfo
	o.assignedAt = &now
	o.updatedAt = now
	return nil
}

// Complete marks the order delivered, transitioning Processing -> Completed.
// Only the assigned courier may complete the order; anyone else gets
// ErrNotAssignedCourier with no state change. Stamps
// completed_at = updated_at = now.
func (o *Order) Complete(courierID kernel.UUID, now time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	if o.courierID == nil || !o.courierID.IsEqual(courierID) {
		return ErrNotAssignedCourier
	}

	o.status = newStatus
	o.completedAt = &now
	o.updatedAt = now
	return nil
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setUserID validates and sets the owning user reference.
func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	o.userID = userID
	return nil
}

// setNotes validates the notes length bounds.
func (o *Order) setNotes(notes string) error {
	if len(notes) < notesMinLen || len(notes) > notesMaxLen {
		return errs.NewValueIsOutOfRangeError("notes length", len(notes), notesMinLen, notesMaxLen)
	}
	o.notes = notes
	return nil
}

// setAddress validates the address length bounds.
func (o *Order) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	if len(address) > addressMaxLen {
		return errs.NewValueIsInvalidErrorWithCause("address",
			fmt.Errorf("length %d exceeds %d characters", len(address), addressMaxLen))
	}
	o.address = address
	return nil
}
