package notification

import (
	"errors"
	"time"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/pkg/errs"
	"broker/internal/pkg/guard"
)

const titleMaxLen = 255

// Recipient roles a notification can target.
const (
	RoleUser    Role = "user"
	RoleCourier Role = "courier"
)

// Notification types produced by the order lifecycle.
const (
	TypeNewOrder       Type = "new_order"
	TypeOrderAssigned  Type = "order_assigned"
	TypeOrderCompleted Type = "order_completed"
	TypeGeneral        Type = "general"
)

// ErrNotificationIsNotConstructed is returned when using an improperly
// initialized Notification.
var ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification constructor")

// Role identifies which side of the marketplace a notification targets.
type Role string

// Validate checks the role against the known recipient kinds.
func (r Role) Validate() error {
	switch r {
	case RoleUser, RoleCourier:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("recipientRole",
			errors.New("unknown recipient role: "+string(r)))
	}
}

// Type classifies a notification for client-side routing.
type Type string

// Validate checks the type against the known notification kinds.
func (t Type) Validate() error {
	switch t {
	case TypeNewOrder, TypeOrderAssigned, TypeOrderCompleted, TypeGeneral:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("type",
			errors.New("unknown notification type: "+string(t)))
	}
}

// Notification is a durable per-recipient message record. One is written for
// every recipient of a fan-out regardless of whether the push transport
// reached their device, so the in-app feed stays complete even when delivery
// fails. The read flag only ever moves from unread to read.
type Notification struct {
	id            kernel.UUID
	recipientID   kernel.UUID
	recipientRole Role
	notifType     Type
	title         string
	body          string
	payload       map[string]string
	read          bool

	createdAt time.Time
	readAt    *time.Time

	guard guard.ConstructorGuard
}

// NewNotification creates an unread notification for a single recipient.
// The payload carries contextual references such as the order ID and is
// copied so callers cannot mutate it afterwards.
func NewNotification(
	id kernel.UUID,
	recipientID kernel.UUID,
	recipientRole Role,
	notifType Type,
	title string,
	body string,
	payload map[string]string,
	now time.Time,
) (*Notification, error) {
	n := &Notification{
		createdAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		n.setID(id),
		n.setRecipientID(recipientID),
		n.setRecipientRole(recipientRole),
		n.setType(notifType),
		n.setTitle(title),
	); err != nil {
		return nil, err
	}

	n.body = body
	n.payload = copyPayload(payload)
	return n, nil
}

// RestoreNotification reconstructs a Notification from persistent storage.
func RestoreNotification(
	id kernel.UUID,
	recipientID kernel.UUID,
	recipientRole Role,
	notifType Type,
	title string,
	body string,
	payload map[string]string,
	read bool,
	createdAt time.Time,
	readAt *time.Time,
) (*Notification, error) {
	if read && readAt == nil {
		return nil, errs.NewValueIsRequiredError("readAt")
	}

	n := &Notification{
		read:      read,
		createdAt: createdAt,
		readAt:    readAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		n.setID(id),
		n.setRecipientID(recipientID),
		n.setRecipientRole(recipientRole),
		n.setType(notifType),
		n.setTitle(title),
	); err != nil {
		return nil, err
	}

	n.body = body
	n.payload = copyPayload(payload)
	return n, nil
}

// Validate checks if the Notification was properly constructed.
func (n *Notification) Validate() error {
	if n == nil {
		return ErrNotificationIsNotConstructed
	}
	return n.guard.Validate(ErrNotificationIsNotConstructed)
}

// ID returns the notification's unique identifier.
func (n *Notification) ID() kernel.UUID {
	return n.id
}

// RecipientID returns the target account's identifier.
func (n *Notification) RecipientID() kernel.UUID {
	return n.recipientID
}

// RecipientRole returns whether the target is a user or a courier.
func (n *Notification) RecipientRole() Role {
	return n.recipientRole
}

// Type returns the notification classification.
func (n *Notification) Type() Type {
	return n.notifType
}

// Title returns the short display title.
func (n *Notification) Title() string {
	return n.title
}

// Body returns the message text.
func (n *Notification) Body() string {
	return n.body
}

// Payload returns a copy of the contextual key-value payload.
func (n *Notification) Payload() map[string]string {
	return copyPayload(n.payload)
}

// Read reports whether the recipient has seen the notification.
func (n *Notification) Read() bool {
	return n.read
}

// CreatedAt returns the creation timestamp.
func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// ReadAt returns when the notification was read, or nil while unread.
func (n *Notification) ReadAt() *time.Time {
	return n.readAt
}

// MarkRead flips the notification to read. Marking an already-read
// notification is a no-op that keeps the original read timestamp.
func (n *Notification) MarkRead(now time.Time) {
	if n.read {
		return
	}
	n.read = true
	n.readAt = &now
}

func (n *Notification) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n.id = id
	return nil
}

func (n *Notification) setRecipientID(recipientID kernel.UUID) error {
	if err := recipientID.Validate(); err != nil {
		return err
	}
	n.recipientID = recipientID
	return nil
}

func (n *Notification) setRecipientRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	n.recipientRole = role
	return nil
}

func (n *Notification) setType(notifType Type) error {
	if err := notifType.Validate(); err != nil {
		return err
	}
	n.notifType = notifType
	return nil
}

func (n *Notification) setTitle(title string) error {
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	if len(title) > titleMaxLen {
		return errs.NewValueIsOutOfRangeError("title length", len(title), 1, titleMaxLen)
	}
	n.title = title
	return nil
}

func copyPayload(payload map[string]string) map[string]string {
	if payload == nil {
		return nil
	}
	out := make(map[string]string, len(payload))
	for k, v := range payload {
		out[k] = v
	}
	return out
}
