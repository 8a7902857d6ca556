// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between the domain model and its relational shape.
package orderrepo

import (
	"time"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Contact snapshots are denormalized onto the row so reads never join the
// account tables, and the status column is indexed for the pending feed and
// the compare-and-set claim.
type OrderDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID  `gorm:"type:uuid;index"`
	UserName     string     `gorm:"size:100"`
	UserPhone    string     `gorm:"size:50"`
	UserEmail    string     `gorm:"size:255"`
	CourierID    *uuid.UUID `gorm:"type:uuid;index"`
	CourierName  *string    `gorm:"size:100"`
	CourierPhone *string    `gorm:"size:50"`
	CourierEmail *string    `gorm:"size:255"`
	Status       string     `gorm:"size:20;index"`
	Notes        string     `gorm:"size:500"`
	Address      string     `gorm:"size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	AssignedAt   *time.Time
	CompletedAt  *time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:          aggregate.ID().Bytes(),
		UserID:      aggregate.UserID().Bytes(),
		UserName:    aggregate.UserInfo().Name(),
		UserPhone:   aggregate.UserInfo().Phone(),
		UserEmail:   aggregate.UserInfo().Email(),
		Status:      aggregate.Status().String(),
		Notes:       aggregate.Notes(),
		Address:     aggregate.Address(),
		CreatedAt:   aggregate.CreatedAt(),
		UpdatedAt:   aggregate.UpdatedAt(),
		AssignedAt:  aggregate.AssignedAt(),
		CompletedAt: aggregate.CompletedAt(),
	}

	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		dto.CourierID = &raw
	}
	if info := aggregate.CourierInfo(); info != nil {
		name, phone, email := info.Name(), info.Phone(), info.Email()
		dto.CourierName = &name
		dto.CourierPhone = &phone
		dto.CourierEmail = &email
	}

	return dto
}

// toDomain converts a database DTO back to an order domain aggregate using
// RestoreOrder, which re-checks the status/courier consistency invariant.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	var courierInfo *order.ContactInfo
	if dto.CourierName != nil {
		var phone, email string
		if dto.CourierPhone != nil {
			phone = *dto.CourierPhone
		}
		if dto.CourierEmail != nil {
			email = *dto.CourierEmail
		}
		info := order.NewContactInfo(*dto.CourierName, phone, email)
		courierInfo = &info
	}

	return order.RestoreOrder(
		id,
		userID,
		dto.Notes,
		dto.Address,
		order.NewContactInfo(dto.UserName, dto.UserPhone, dto.UserEmail),
		status,
		courierID,
		courierInfo,
		dto.CreatedAt,
		dto.UpdatedAt,
		dto.AssignedAt,
		dto.CompletedAt,
	)
}
