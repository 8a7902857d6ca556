// Package courierrepo provides data transfer objects and mapping functions
// for courier persistence. It implements the repository pattern for the
// courier aggregate, including the availability fields the broadcast
// recipient query filters on.
package courierrepo

import (
	"time"

	"broker/internal/core/domain/model/courier"
	"broker/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier
// aggregates. Email carries a unique index for registration, and the
// (active, available) pair is indexed for the eligibility query.
type CourierDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                 string    `gorm:"size:100"`
	Email                string    `gorm:"size:255;uniqueIndex"`
	Phone                string    `gorm:"size:50"`
	PasswordHash         string    `gorm:"size:255"`
	DeviceToken          string    `gorm:"size:512"`
	Available            bool      `gorm:"index:idx_couriers_eligible"`
	Active               bool      `gorm:"index:idx_couriers_eligible"`
	CurrentOrdersCount   int
	TotalOrdersCompleted int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

// fromDomain converts a courier domain aggregate to its database representation.
func fromDomain(aggregate *courier.Courier) CourierDTO {
	return CourierDTO{
		ID:                   aggregate.ID().Bytes(),
		Name:                 aggregate.Name(),
		Email:                aggregate.Email(),
		Phone:                aggregate.Phone(),
		PasswordHash:         aggregate.PasswordHash(),
		DeviceToken:          aggregate.DeviceToken(),
		Available:            aggregate.Available(),
		Active:               aggregate.Active(),
		CurrentOrdersCount:   aggregate.CurrentOrdersCount(),
		TotalOrdersCompleted: aggregate.TotalOrdersCompleted(),
		CreatedAt:            aggregate.CreatedAt(),
		UpdatedAt:            aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO back to a courier domain aggregate.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(
		id,
		dto.Name,
		dto.Email,
		dto.Phone,
		dto.PasswordHash,
		dto.DeviceToken,
		dto.Available,
		dto.Active,
		dto.CurrentOrdersCount,
		dto.TotalOrdersCompleted,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
