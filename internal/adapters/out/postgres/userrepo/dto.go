// Package userrepo provides data transfer objects and mapping functions for
// user persistence.
package userrepo

import (
	"time"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO represents the database structure for persisting user aggregates.
type UserDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"size:100"`
	Email        string    `gorm:"size:255;uniqueIndex"`
	Phone        string    `gorm:"size:50"`
	PasswordHash string    `gorm:"size:255"`
	DeviceToken  string    `gorm:"size:512"`
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the database table name for user entities.
func (UserDTO) TableName() string {
	return "users"
}

// fromDomain converts a user domain aggregate to its database representation.
func fromDomain(aggregate *user.User) UserDTO {
	return UserDTO{
		ID:           aggregate.ID().Bytes(),
		Name:         aggregate.Name(),
		Email:        aggregate.Email(),
		Phone:        aggregate.Phone(),
		PasswordHash: aggregate.PasswordHash(),
		DeviceToken:  aggregate.DeviceToken(),
		Active:       aggregate.Active(),
		CreatedAt:    aggregate.CreatedAt(),
		UpdatedAt:    aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO back to a user domain aggregate.
func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(
		id,
		dto.Name,
		dto.Email,
		dto.Phone,
		dto.PasswordHash,
		dto.DeviceToken,
		dto.Active,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
