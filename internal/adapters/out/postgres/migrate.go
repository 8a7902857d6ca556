package postgres

import (
	"broker/internal/adapters/out/postgres/courierrepo"
	"broker/internal/adapters/out/postgres/notificationrepo"
	"broker/internal/adapters/out/postgres/orderrepo"
	"broker/internal/adapters/out/postgres/outboxrepo"
	"broker/internal/adapters/out/postgres/userrepo"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for every persisted aggregate
// and the outbox table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userrepo.UserDTO{},
		&courierrepo.CourierDTO{},
		&orderrepo.OrderDTO{},
		&notificationrepo.NotificationDTO{},
		&outboxrepo.OutboxMessageDTO{},
	)
}
