package ports

import (
	"context"

	"broker/internal/core/domain/model/courier"
	"broker/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update persists changes to an existing courier aggregate.
	Update(ctx context.Context, aggregate *courier.Courier) error

	// Get retrieves a courier aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetByEmail retrieves a courier by login email.
	// Returns an object-not-found error when no courier has that email.
	GetByEmail(ctx context.Context, email string) (*courier.Courier, error)

	// GetAllEligible retrieves active, available couriers ordered by current
	// load so the least busy couriers come first. Used to resolve broadcast
	// recipients at dispatch time.
	GetAllEligible(ctx context.Context) ([]*courier.Courier, error)
}
