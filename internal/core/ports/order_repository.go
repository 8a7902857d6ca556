package ports

import (
	"context"
	"errors"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/order"
)

// ErrConcurrentUpdate is returned by conditional writes when the stored row
// no longer matches the state the aggregate transitioned from. It signals
// that another actor won the race, not that the aggregate is missing.
var ErrConcurrentUpdate = errors.New("aggregate was modified concurrently")

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate without any
	// status precondition.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateInStatus persists the aggregate only if the stored row is still
	// in prevStatus. This is the compare-and-set write behind claim and
	// completion: exactly one concurrent writer observes a matching row,
	// everyone else gets ErrConcurrentUpdate.
	UpdateInStatus(ctx context.Context, aggregate *order.Order, prevStatus order.Status) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInPendingStatus retrieves all unclaimed orders, oldest first.
	GetAllInPendingStatus(ctx context.Context) ([]*order.Order, error)
}
