package ports

import (
	"context"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for user aggregates.
type UserRepository interface {
	// Add persists a new user aggregate to storage.
	Add(ctx context.Context, aggregate *user.User) error

	// Update persists changes to an existing user aggregate.
	Update(ctx context.Context, aggregate *user.User) error

	// Get retrieves a user aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetByEmail retrieves a user by login email.
	// Returns an object-not-found error when no user has that email.
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}
