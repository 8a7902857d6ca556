package services

import (
	"context"
	"log/slog"
	"time"

	"broker/internal/core/domain/model/courier"
	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/ports"
)

// AvailabilityRegistry owns the courier availability surface: it applies a
// courier's own availability toggle and answers who is eligible for a
// broadcast. The order counters themselves move inside the claim and
// complete transactions, atomically with the order state they mirror.
type AvailabilityRegistry struct {
	uowFactory ports.UnitOfWorkFactory
	logger     *slog.Logger
}

// NewAvailabilityRegistry creates a registry. A nil logger falls back to
// slog.Default.
func NewAvailabilityRegistry(uowFactory ports.UnitOfWorkFactory, logger *slog.Logger) *AvailabilityRegistry {
	if logger == nil {
		logger = slog.Default()
	}
	return &AvailabilityRegistry{
		uowFactory: uowFactory,
		logger:     logger.With("component", "availability_registry"),
	}
}

// ListEligible returns active, available couriers ordered by current load.
func (r *AvailabilityRegistry) ListEligible(ctx context.Context) ([]*courier.Courier, error) {
	uow := r.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	couriers, err := uow.CourierRepository().GetAllEligible(ctx)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	return couriers, nil
}

// SetAvailability applies a courier's own availability toggle.
// Going available while carrying orders fails with courier.ErrCourierIsBusy.
func (r *AvailabilityRegistry) SetAvailability(ctx context.Context, courierID kernel.UUID, available bool) error {
	return r.mutate(ctx, courierID, func(c *courier.Courier, now time.Time) error {
		return c.SetAvailability(available, now)
	})
}

func (r *AvailabilityRegistry) mutate(
	ctx context.Context,
	courierID kernel.UUID,
	change func(c *courier.Courier, now time.Time) error,
) error {
	uow := r.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	repo := uow.CourierRepository()
	aggregate, err := repo.Get(ctx, courierID)
	if err != nil {
		return err
	}

	if err := change(aggregate, time.Now().UTC()); err != nil {
		return err
	}

	if err := repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
