package order_test

import (
	"strings"
	"testing"
	"time"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/order"
	"broker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingOrder(t *testing.T, now time.Time) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"Pizza, no onions",
		"123 Main St",
		order.NewContactInfo("Alice", "5550001", "alice@example.com"),
		now,
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	now := time.Now().UTC()

	t.Run("creates pending order with courier fields unset", func(t *testing.T) {
		o := newPendingOrder(t, now)

		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.Courier())
		assert.Nil(t, o.CourierInfo())
		assert.Nil(t, o.AssignedAt())
		assert.Nil(t, o.CompletedAt())
		assert.Equal(t, now, o.CreatedAt())
		assert.Equal(t, now, o.UpdatedAt())
		assert.Equal(t, "Alice", o.UserInfo().Name())
	})

	t.Run("rejects invalid ids", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, kernel.NewUUID(), "valid notes", "addr",
			order.ContactInfo{}, now)
		require.Error(t, err)

		_, err = order.NewOrder(kernel.NewUUID(), kernel.UUID{}, "valid notes", "addr",
			order.ContactInfo{}, now)
		require.Error(t, err)
	})

	t.Run("rejects notes outside bounds", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "ab", "addr",
			order.ContactInfo{}, now)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), strings.Repeat("x", 501), "addr",
			order.ContactInfo{}, now)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects empty or oversized address", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "valid notes", "",
			order.ContactInfo{}, now)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "valid notes",
			strings.Repeat("x", 256), order.ContactInfo{}, now)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Assign(t *testing.T) {
	now := time.Now().UTC()

	t.Run("pending order is claimed", func(t *testing.T) {
		o := newPendingOrder(t, now)
		courierID := kernel.NewUUID()
		assignedAt := now.Add(5 * time.Minute)

		err := o.Assign(courierID, order.NewContactInfo("Bob", "5550002", "bob@example.com"), assignedAt)

		require.NoError(t, err)
		assert.Equal(t, order.Processing, o.Status())
		require.NotNil(t, o.Courier())
		assert.True(t, o.Courier().IsEqual(courierID))
		require.NotNil(t, o.CourierInfo())
		assert.Equal(t, "Bob", o.CourierInfo().Name())
		require.NotNil(t, o.AssignedAt())
		assert.Equal(t, assignedAt, *o.AssignedAt())
		assert.Equal(t, assignedAt, o.UpdatedAt())
	})

	t.Run("processing order cannot be claimed again", func(t *testing.T) {
		o := newPendingOrder(t, now)
		require.NoError(t, o.Assign(kernel.NewUUID(), order.ContactInfo{}, now))

		err := o.Assign(kernel.NewUUID(), order.ContactInfo{}, now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.Processing, o.Status())
	})

	t.Run("invalid courier id is rejected", func(t *testing.T) {
		o := newPendingOrder(t, now)

		err := o.Assign(kernel.UUID{}, order.ContactInfo{}, now)

		require.Error(t, err)
		assert.Equal(t, order.Pending, o.Status())
	})
}

func TestOrder_Complete(t *testing.T) {
	now := time.Now().UTC()

	t.Run("assigned courier completes the order", func(t *testing.T) {
		o := newPendingOrder(t, now)
		courierID := kernel.NewUUID()
		require.NoError(t, o.Assign(courierID, order.ContactInfo{}, now.Add(5*time.Minute)))

		completedAt := now.Add(20 * time.Minute)
		err := o.Complete(courierID, completedAt)

		require.NoError(t, err)
		assert.Equal(t, order.Completed, o.Status())
		require.NotNil(t, o.CompletedAt())
		assert.Equal(t, completedAt, *o.CompletedAt())
		assert.Equal(t, completedAt, o.UpdatedAt())
	})

	t.Run("different courier cannot complete", func(t *testing.T) {
		o := newPendingOrder(t, now)
		require.NoError(t, o.Assign(kernel.NewUUID(), order.ContactInfo{}, now))

		err := o.Complete(kernel.NewUUID(), now)

		require.ErrorIs(t, err, order.ErrNotAssignedCourier)
		assert.Equal(t, order.Processing, o.Status())
		assert.Nil(t, o.CompletedAt())
	})

	t.Run("pending order cannot be completed", func(t *testing.T) {
		o := newPendingOrder(t, now)

		err := o.Complete(kernel.NewUUID(), now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("completing twice does not move completed_at", func(t *testing.T) {
		o := newPendingOrder(t, now)
		courierID := kernel.NewUUID()
		require.NoError(t, o.Assign(courierID, order.ContactInfo{}, now))
		firstCompletion := now.Add(20 * time.Minute)
		require.NoError(t, o.Complete(courierID, firstCompletion))

		err := o.Complete(courierID, now.Add(time.Hour))

		require.Error(t, err)
		assert.Equal(t, order.Completed, o.Status())
		assert.Equal(t, firstCompletion, *o.CompletedAt())
	})
}

func TestOrder_TimestampsAreMonotonic(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	o := newPendingOrder(t, created)
	courierID := kernel.NewUUID()

	require.NoError(t, o.Assign(courierID, order.ContactInfo{}, created.Add(5*time.Minute)))
	require.NoError(t, o.Complete(courierID, created.Add(20*time.Minute)))

	assert.True(t, !o.AssignedAt().Before(o.CreatedAt()))
	assert.True(t, !o.CompletedAt().Before(*o.AssignedAt()))
}

func TestRestoreOrder(t *testing.T) {
	now := time.Now().UTC()
	courierID := kernel.NewUUID()
	courierInfo := order.NewContactInfo("Bob", "5550002", "bob@example.com")
	assignedAt := now.Add(5 * time.Minute)
	completedAt := now.Add(20 * time.Minute)

	t.Run("restores completed order", func(t *testing.T) {
		o, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(),
			"Pizza, no onions", "123 Main St",
			order.NewContactInfo("Alice", "5550001", "alice@example.com"),
			order.Completed, &courierID, &courierInfo,
			now, completedAt, &assignedAt, &completedAt,
		)

		require.NoError(t, err)
		assert.Equal(t, order.Completed, o.Status())
		assert.NoError(t, o.Validate())
	})

	t.Run("rejects pending order with courier", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(),
			"Pizza, no onions", "123 Main St", order.ContactInfo{},
			order.Pending, &courierID, &courierInfo,
			now, now, nil, nil,
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects processing order without courier", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(),
			"Pizza, no onions", "123 Main St", order.ContactInfo{},
			order.Processing, nil, nil,
			now, now, &assignedAt, nil,
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects completed order without completed_at", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(),
			"Pizza, no onions", "123 Main St", order.ContactInfo{},
			order.Completed, &courierID, &courierInfo,
			now, now, &assignedAt, nil,
		)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("constructed order validates", func(t *testing.T) {
		o := newPendingOrder(t, time.Now())
		require.NoError(t, o.Validate())
	})

	t.Run("zero value order fails validation", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("nil order fails validation", func(t *testing.T) {
		var o *order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}
