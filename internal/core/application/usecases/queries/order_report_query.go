package queries

import (
	"errors"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/pkg/guard"
)

var ErrOrderReportQueryIsNotConstructed = errors.New(
	"OrderReportQuery must be created via NewOrderReportQuery constructor",
)

// OrderReportQuery retrieves a single order together with its lifecycle
// latencies.
type OrderReportQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewOrderReportQuery creates a report query for one order.
func NewOrderReportQuery(orderID kernel.UUID) (OrderReportQuery, error) {
	if err := orderID.Validate(); err != nil {
		return OrderReportQuery{}, err
	}

	return OrderReportQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q OrderReportQuery) Validate() error {
	return q.guard.Validate(ErrOrderReportQueryIsNotConstructed)
}

// OrderID returns the identifier of the reported order.
func (q OrderReportQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderReportResponse is an order projection annotated with lifecycle
// latencies in minutes, two decimal places. A latency is nil until the
// timestamps that define it exist.
type OrderReportResponse struct {
	Order             OrderResponse
	AssignmentMinutes *float64
	DeliveryMinutes   *float64
	TotalMinutes      *float64
}
