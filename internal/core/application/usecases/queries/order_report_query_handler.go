package queries

import (
	"context"

	"gorm.io/gorm"
)

// OrderReportQueryHandler computes per-order lifecycle latencies: how long
// the order waited for a claim, how long the delivery took, and the total
// time from creation to completion.
type OrderReportQueryHandler struct {
	orders GetOrderQueryHandler
}

// NewOrderReportQueryHandler creates a handler for order reports.
func NewOrderReportQueryHandler(db *gorm.DB) OrderReportQueryHandler {
	return OrderReportQueryHandler{orders: NewGetOrderQueryHandler(db)}
}

// Handle executes the report query. Returns errs.ErrObjectNotFound when the
// order does not exist.
func (h OrderReportQueryHandler) Handle(ctx context.Context, query OrderReportQuery) (OrderReportResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderReportResponse{}, err
	}

	orderQuery, err := NewGetOrderQuery(query.OrderID())
	if err != nil {
		return OrderReportResponse{}, err
	}

	resp, err := h.orders.Handle(ctx, orderQuery)
	if err != nil {
		return OrderReportResponse{}, err
	}

	report := OrderReportResponse{Order: resp}
	if resp.AssignedAt != nil {
		assignment := roundMinutes(resp.AssignedAt.Sub(resp.CreatedAt))
		report.AssignmentMinutes = &assignment
	}
	if resp.CompletedAt != nil {
		if resp.AssignedAt != nil {
			delivery := roundMinutes(resp.CompletedAt.Sub(*resp.AssignedAt))
			report.DeliveryMinutes = &delivery
		}
		total := roundMinutes(resp.CompletedAt.Sub(resp.CreatedAt))
		report.TotalMinutes = &total
	}

	return report, nil
}
