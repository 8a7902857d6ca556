package queries

import (
	"context"

	"gorm.io/gorm"
)

// CourierHistoryQueryHandler serves the delivery history of a courier's
// completed orders.
type CourierHistoryQueryHandler struct {
	db *gorm.DB
}

// NewCourierHistoryQueryHandler creates a handler for courier history queries.
func NewCourierHistoryQueryHandler(db *gorm.DB) CourierHistoryQueryHandler {
	return CourierHistoryQueryHandler{db: db}
}

// Handle executes the query over completed orders only.
func (h CourierHistoryQueryHandler) Handle(ctx context.Context, query CourierHistoryQuery) (HistoryResponse, error) {
	if err := query.Validate(); err != nil {
		return HistoryResponse{}, err
	}

	return queryHistory(
		ctx, h.db,
		"courier_id", query.CourierID(),
		query.From(), query.To(),
		query.Limit(), query.Skip(),
	)
}
