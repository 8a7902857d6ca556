package queries

import (
	"context"

	"broker/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// ListPendingOrdersQueryHandler serves the claimable-order feed couriers
// browse before picking up work.
type ListPendingOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListPendingOrdersQueryHandler creates a handler for the pending feed.
func NewListPendingOrdersQueryHandler(db *gorm.DB) ListPendingOrdersQueryHandler {
	return ListPendingOrdersQueryHandler{db: db}
}

// Handle executes the query. Orders are returned oldest first.
func (h ListPendingOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListPendingOrdersQuery,
) (ListOrdersResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersResponse{}, err
	}

	var total int64
	err := h.db.WithContext(ctx).Raw(`
		SELECT count(*) FROM orders WHERE status = ?
	`, order.Pending.String()).Scan(&total).Error
	if err != nil {
		return ListOrdersResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE status = ?
		ORDER BY created_at ASC
		LIMIT ? OFFSET ?
	`, order.Pending.String(), query.Limit(), query.Skip()).Rows()
	if err != nil {
		return ListOrdersResponse{}, err
	}
	defer rows.Close()

	orders := make([]OrderResponse, 0)
	for rows.Next() {
		resp, scanErr := scanOrderResponse(rows)
		if scanErr != nil {
			return ListOrdersResponse{}, scanErr
		}
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return ListOrdersResponse{}, err
	}

	return ListOrdersResponse{
		Orders: orders,
		Page:   NewPageInfo(total, query.Limit(), query.Skip()),
	}, nil
}
