package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListCourierOrdersQueryHandler serves a courier's claimed-order list.
type ListCourierOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListCourierOrdersQueryHandler creates a handler for courier order listings.
func NewListCourierOrdersQueryHandler(db *gorm.DB) ListCourierOrdersQueryHandler {
	return ListCourierOrdersQueryHandler{db: db}
}

// Handle executes the query. Orders are returned newest first.
func (h ListCourierOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListCourierOrdersQuery,
) (ListOrdersResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersResponse{}, err
	}

	where := "courier_id = ?"
	args := []any{query.CourierID().Bytes()}
	if query.Status() != nil {
		where += " AND status = ?"
		args = append(args, query.Status().String())
	}

	var total int64
	err := h.db.WithContext(ctx).Raw(
		"SELECT count(*) FROM orders WHERE "+where, args...,
	).Scan(&total).Error
	if err != nil {
		return ListOrdersResponse{}, err
	}

	args = append(args, query.Limit(), query.Skip())
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE `+where+`
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, args...).Rows()
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
