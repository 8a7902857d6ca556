package queries

import (
	"context"

	"gorm.io/gorm"
)

// UserHistoryQueryHandler serves the delivery history of a user's orders.
type UserHistoryQueryHandler struct {
	db *gorm.DB
}

// NewUserHistoryQueryHandler creates a handler for user history queries.
func NewUserHistoryQueryHandler(db *gorm.DB) UserHistoryQueryHandler {
	return UserHistoryQueryHandler{db: db}
}

// Handle executes the query over completed orders only.
func (h UserHistoryQueryHandler) Handle(ctx context.Context, query UserHistoryQuery) (HistoryResponse, error) {
	if err := query.Validate(); err != nil {
		return HistoryResponse{}, err
	}

	return queryHistory(
		ctx, h.db,
		"user_id", query.UserID(),
		query.From(), query.To(),
		query.Limit(), query.Skip(),
	)
}
