package http

import (
	"net/http"

	"broker/internal/core/application/usecases/queries"
	"broker/internal/pkg/auth"

	"github.com/labstack/echo/v4"
)

// GetHistory handles GET /api/v1/history: completed deliveries of the
// calling account with duration statistics, optionally bounded by from/to
// dates.
func (s *Server) GetHistory(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return writeError(ctx, http.StatusUnauthorized, "missing bearer token")
	}

	limit, skip, ok := pageParams(ctx)
	if !ok {
		return nil
	}
	from, ok := dateParam(ctx, "from")
	if !ok {
		return nil
	}
	to, ok := dateParam(ctx, "to")
	if !ok {
		return nil
	}

	var (
		response queries.HistoryResponse
		err      error
	)
	switch actor.Role {
	case auth.RoleUser:
		var query queries.UserHistoryQuery
		query, err = queries.NewUserHistoryQuery(actor.ID, from, to, limit, skip)
		if err != nil {
			return respondError(ctx, err)
		}
		response, err = s.userHistoryHandler.Handle(ctx.Request().Context(), query)
	case auth.RoleCourier:
		var query queries.CourierHistoryQuery
		query, err = queries.NewCourierHistoryQuery(actor.ID, from, to, limit, skip)
		if err != nil {
			return respondError(ctx, err)
		}
		response, err = s.courierHistoryHandler.Handle(ctx.Request().Context(), query)
	default:
		return writeError(ctx, http.StatusForbidden, "insufficient role")
	}
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toHistoryPagePayload(response))
}

// GetOrderReport handles GET /api/v1/history/orders/:id. Access follows the
// same visibility rule as GET /orders/:id.
func (s *Server) GetOrderReport(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return writeError(ctx, http.StatusUnauthorized, "missing bearer token")
	}

	orderID, ok := uuidParam(ctx, "id")
	if !ok {
		return nil
	}

	query, err := queries.NewOrderReportQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	response, err := s.orderReportHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	if !canViewOrder(actor, response.Order) {
		return writeError(ctx, http.StatusForbidden, "order is not visible to this account")
	}

	return ctx.JSON(http.StatusOK, toOrderReportPayload(response))
}
