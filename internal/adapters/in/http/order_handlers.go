package http

import (
	"net/http"

	"broker/internal/core/application/usecases/commands"
	"broker/internal/core/application/usecases/queries"
	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/order"
	"broker/internal/pkg/auth"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders for users.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, ok := requireRole(ctx, auth.RoleUser)
	if !ok {
		return nil
	}

	var request createOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}

	orderID := kernel.NewUUID()
	command, err := commands.NewCreateOrderCommand(orderID, actor.ID, request.Notes, request.Address)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), command); err != nil {
		return respondError(ctx, err)
	}

	return s.renderOrder(ctx, orderID, http.StatusCreated)
}

// ClaimOrder handles POST /api/v1/orders/:id/claim for couriers.
func (s *Server) ClaimOrder(ctx echo.Context) error {
	actor, ok := requireRole(ctx, auth.RoleCourier)
	if !ok {
		return nil
	}

	orderID, ok := uuidParam(ctx, "id")
	if !ok {
		return nil
	}

	command, err := commands.NewClaimOrderCommand(orderID, actor.ID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.claimOrderHandler.Handle(ctx.Request().Context(), command); err != nil {
		return respondError(ctx, err)
	}

	return s.renderOrder(ctx, orderID, http.StatusOK)
}

// CompleteOrder handles POST /api/v1/orders/:id/complete for the assigned
// courier.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	actor, ok := requireRole(ctx, auth.RoleCourier)
	if !ok {
		return nil
	}

	orderID, ok := uuidParam(ctx, "id")
	if !ok {
		return nil
	}

	command, err := commands.NewCompleteOrderCommand(orderID, actor.ID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.completeOrderHandler.Handle(ctx.Request().Context(), command); err != nil {
		return respondError(ctx, err)
	}

	return s.renderOrder(ctx, orderID, http.StatusOK)
}

// ListMyOrders handles GET /api/v1/orders. Users see orders they placed,
// couriers see orders assigned to them, optionally filtered by status.
func (s *Server) ListMyOrders(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return writeError(ctx, http.StatusUnauthorized, "missing bearer token")
	}

	limit, skip, ok := pageParams(ctx)
	if !ok {
		return nil
	}
	status := ctx.QueryParam("status")

	var (
		response queries.ListOrdersResponse
		err      error
	)
	switch actor.Role {
	case auth.RoleUser:
		var query queries.ListUserOrdersQuery
		query, err = queries.NewListUserOrdersQuery(actor.ID, status, limit, skip)
		if err != nil {
			return respondError(ctx, err)
		}
		response, err = s.listUserOrdersHandler.Handle(ctx.Request().Context(), query)
	case auth.RoleCourier:
		var query queries.ListCourierOrdersQuery
		query, err = queries.NewListCourierOrdersQuery(actor.ID, status, limit, skip)
		if err != nil {
			return respondError(ctx, err)
		}
		response, err = s.listCourierOrdersHandler.Handle(ctx.Request().Context(), query)
	default:
		return writeError(ctx, http.StatusForbidden, "insufficient role")
	}
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrdersPagePayload(response))
}

// ListPendingOrders handles GET /api/v1/orders/pending for couriers.
func (s *Server) ListPendingOrders(ctx echo.Context) error {
	if _, ok := requireRole(ctx, auth.RoleCourier); !ok {
		return nil
	}

	limit, skip, ok := pageParams(ctx)
	if !ok {
		return nil
	}

	query, err := queries.NewListPendingOrdersQuery(limit, skip)
	if err != nil {
		return respondError(ctx, err)
	}

	response, err := s.listPendingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrdersPagePayload(response))
}

// GetOrder handles GET /api/v1/orders/:id. Visible to the order's owner,
// its assigned courier, and to any courier while the order is pending.
func (s *Server) GetOrder(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return writeError(ctx, http.StatusUnauthorized, "missing bearer token")
	}

	orderID, ok := uuidParam(ctx, "id")
	if !ok {
		return nil
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	if !canViewOrder(actor, response) {
		return writeError(ctx, http.StatusForbidden, "order is not visible to this account")
	}

	return ctx.JSON(http.StatusOK, toOrderPayload(response))
}

func canViewOrder(actor Actor, resp queries.OrderResponse) bool {
	if actor.Role == auth.RoleUser {
		return actor.ID.IsEqual(resp.UserID)
	}
	if resp.CourierID != nil && actor.ID.IsEqual(*resp.CourierID) {
		return true
	}
	return resp.Status == order.Pending.String()
}

func (s *Server) renderOrder(ctx echo.Context, orderID kernel.UUID, code int) error {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(code, toOrderPayload(response))
}
