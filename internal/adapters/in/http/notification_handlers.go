package http

import (
	"net/http"

	"broker/internal/core/application/usecases/commands"
	"broker/internal/core/application/usecases/queries"
	"broker/internal/core/domain/model/notification"

	"github.com/labstack/echo/v4"
)

// ListNotifications handles GET /api/v1/notifications for the calling
// account. Pass unread_only=true to restrict the page to unread entries.
func (s *Server) ListNotifications(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return writeError(ctx, http.StatusUnauthorized, "missing bearer token")
	}

	limit, skip, ok := pageParams(ctx)
	if !ok {
		return nil
	}
	unreadOnly := ctx.QueryParam("unread_only") == "true"

	query, err := queries.NewListNotificationsQuery(
		actor.ID, notification.Role(actor.Role), unreadOnly, limit, skip)
	if err != nil {
		return respondError(ctx, err)
	}

	response, err := s.listNotificationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toNotificationsPagePayload(response))
}

// MarkNotificationRead handles POST /api/v1/notifications/:id/read.
func (s *Server) MarkNotificationRead(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return writeError(ctx, http.StatusUnauthorized, "missing bearer token")
	}

	notificationID, ok := uuidParam(ctx, "id")
	if !ok {
		return nil
	}

	command, err := commands.NewMarkNotificationReadCommand(
		notificationID, actor.ID, notification.Role(actor.Role))
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.markReadHandler.Handle(ctx.Request().Context(), command); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkAllNotificationsRead handles POST /api/v1/notifications/read-all and
// reports how many notifications changed.
func (s *Server) MarkAllNotificationsRead(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return writeError(ctx, http.StatusUnauthorized, "missing bearer token")
	}

	command, err := commands.NewMarkAllNotificationsReadCommand(
		actor.ID, notification.Role(actor.Role))
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.markAllReadHandler.Handle(ctx.Request().Context(), command)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]int{"updated": updated})
}
