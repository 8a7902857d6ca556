// Package http exposes the brokering backend over a JSON API on /api/v1.
// Handlers translate requests into commands and queries, map application
// errors to status codes, and never contain business rules themselves.
package http

import (
	"net/http"

	"broker/internal/core/application/services"
	"broker/internal/core/application/usecases/commands"
	"broker/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	registerUserHandler    commands.RegisterUserCommandHandler
	registerCourierHandler commands.RegisterCourierCommandHandler
	updateDeviceToken      commands.UpdateDeviceTokenCommandHandler
	createOrderHandler     commands.CreateOrderCommandHandler
	claimOrderHandler      commands.ClaimOrderCommandHandler
	completeOrderHandler   commands.CompleteOrderCommandHandler
	markReadHandler        commands.MarkNotificationReadCommandHandler
	markAllReadHandler     commands.MarkAllNotificationsReadCommandHandler

	getOrderHandler          queries.GetOrderQueryHandler
	listPendingHandler       queries.ListPendingOrdersQueryHandler
	listUserOrdersHandler    queries.ListUserOrdersQueryHandler
	listCourierOrdersHandler queries.ListCourierOrdersQueryHandler
	userHistoryHandler       queries.UserHistoryQueryHandler
	courierHistoryHandler    queries.CourierHistoryQueryHandler
	orderReportHandler       queries.OrderReportQueryHandler
	listNotificationsHandler queries.ListNotificationsQueryHandler

	authService  *services.AuthService
	availability *services.AvailabilityRegistry

	jwtSecret string
}

// Deps carries everything the server needs. Grouping them in a struct keeps
// the composition root readable as the handler list grows.
type Deps struct {
	RegisterUserHandler    commands.RegisterUserCommandHandler
	RegisterCourierHandler commands.RegisterCourierCommandHandler
	UpdateDeviceToken      commands.UpdateDeviceTokenCommandHandler
	CreateOrderHandler     commands.CreateOrderCommandHandler
	ClaimOrderHandler      commands.ClaimOrderCommandHandler
	CompleteOrderHandler   commands.CompleteOrderCommandHandler
	MarkReadHandler        commands.MarkNotificationReadCommandHandler
	MarkAllReadHandler     commands.MarkAllNotificationsReadCommandHandler

	GetOrderHandler          queries.GetOrderQueryHandler
	ListPendingHandler       queries.ListPendingOrdersQueryHandler
	ListUserOrdersHandler    queries.ListUserOrdersQueryHandler
	ListCourierOrdersHandler queries.ListCourierOrdersQueryHandler
	UserHistoryHandler       queries.UserHistoryQueryHandler
	CourierHistoryHandler    queries.CourierHistoryQueryHandler
	OrderReportHandler       queries.OrderReportQueryHandler
	ListNotificationsHandler queries.ListNotificationsQueryHandler

	AuthService  *services.AuthService
	Availability *services.AvailabilityRegistry

	JWTSecret string
}

// NewServer creates an HTTP server over the given use cases and services.
func NewServer(deps Deps) *Server {
	return &Server{
		registerUserHandler:      deps.RegisterUserHandler,
		registerCourierHandler:   deps.RegisterCourierHandler,
		updateDeviceToken:        deps.UpdateDeviceToken,
		createOrderHandler:       deps.CreateOrderHandler,
		claimOrderHandler:        deps.ClaimOrderHandler,
		completeOrderHandler:     deps.CompleteOrderHandler,
		markReadHandler:          deps.MarkReadHandler,
		markAllReadHandler:       deps.MarkAllReadHandler,
		getOrderHandler:          deps.GetOrderHandler,
		listPendingHandler:       deps.ListPendingHandler,
		listUserOrdersHandler:    deps.ListUserOrdersHandler,
		listCourierOrdersHandler: deps.ListCourierOrdersHandler,
		userHistoryHandler:       deps.UserHistoryHandler,
		courierHistoryHandler:    deps.CourierHistoryHandler,
		orderReportHandler:       deps.OrderReportHandler,
		listNotificationsHandler: deps.ListNotificationsHandler,
		authService:              deps.AuthService,
		availability:             deps.Availability,
		jwtSecret:                deps.JWTSecret,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.POST("/users/register", s.RegisterUser)
	authGroup.POST("/users/login", s.LoginUser)
	authGroup.POST("/couriers/register", s.RegisterCourier)
	authGroup.POST("/couriers/login", s.LoginCourier)
	authGroup.PUT("/device-token", s.UpdateDeviceToken, s.requireAuth)
	authGroup.PUT("/availability", s.UpdateAvailability, s.requireAuth)

	orderGroup := api.Group("/orders", s.requireAuth)
	orderGroup.POST("", s.CreateOrder)
	orderGroup.GET("", s.ListMyOrders)
	orderGroup.GET("/pending", s.ListPendingOrders)
	orderGroup.GET("/:id", s.GetOrder)
	orderGroup.POST("/:id/claim", s.ClaimOrder)
	orderGroup.POST("/:id/complete", s.CompleteOrder)

	notificationGroup := api.Group("/notifications", s.requireAuth)
	notificationGroup.GET("", s.ListNotifications)
	notificationGroup.POST("/:id/read", s.MarkNotificationRead)
	notificationGroup.POST("/read-all", s.MarkAllNotificationsRead)

	historyGroup := api.Group("/history", s.requireAuth)
	historyGroup.GET("", s.GetHistory)
	historyGroup.GET("/orders/:id", s.GetOrderReport)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
