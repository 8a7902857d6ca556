package cmd

import (
	"log/slog"

	adapterhttp "broker/internal/adapters/in/http"
	"broker/internal/adapters/out/postgres"
	"broker/internal/core/application/services"
	"broker/internal/core/application/usecases/commands"
	"broker/internal/core/application/usecases/queries"
	"broker/internal/core/ports"
	"broker/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires repositories, use cases, services and jobs together.
// Every Create method hands out a ready-to-use component; nothing here holds
// request state.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	pushSender ports.PushSender
	logger     *slog.Logger
}

// NewCompositionRoot creates the object graph root for the given
// configuration and database handle.
func NewCompositionRoot(config Config, gormDB *gorm.DB, pushSender ports.PushSender, logger *slog.Logger) *CompositionRoot {
	if logger == nil {
		logger = slog.Default()
	}
	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		pushSender: pushSender,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	var f commands.UserUoWFactory = FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterUserCommandHandler(f)
}

func (c *CompositionRoot) CreateRegisterCourierCommandHandler() commands.RegisterCourierCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateDeviceTokenCommandHandler() commands.UpdateDeviceTokenCommandHandler {
	var f commands.DeviceTokenUoWFactory = FuncDeviceTokenUoWFactory(func() commands.DeviceTokenUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateDeviceTokenCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	return commands.NewClaimOrderCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateMarkNotificationReadCommandHandler() commands.MarkNotificationReadCommandHandler {
	return commands.NewMarkNotificationReadCommandHandler(c.notificationUoWFactory())
}

func (c *CompositionRoot) CreateMarkAllNotificationsReadCommandHandler() commands.MarkAllNotificationsReadCommandHandler {
	return commands.NewMarkAllNotificationsReadCommandHandler(c.notificationUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListPendingOrdersQueryHandler() queries.ListPendingOrdersQueryHandler {
	return queries.NewListPendingOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListUserOrdersQueryHandler() queries.ListUserOrdersQueryHandler {
	return queries.NewListUserOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListCourierOrdersQueryHandler() queries.ListCourierOrdersQueryHandler {
	return queries.NewListCourierOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateUserHistoryQueryHandler() queries.UserHistoryQueryHandler {
	return queries.NewUserHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCourierHistoryQueryHandler() queries.CourierHistoryQueryHandler {
	return queries.NewCourierHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateOrderReportQueryHandler() queries.OrderReportQueryHandler {
	return queries.NewOrderReportQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListNotificationsQueryHandler() queries.ListNotificationsQueryHandler {
	return queries.NewListNotificationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateAuthService() *services.AuthService {
	return services.NewAuthService(c.uowFactory, c.config.JWTSecret, c.config.TokenTTL)
}

func (c *CompositionRoot) CreateAvailabilityRegistry() *services.AvailabilityRegistry {
	return services.NewAvailabilityRegistry(c.uowFactory, c.logger)
}

func (c *CompositionRoot) CreateNotificationDispatcher() *services.NotificationDispatcher {
	return services.NewNotificationDispatcher(
		c.uowFactory, c.CreateAvailabilityRegistry(), c.pushSender,
		services.DefaultRetryPolicy, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	relay := jobs.NewOutboxRelayJob(
		c.CreateNotificationDispatcher(),
		c.uowFactory,
		c.config.OutboxBatchSize,
		c.config.OutboxMaxAttempts,
		c.logger,
	)
	return jobs.NewJobManager(relay)
}

// CreateHTTPServer assembles the HTTP server over the full handler set.
func (c *CompositionRoot) CreateHTTPServer() *adapterhttp.Server {
	return adapterhttp.NewServer(adapterhttp.Deps{
		RegisterUserHandler:    c.CreateRegisterUserCommandHandler(),
		RegisterCourierHandler: c.CreateRegisterCourierCommandHandler(),
		UpdateDeviceToken:      c.CreateUpdateDeviceTokenCommandHandler(),
		CreateOrderHandler:     c.CreateCreateOrderCommandHandler(),
		ClaimOrderHandler:      c.CreateClaimOrderCommandHandler(),
		CompleteOrderHandler:   c.CreateCompleteOrderCommandHandler(),
		MarkReadHandler:        c.CreateMarkNotificationReadCommandHandler(),
		MarkAllReadHandler:     c.CreateMarkAllNotificationsReadCommandHandler(),

		GetOrderHandler:          c.CreateGetOrderQueryHandler(),
		ListPendingHandler:       c.CreateListPendingOrdersQueryHandler(),
		ListUserOrdersHandler:    c.CreateListUserOrdersQueryHandler(),
		ListCourierOrdersHandler: c.CreateListCourierOrdersQueryHandler(),
		UserHistoryHandler:       c.CreateUserHistoryQueryHandler(),
		CourierHistoryHandler:    c.CreateCourierHistoryQueryHandler(),
		OrderReportHandler:       c.CreateOrderReportQueryHandler(),
		ListNotificationsHandler: c.CreateListNotificationsQueryHandler(),

		AuthService:  c.CreateAuthService(),
		Availability: c.CreateAvailabilityRegistry(),

		JWTSecret: c.config.JWTSecret,
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) notificationUoWFactory() commands.NotificationUoWFactory {
	return FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncDeviceTokenUoWFactory func() commands.DeviceTokenUoW

func (f FuncDeviceTokenUoWFactory) Create() commands.DeviceTokenUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
