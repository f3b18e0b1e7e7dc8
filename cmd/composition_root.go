package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"optistore/internal/adapters/in/http"
	"optistore/internal/adapters/out/email"
	"optistore/internal/adapters/out/postgres"
	"optistore/internal/adapters/out/postgres/outboxrepo"
	"optistore/internal/core/application/eventhandlers"
	"optistore/internal/core/application/usecases/commands"
	"optistore/internal/core/application/usecases/queries"
	"optistore/internal/core/ports"
	"optistore/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	sender     ports.EmailSender
	logger     *slog.Logger
}

// NewCompositionRoot wires the unit of work so that committed order events are
// turned into outbox messages.
func NewCompositionRoot(config Config, gormDB *gorm.DB, sender ports.EmailSender, logger *slog.Logger) CompositionRoot {
	publisher := eventhandlers.NewOrderNotificationHandler(outboxrepo.NewGormOutbox(gormDB))

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger),
		sender:     sender,
		logger:     logger,
	}
}

// NewEmailSender builds the email transport selected by the configuration.
func NewEmailSender(ctx context.Context, config Config, logger *slog.Logger) (ports.EmailSender, error) {
	renderer, err := email.NewRenderer()
	if err != nil {
		return nil, err
	}

	switch config.NotifierDriver {
	case NotifierSES:
		return email.NewSESSender(ctx, email.SESConfig{
			Region:          config.AWSRegion,
			AccessKeyID:     config.AWSAccessKeyID,
			SecretAccessKey: config.AWSSecretAccessKey,
			Sender:          config.EmailSender,
		}, renderer)
	case NotifierLog, "":
		return email.NewLogSender(renderer, logger), nil
	default:
		return nil, fmt.Errorf("unknown notifier driver %q", config.NotifierDriver)
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.PlaceOrderUoWFactory = FuncPlaceOrderUoWFactory(func() commands.PlaceOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignDeliveryCommandHandler() commands.AssignDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignDeliveryCommandHandler(f)
}

func (c *CompositionRoot) CreateDispatchNotificationsCommandHandler() commands.DispatchNotificationsCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchNotificationsCommandHandler(f, c.sender, c.logger)
}

func (c *CompositionRoot) CreateListOwnOrdersQueryHandler() queries.ListOwnOrdersQueryHandler {
	return queries.NewListOwnOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListRoleOrdersQueryHandler() queries.ListRoleOrdersQueryHandler {
	return queries.NewListRoleOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListActiveDeliveryPersonsQueryHandler() queries.ListActiveDeliveryPersonsQueryHandler {
	return queries.NewListActiveDeliveryPersonsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreatePendingOrderCountQueryHandler() queries.PendingOrderCountQueryHandler {
	return queries.NewPendingOrderCountQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateTotalSalesQueryHandler() queries.TotalSalesQueryHandler {
	return queries.NewTotalSalesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateMonthlyRevenueQueryHandler() queries.MonthlyRevenueQueryHandler {
	return queries.NewMonthlyRevenueQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateSalesOverviewQueryHandler() queries.SalesOverviewQueryHandler {
	return queries.NewSalesOverviewQueryHandler(c.gormDB)
}

// CreateServer builds the HTTP adapter with every use case.
func (c *CompositionRoot) CreateServer() *http.Server {
	return http.NewServer(http.Handlers{
		CreateOrder:               c.CreateCreateOrderCommandHandler(),
		UpdateOrderStatus:         c.CreateUpdateOrderStatusCommandHandler(),
		AssignDelivery:            c.CreateAssignDeliveryCommandHandler(),
		ListOwnOrders:             c.CreateListOwnOrdersQueryHandler(),
		GetOrder:                  c.CreateGetOrderQueryHandler(),
		ListRoleOrders:            c.CreateListRoleOrdersQueryHandler(),
		ListActiveDeliveryPersons: c.CreateListActiveDeliveryPersonsQueryHandler(),
		PendingOrderCount:         c.CreatePendingOrderCountQueryHandler(),
		TotalSales:                c.CreateTotalSalesQueryHandler(),
		MonthlyRevenue:            c.CreateMonthlyRevenueQueryHandler(),
		SalesOverview:             c.CreateSalesOverviewQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateDispatchNotificationsCommandHandler(),
		c.config.DispatchSchedule,
		c.config.DispatchBatchSize,
		c.logger,
	)
}

type FuncPlaceOrderUoWFactory func() commands.PlaceOrderUoW

func (f FuncPlaceOrderUoWFactory) Create() commands.PlaceOrderUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
