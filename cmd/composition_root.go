package cmd

import (
	"log/slog"
	"time"

	httpin "backoffice/internal/adapters/in/http"
	"backoffice/internal/adapters/out/postgres"
	"backoffice/internal/adapters/out/postgres/profilerepo"
	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/core/ports"
	"backoffice/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot builds every handler of the process over one connection pool and
// one event publisher.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	clock      commands.Clock
	logger     *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		clock:      time.Now,
		logger:     logger,
	}
}

func (c *CompositionRoot) commandUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateRecomputeRiderAvailabilityCommandHandler() commands.RecomputeRiderAvailabilityCommandHandler {
	return commands.NewRecomputeRiderAvailabilityCommandHandler(c.commandUoWFactory(), c.publisher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	return commands.NewAssignOrderCommandHandler(
		c.commandUoWFactory(),
		c.CreateRecomputeRiderAvailabilityCommandHandler(),
		c.publisher,
		c.clock,
		c.logger,
	)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(
		c.commandUoWFactory(),
		c.CreateRecomputeRiderAvailabilityCommandHandler(),
		c.publisher,
		c.clock,
		c.logger,
	)
}

func (c *CompositionRoot) CreateReconcileRidersCommandHandler() commands.ReconcileRidersCommandHandler {
	return commands.NewReconcileRidersCommandHandler(
		c.commandUoWFactory(),
		c.CreateRecomputeRiderAvailabilityCommandHandler(),
	)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListRidersQueryHandler() queries.ListRidersQueryHandler {
	return queries.NewListRidersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListAvailableRidersQueryHandler() queries.ListAvailableRidersQueryHandler {
	return queries.NewListAvailableRidersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDashboardMetricsQueryHandler() queries.GetDashboardMetricsQueryHandler {
	return queries.NewGetDashboardMetricsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetProfileQueryHandler() queries.GetProfileQueryHandler {
	return queries.NewGetProfileQueryHandler(profilerepo.NewGormProfileRepository(c.gormDB))
}

// CreateHTTPServer wires the REST adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		AssignOrder:         c.CreateAssignOrderCommandHandler(),
		CancelOrder:         c.CreateCancelOrderCommandHandler(),
		ListOrders:          c.CreateListOrdersQueryHandler(),
		ListRiders:          c.CreateListRidersQueryHandler(),
		ListAvailableRiders: c.CreateListAvailableRidersQueryHandler(),
		DashboardMetrics:    c.CreateGetDashboardMetricsQueryHandler(),
		Profile:             c.CreateGetProfileQueryHandler(),
	}, c.clock, c.logger)
}

// CreateJobManager wires the background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewRiderReconciliationJob(
			c.CreateReconcileRidersCommandHandler(),
			c.config.Jobs.ReconcileSchedule,
			c.config.Jobs.ReconcileTimeout,
			c.logger,
		),
	)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
