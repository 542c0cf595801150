package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "backoffice/internal/adapters/out/postgres"
	"backoffice/internal/adapters/out/postgres/orderrepo"
	"backoffice/internal/adapters/out/postgres/riderrepo"
	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/rider"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ReadModelsTestSuite checks the list and metrics handlers against real tables.
type ReadModelsTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	orderRepo *orderrepo.GormOrderRepository
	riderRepo *riderrepo.GormRiderRepository
	base      time.Time
}

func (suite *ReadModelsTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(ctx, db))
	suite.orderRepo = orderrepo.NewGormOrderRepository(db)
	suite.riderRepo = riderrepo.NewGormRiderRepository(db)
	suite.base = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
}

func (suite *ReadModelsTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *ReadModelsTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, riders").Error
	suite.Require().NoError(err)
}

func (suite *ReadModelsTestSuite) TestListOrders_EmptyDatabase() {
	query, err := queries.NewListOrdersQuery(queries.OrderFilter{}, 1, 0)
	suite.Require().NoError(err)

	page, err := queries.NewListOrdersQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(page.Orders)
	suite.Empty(page.Orders)
	suite.Zero(page.Total)
}

func (suite *ReadModelsTestSuite) TestListOrders_NewestFirstWithRiderName() {
	r := suite.addRider("Lucía", rider.Available, true)
	older := suite.addOrder("ORD-1", suite.base, false)
	newer := suite.addOrder("ORD-2", suite.base.Add(time.Hour), false)
	suite.assign(newer, r)

	query, err := queries.NewListOrdersQuery(queries.OrderFilter{}, 1, 0)
	suite.Require().NoError(err)

	page, err := queries.NewListOrdersQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(int64(2), page.Total)
	suite.Require().Len(page.Orders, 2)
	suite.Equal("ORD-2", page.Orders[0].Number)
	suite.Equal(order.Assigned, page.Orders[0].Status)
	suite.Equal("Lucía", page.Orders[0].RiderName)
	suite.True(r.ID().IsEqual(*page.Orders[0].RiderID))
	suite.NotNil(page.Orders[0].AssignedAt)
	suite.True(older.ID().IsEqual(page.Orders[1].ID))
	suite.Nil(page.Orders[1].RiderID)
	suite.Empty(page.Orders[1].RiderName)
}

func (suite *ReadModelsTestSuite) TestListOrders_Filters() {
	r := suite.addRider("Lucía", rider.Available, true)
	assigned := suite.addOrder("ORD-100", suite.base, false)
	suite.assign(assigned, r)
	suite.addOrder("ORD-200", suite.base, true)
	suite.addOrder("ORD-300", suite.base, false)

	tests := []struct {
		name   string
		filter queries.OrderFilter
		want   []string
	}{
		{name: "status", filter: queries.OrderFilter{Statuses: []order.Status{order.Assigned}}, want: []string{"ORD-100"}},
		{name: "rider", filter: queries.OrderFilter{RiderID: ptr(r.ID())}, want: []string{"ORD-100"}},
		{name: "urgent", filter: queries.OrderFilter{UrgentOnly: true}, want: []string{"ORD-200"}},
		{name: "search by number", filter: queries.OrderFilter{Search: "ord-3"}, want: []string{"ORD-300"}},
		{name: "search treats wildcards literally", filter: queries.OrderFilter{Search: "%"}, want: []string{}},
		{
			name:   "combined",
			filter: queries.OrderFilter{Statuses: []order.Status{order.Pending}, UrgentOnly: true},
			want:   []string{"ORD-200"},
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			query, err := queries.NewListOrdersQuery(tt.filter, 1, 0)
			suite.Require().NoError(err)

			page, err := queries.NewListOrdersQueryHandler(suite.db).Handle(context.Background(), query)

			suite.Require().NoError(err)
			numbers := make([]string, 0, len(page.Orders))
			for _, o := range page.Orders {
				numbers = append(numbers, o.Number)
			}
			suite.ElementsMatch(tt.want, numbers)
			suite.Equal(int64(len(tt.want)), page.Total)
		})
	}
}

func (suite *ReadModelsTestSuite) TestListOrders_Pagination() {
	for i, number := range []string{"ORD-1", "ORD-2", "ORD-3", "ORD-4", "ORD-5"} {
		suite.addOrder(number, suite.base.Add(time.Duration(i)*time.Minute), false)
	}

	query, err := queries.NewListOrdersQuery(queries.OrderFilter{}, 2, 2)
	suite.Require().NoError(err)

	page, err := queries.NewListOrdersQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(int64(5), page.Total)
	suite.Equal(2, page.Page)
	suite.Require().Len(page.Orders, 2)
	suite.Equal("ORD-3", page.Orders[0].Number)
	suite.Equal("ORD-2", page.Orders[1].Number)

	past, err := queries.NewListOrdersQuery(queries.OrderFilter{}, 4, 2)
	suite.Require().NoError(err)
	page, err = queries.NewListOrdersQueryHandler(suite.db).Handle(context.Background(), past)
	suite.Require().NoError(err)
	suite.Empty(page.Orders)
	suite.Equal(int64(5), page.Total)
}

func (suite *ReadModelsTestSuite) TestListRiders_WithActiveOrderCount() {
	busy := suite.addRider("Bruno", rider.Available, true)
	suite.addRider("Ana", rider.Offline, true)
	suite.addRider("Carla", rider.Available, false)
	suite.assign(suite.addOrder("ORD-1", suite.base, false), busy)
	suite.assign(suite.addOrder("ORD-2", suite.base, false), busy)
	cancelled := suite.addOrder("ORD-3", suite.base, false)
	suite.assign(cancelled, busy)
	suite.Require().NoError(cancelled.Cancel("", suite.base))
	suite.Require().NoError(suite.orderRepo.Update(context.Background(), cancelled, order.Assigned))

	query, err := queries.NewListRidersQuery(nil, false)
	suite.Require().NoError(err)

	riders, err := queries.NewListRidersQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(riders, 3)
	suite.Equal([]string{"Ana", "Bruno", "Carla"}, []string{riders[0].Name, riders[1].Name, riders[2].Name})
	suite.Equal(2, riders[1].ActiveOrders)
	suite.Equal(0, riders[0].ActiveOrders)
	suite.False(riders[2].Active)
}

func (suite *ReadModelsTestSuite) TestListRiders_Filters() {
	suite.addRider("Ana", rider.Offline, true)
	suite.addRider("Bruno", rider.Available, true)
	suite.addRider("Carla", rider.Available, false)
	available := rider.Available

	query, err := queries.NewListRidersQuery(&available, true)
	suite.Require().NoError(err)

	riders, err := queries.NewListRidersQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(riders, 1)
	suite.Equal("Bruno", riders[0].Name)
}

func (suite *ReadModelsTestSuite) TestListAvailableRiders_RankedByLoad() {
	loaded := suite.addRider("Ana", rider.Available, true)
	suite.addRider("Bruno", rider.Available, true)
	suite.addRider("Carla", rider.Offline, true)
	suite.addRider("Diego", rider.Available, false)
	suite.addRider("Abel", rider.Busy, true)
	pickedUp := suite.addOrder("ORD-1", suite.base, false)
	suite.assign(pickedUp, loaded)

	riders, err := queries.NewListAvailableRidersQueryHandler(suite.db).
		Handle(context.Background(), queries.NewListAvailableRidersQuery())

	suite.Require().NoError(err)
	suite.Require().Len(riders, 2)
	suite.Equal("Bruno", riders[0].Name)
	suite.Equal(0, riders[0].ActiveOrders)
	suite.Equal("Ana", riders[1].Name)
	suite.Equal(1, riders[1].ActiveOrders)
}

func (suite *ReadModelsTestSuite) TestGetDashboardMetrics() {
	r := suite.addRider("Ana", rider.Available, true)
	suite.addRider("Bruno", rider.Offline, false)
	suite.addOrder("ORD-1", suite.base, true)
	suite.addOrder("ORD-2", suite.base.AddDate(0, 0, -1), false)
	assigned := suite.addOrder("ORD-3", suite.base, false)
	suite.assign(assigned, r)
	suite.deliver("ORD-4", r, 2500)
	suite.deliver("ORD-5", r, 1500)

	query, err := queries.NewGetDashboardMetricsQuery(suite.base)
	suite.Require().NoError(err)

	metrics, err := queries.NewGetDashboardMetricsQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(2, metrics.OrdersByStatus[order.Pending])
	suite.Equal(1, metrics.OrdersByStatus[order.Assigned])
	suite.Equal(2, metrics.OrdersByStatus[order.Delivered])
	suite.Equal(0, metrics.OrdersByStatus[order.Cancelled])
	suite.Equal(4, metrics.OrdersToday)
	suite.Equal(2, metrics.DeliveredToday)
	suite.Equal(int64(4000), metrics.RevenueTodayCents)
	suite.Equal(1, metrics.UrgentPendingCount)
	suite.Equal(1, metrics.RidersByStatus[rider.Available])
	suite.Equal(1, metrics.RidersByStatus[rider.Offline])
	suite.Equal(0, metrics.RidersByStatus[rider.Busy])
	suite.Equal(1, metrics.ActiveRiders)
}

func (suite *ReadModelsTestSuite) addOrder(number string, createdAt time.Time, urgent bool) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), number, order.Customer{Name: "Cliente " + number}, nil, 1000, urgent, "", createdAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), o))
	return o
}

func (suite *ReadModelsTestSuite) addRider(name string, status rider.Status, active bool) *rider.Rider {
	r, err := rider.RestoreRider(rider.Snapshot{ID: kernel.NewUUID(), Name: name, Status: status, Active: active})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.riderRepo.Add(context.Background(), r))
	return r
}

func (suite *ReadModelsTestSuite) assign(o *order.Order, r *rider.Rider) {
	suite.Require().NoError(o.Assign(r.ID(), suite.base))
	suite.Require().NoError(suite.orderRepo.Update(context.Background(), o, order.Pending))
}

// deliver stores an order delivered today. Delivery happens outside the back
// office, so the row is written as a restored snapshot.
func (suite *ReadModelsTestSuite) deliver(number string, r *rider.Rider, totalCents int64) {
	at := suite.base
	riderID := r.ID()
	o, err := order.RestoreOrder(order.Snapshot{
		ID:          kernel.NewUUID(),
		Number:      number,
		Status:      order.Delivered,
		RiderID:     &riderID,
		TotalCents:  totalCents,
		CreatedAt:   at,
		AssignedAt:  &at,
		PickedUpAt:  &at,
		DeliveredAt: &at,
	})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), o))
}

func ptr[T any](v T) *T {
	return &v
}

func TestReadModelsTestSuite(t *testing.T) {
	suite.Run(t, new(ReadModelsTestSuite))
}
