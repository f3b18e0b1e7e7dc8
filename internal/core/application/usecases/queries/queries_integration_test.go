package queries_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	postgres_adapter "optistore/internal/adapters/out/postgres"
	"optistore/internal/adapters/out/postgres/accountrepo"
	"optistore/internal/adapters/out/postgres/orderrepo"
	"optistore/internal/core/application/usecases/queries"
	"optistore/internal/core/domain/model/access"
	"optistore/internal/core/domain/model/kernel"
	"optistore/internal/core/domain/model/order"
	"optistore/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type nopTracker struct{}

func (*nopTracker) TrackAggregate(kernel.UUID, any) {}

// QueriesIntegrationTestSuite runs the read-side handlers against PostgreSQL.
type QueriesIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB

	alice  access.Caller
	bob    access.Caller
	admin  access.Caller
	doctor access.Caller
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
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

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(postgres_adapter.Models()...))

	suite.alice = suite.caller(access.Customer)
	suite.bob = suite.caller(access.Customer)
	suite.admin = suite.caller(access.Admin)
	suite.doctor = suite.caller(access.Doctor)
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(`TRUNCATE TABLE deliveries, billing_infos, order_items, orders,
		outbox_messages, prescriptions, products, users CASCADE`).Error)
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *QueriesIntegrationTestSuite) TestListOwnOrders_CreationOrder() {
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	suite.seedOrder("A-2", suite.alice, base.Add(time.Hour), order.Pending)
	suite.seedOrder("A-1", suite.alice, base, order.Pending)
	suite.seedOrder("B-1", suite.bob, base.Add(30*time.Minute), order.Pending)

	query, err := queries.NewListOwnOrdersQuery(suite.alice)
	suite.Require().NoError(err)

	orders, err := queries.NewListOwnOrdersQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(orders, 2)
	suite.Equal("A-1", orders[0].OrderNumber)
	suite.Equal("A-2", orders[1].OrderNumber)

	first := orders[0]
	suite.Equal("pending", first.Status)
	suite.Equal("card", first.PaymentMethod)
	suite.Equal("home", first.DeliveryOption)
	suite.Equal("120.00", first.TotalPrice.StringFixed(2))
	suite.Equal("Jane Doe", first.Billing.Name)
	suite.Nil(first.Delivery)
	suite.Require().Len(first.Items, 2)
	suite.Equal("Aviator frame", first.Items[0].ProductName)
	suite.JSONEq(`{"tint":"grey"}`, string(first.Items[0].LensOption))
	suite.Equal("Case", first.Items[1].ProductName)
	suite.Nil(first.Items[1].LensOption)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_OwnerOnly() {
	ctx := context.Background()
	suite.seedOrder("A-1", suite.alice, time.Now().UTC(), order.Processing)

	handler := queries.NewGetOrderQueryHandler(suite.db)

	own, err := queries.NewGetOrderQuery(suite.alice, "A-1")
	suite.Require().NoError(err)
	resp, err := handler.Handle(ctx, own)
	suite.Require().NoError(err)
	suite.Equal("processing", resp.Status)
	suite.True(resp.OwnerID.IsEqual(suite.alice.UserID()))

	foreign, err := queries.NewGetOrderQuery(suite.bob, "A-1")
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, foreign)
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	missing, err := queries.NewGetOrderQuery(suite.alice, "NOPE")
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, missing)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestListRoleOrders_Visibility() {
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	suite.seedOrder("A-1", suite.alice, base, order.Pending)
	suite.seedOrder("B-1", suite.bob, base.Add(time.Hour), order.Shipped)
	suite.seedOrder("A-2", suite.alice, base.Add(2*time.Hour), order.Pending)

	handler := queries.NewListRoleOrdersQueryHandler(suite.db)
	list := func(caller access.Caller) []string {
		query, err := queries.NewListRoleOrdersQuery(caller)
		suite.Require().NoError(err)
		orders, err := handler.Handle(ctx, query)
		suite.Require().NoError(err)
		numbers := make([]string, 0, len(orders))
		for _, o := range orders {
			numbers = append(numbers, o.OrderNumber)
		}
		return numbers
	}

	suite.Equal([]string{"A-2", "B-1", "A-1"}, list(suite.admin))
	suite.Equal([]string{"A-2", "B-1", "A-1"}, list(suite.caller(access.Manufacturer)))
	suite.Equal([]string{"A-2", "B-1", "A-1"}, list(suite.caller(access.Delivery)))
	suite.Equal([]string{"A-2", "A-1"}, list(suite.alice))
	suite.Empty(list(suite.doctor))
}

func (suite *QueriesIntegrationTestSuite) TestListRoleOrders_IncludesDelivery() {
	ctx := context.Background()
	o := suite.seedOrder("A-1", suite.alice, time.Now().UTC(), order.Pending)

	person, err := access.RestoreAccount(kernel.NewUUID(), "Dan", "dan@example.com", access.Delivery, true)
	suite.Require().NoError(err)
	suite.Require().NoError(o.AssignDelivery(person, time.Now().UTC()))
	suite.Require().NoError(orderrepo.NewGormOrderRepository(suite.db, &nopTracker{}).Update(ctx, o))

	query, err := queries.NewListRoleOrdersQuery(suite.admin)
	suite.Require().NoError(err)
	orders, err := queries.NewListRoleOrdersQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(orders, 1)
	suite.Equal("shipped", orders[0].Status)
	suite.Require().NotNil(orders[0].Delivery)
	suite.True(person.ID().IsEqual(orders[0].Delivery.DeliveryPersonID))
}

func (suite *QueriesIntegrationTestSuite) TestListActiveDeliveryPersons() {
	ctx := context.Background()
	suite.seedUser("Zed", "zed@example.com", access.Delivery, true)
	suite.seedUser("", "anon@example.com", access.Delivery, true)
	suite.seedUser("Old", "old@example.com", access.Delivery, false)
	suite.seedUser("Cara", "cara@example.com", access.Customer, true)

	handler := queries.NewListActiveDeliveryPersonsQueryHandler(suite.db)

	query, err := queries.NewListActiveDeliveryPersonsQuery(suite.admin)
	suite.Require().NoError(err)
	persons, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(persons, 2)
	suite.Equal("anon@example.com", persons[0].Name)
	suite.Equal("Zed", persons[1].Name)
	suite.Equal("zed@example.com", persons[1].Email)

	denied, err := queries.NewListActiveDeliveryPersonsQuery(suite.alice)
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, denied)
	suite.ErrorIs(err, errs.ErrPermissionDenied)
}

func (suite *QueriesIntegrationTestSuite) TestPendingOrderCount() {
	ctx := context.Background()
	now := time.Now().UTC()
	suite.seedOrder("P-1", suite.alice, now, order.Pending)
	suite.seedOrder("P-2", suite.bob, now, order.Pending)
	suite.seedOrder("S-1", suite.bob, now, order.Shipped)

	handler := queries.NewPendingOrderCountQueryHandler(suite.db)

	query, err := queries.NewPendingOrderCountQuery(suite.admin)
	suite.Require().NoError(err)
	count, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(int64(2), count)

	denied, err := queries.NewPendingOrderCountQuery(suite.caller(access.Manufacturer))
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, denied)
	suite.ErrorIs(err, errs.ErrPermissionDenied)
}

func (suite *QueriesIntegrationTestSuite) TestSalesAggregations() {
	ctx := context.Background()
	asOf := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	suite.seedOrderWithTotal("D-1", asOf.AddDate(0, 0, -12), order.Delivered, "100.00")
	suite.seedOrderWithTotal("D-2", time.Date(2025, 5, 10, 8, 0, 0, 0, time.UTC), order.Delivered, "50.25")
	suite.seedOrderWithTotal("D-3", time.Date(2025, 1, 20, 8, 0, 0, 0, time.UTC), order.Delivered, "20.00")
	suite.seedOrderWithTotal("D-4", time.Date(2024, 12, 31, 8, 0, 0, 0, time.UTC), order.Delivered, "10.00")
	suite.seedOrderWithTotal("P-1", asOf.AddDate(0, 0, -10), order.Pending, "999.00")
	suite.seedOrderWithTotal("C-1", asOf.AddDate(0, 0, -9), order.Cancelled, "500.00")

	query, err := queries.NewSalesQuery(suite.admin, asOf)
	suite.Require().NoError(err)

	totals, err := queries.NewTotalSalesQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal("180.25", totals.Current.StringFixed(2))
	suite.Equal("80.25", totals.Prior.StringFixed(2))

	monthly, err := queries.NewMonthlyRevenueQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal("100.00", monthly.CurrentMonth.StringFixed(2))
	suite.Equal("50.25", monthly.PreviousMonth.StringFixed(2))

	overview, err := queries.NewSalesOverviewQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(overview, 12)
	suite.Equal("Jan", overview[0].Month)
	suite.Equal("20.00", overview[0].Revenue.StringFixed(2))
	suite.Equal("0.00", overview[1].Revenue.StringFixed(2))
	suite.Equal("50.25", overview[4].Revenue.StringFixed(2))
	suite.Equal("Jun", overview[5].Month)
	suite.Equal("100.00", overview[5].Revenue.StringFixed(2))
	suite.Equal("Dec", overview[11].Month)
	suite.Equal("0.00", overview[11].Revenue.StringFixed(2))
}

func (suite *QueriesIntegrationTestSuite) TestSalesAggregations_AdminOnly() {
	query, err := queries.NewSalesQuery(suite.caller(access.Manufacturer), time.Now().UTC())
	suite.Require().NoError(err)

	_, err = queries.NewTotalSalesQueryHandler(suite.db).Handle(context.Background(), query)
	suite.ErrorIs(err, errs.ErrPermissionDenied)

	_, err = queries.NewMonthlyRevenueQueryHandler(suite.db).Handle(context.Background(), query)
	suite.ErrorIs(err, errs.ErrPermissionDenied)

	_, err = queries.NewSalesOverviewQueryHandler(suite.db).Handle(context.Background(), query)
	suite.ErrorIs(err, errs.ErrPermissionDenied)
}

func (suite *QueriesIntegrationTestSuite) TestSalesAggregations_NoOrders() {
	query, err := queries.NewSalesQuery(suite.admin, time.Now().UTC())
	suite.Require().NoError(err)

	totals, err := queries.NewTotalSalesQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.True(totals.Current.IsZero())
	suite.True(totals.Prior.IsZero())
}

func (suite *QueriesIntegrationTestSuite) caller(role access.Role) access.Caller {
	c, err := access.NewCaller(kernel.NewUUID(), role)
	suite.Require().NoError(err)
	return c
}

func (suite *QueriesIntegrationTestSuite) seedUser(name, email string, role access.Role, active bool) {
	suite.Require().NoError(suite.db.Create(&accountrepo.AccountDTO{
		ID:       kernel.NewUUID().Bytes(),
		Name:     name,
		Email:    email,
		Role:     string(role),
		IsActive: active,
	}).Error)
}

func (suite *QueriesIntegrationTestSuite) seedOrder(number string, owner access.Caller, createdAt time.Time, status order.Status) *order.Order {
	return suite.seed(number, owner.UserID(), createdAt, status, "120.00")
}

func (suite *QueriesIntegrationTestSuite) seedOrderWithTotal(number string, createdAt time.Time, status order.Status, total string) {
	suite.seed(number, suite.alice.UserID(), createdAt, status, total)
}

func (suite *QueriesIntegrationTestSuite) seed(
	number string,
	owner kernel.UUID,
	createdAt time.Time,
	status order.Status,
	total string,
) *order.Order {
	frame, err := order.NewItem(kernel.NewUUID(), "Aviator frame", 1, kernel.MustMoney("100.00"),
		json.RawMessage(`{"tint":"grey"}`), nil)
	suite.Require().NoError(err)
	caseItem, err := order.NewItem(kernel.NewUUID(), "Case", 1, kernel.MustMoney("20.00"), nil, nil)
	suite.Require().NoError(err)

	billing, err := order.NewBilling(order.BillingDetails{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "+15550100",
		Address1: "1 Main St",
		City:     "Springfield",
		State:    "IL",
		Country:  "US",
		ZipCode:  "62701",
	})
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), number, owner, "", order.HomeDelivery,
		kernel.MustMoney(total), []order.Item{frame, caseItem}, billing, createdAt)
	suite.Require().NoError(err)
	if status != order.Pending {
		suite.Require().NoError(o.ChangeStatus(status, createdAt.Add(time.Hour)))
	}

	suite.Require().NoError(orderrepo.NewGormOrderRepository(suite.db, &nopTracker{}).Add(context.Background(), o))
	o.ClearDomainEvents()
	return o
}

func TestQueriesIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(QueriesIntegrationTestSuite))
}
