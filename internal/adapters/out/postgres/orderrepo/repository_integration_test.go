package orderrepo_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"optistore/internal/adapters/out/postgres/orderrepo"
	"optistore/internal/adapters/out/postgres/prescriptionrepo"
	"optistore/internal/core/domain/model/access"
	"optistore/internal/core/domain/model/kernel"
	"optistore/internal/core/domain/model/order"
	"optistore/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite runs the order repository against PostgreSQL.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	models := append([]any{&prescriptionrepo.PrescriptionDTO{}}, orderrepo.Models()...)
	suite.Require().NoError(db.AutoMigrate(models...))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE deliveries, billing_infos, order_items, orders, prescriptions CASCADE",
	).Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()
	tracker := new(MockAggregateTracker)
	repository := orderrepo.NewGormOrderRepository(suite.db, tracker)

	testOrder := suite.createTestOrder("ORD-1")
	tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	suite.Require().NoError(repository.Add(ctx, testOrder))

	suite.assertCount("orders", 1)
	suite.assertCount("order_items", 2)
	suite.assertCount("billing_infos", 1)
	suite.assertCount("deliveries", 0)
	tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateNumber_Conflict() {
	ctx := context.Background()

	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestOrder("ORD-1")))

	err := suite.repository.Add(ctx, suite.createTestOrder("ORD-1"))

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, order.ErrDuplicateOrderNumber)
	suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)
	suite.assertCount("orders", 1)
	suite.assertCount("order_items", 2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ConcurrentDuplicateNumber_ExactlyOneSucceeds() {
	ctx := context.Background()
	const attempts = 4

	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- suite.db.Transaction(func(tx *gorm.DB) error {
				repo := orderrepo.NewGormOrderRepository(tx, suite.tracker)
				return repo.Add(ctx, suite.createTestOrder("ORD-RACE"))
			})
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, duplicates int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, order.ErrDuplicateOrderNumber):
			duplicates++
		default:
			suite.Failf("unexpected error", "%v", err)
		}
	}

	suite.Equal(1, succeeded)
	suite.Equal(attempts-1, duplicates)
	suite.assertCount("orders", 1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByNumber_RoundTrip() {
	ctx := context.Background()

	prescriptionID := suite.createPrescription()
	testOrder := suite.createTestOrderWithPrescription("ORD-7", &prescriptionID)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	loaded, err := suite.repository.GetByNumber(ctx, "ORD-7")
	suite.Require().NoError(err)

	suite.True(testOrder.ID().IsEqual(loaded.ID()))
	suite.Equal(order.Pending, loaded.Status())
	suite.Equal("card", loaded.PaymentMethod())
	suite.Equal(order.HomeDelivery, loaded.DeliveryOption())
	suite.Equal("245.50", loaded.TotalPrice().String())
	suite.Equal("Jane Doe", loaded.Billing().Name())
	suite.Equal("jane@example.com", loaded.Billing().Email())
	suite.Nil(loaded.Delivery())
	suite.Empty(loaded.DomainEvents())

	items := loaded.Items()
	suite.Require().Len(items, 2)
	suite.Equal("Aviator frame", items[0].ProductName())
	suite.Equal(2, items[0].Quantity())
	suite.Equal("100.00", items[0].Price().String())
	suite.JSONEq(`{"coating":"blue-light"}`, string(items[0].LensOption()))
	suite.Require().NotNil(items[0].PrescriptionID())
	suite.True(prescriptionID.IsEqual(*items[0].PrescriptionID()))
	suite.Equal("Cleaning kit", items[1].ProductName())
	suite.Nil(items[1].LensOption())
	suite.Nil(items[1].PrescriptionID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByNumber_NotFound() {
	_, err := suite.repository.GetByNumber(context.Background(), "MISSING")

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_Status() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestOrder("ORD-2")))

	loaded, err := suite.repository.GetByNumber(ctx, "ORD-2")
	suite.Require().NoError(err)

	changedAt := loaded.StatusUpdatedAt().Add(time.Hour)
	suite.Require().NoError(loaded.ChangeStatus(order.Processing, changedAt))
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	reloaded, err := suite.repository.GetByNumber(ctx, "ORD-2")
	suite.Require().NoError(err)
	suite.Equal(order.Processing, reloaded.Status())
	suite.WithinDuration(changedAt, reloaded.StatusUpdatedAt(), time.Millisecond)
	suite.WithinDuration(loaded.CreatedAt(), reloaded.CreatedAt(), time.Millisecond)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_AssignDelivery() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestOrder("ORD-3")))

	person := suite.deliveryPerson()
	loaded, err := suite.repository.GetByNumberForUpdate(ctx, "ORD-3")
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.AssignDelivery(person, time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	reloaded, err := suite.repository.GetByNumber(ctx, "ORD-3")
	suite.Require().NoError(err)
	suite.Equal(order.Shipped, reloaded.Status())
	suite.Require().NotNil(reloaded.Delivery())
	suite.True(person.ID().IsEqual(reloaded.Delivery().PersonID()))

	// Saving the reloaded order again keeps the single delivery row.
	suite.Require().NoError(reloaded.ChangeStatus(order.Delivered, time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, reloaded))
	suite.assertCount("deliveries", 1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_DeliveryAssignedElsewhere_Conflict() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestOrder("ORD-4")))

	first, err := suite.repository.GetByNumber(ctx, "ORD-4")
	suite.Require().NoError(err)
	second, err := suite.repository.GetByNumber(ctx, "ORD-4")
	suite.Require().NoError(err)

	suite.Require().NoError(first.AssignDelivery(suite.deliveryPerson(), time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.AssignDelivery(suite.deliveryPerson(), time.Now().UTC()))
	err = suite.repository.Update(ctx, second)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, order.ErrDeliveryAlreadyAssigned)
	suite.assertCount("deliveries", 1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestPrescriptionRemoved_ItemKeepsNullReference() {
	ctx := context.Background()

	prescriptionID := suite.createPrescription()
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestOrderWithPrescription("ORD-5", &prescriptionID)))

	suite.Require().NoError(suite.db.Exec("DELETE FROM prescriptions WHERE id = ?", prescriptionID.String()).Error)

	loaded, err := suite.repository.GetByNumber(ctx, "ORD-5")
	suite.Require().NoError(err)
	suite.Nil(loaded.Items()[0].PrescriptionID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDeleteOrder_CascadesToChildren() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("ORD-6")
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(suite.db.Exec("DELETE FROM orders WHERE id = ?", testOrder.ID().String()).Error)

	suite.assertCount("order_items", 0)
	suite.assertCount("billing_infos", 0)
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(number string) *order.Order {
	return suite.createTestOrderWithPrescription(number, nil)
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrderWithPrescription(
	number string,
	prescriptionID *kernel.UUID,
) *order.Order {
	frame, err := order.NewItem(kernel.NewUUID(), "Aviator frame", 2, kernel.MustMoney("100.00"),
		json.RawMessage(`{"coating":"blue-light"}`), prescriptionID)
	suite.Require().NoError(err)

	kit, err := order.NewItem(kernel.NewUUID(), "Cleaning kit", 1, kernel.MustMoney("45.50"), nil, nil)
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

	o, err := order.NewOrder(kernel.NewUUID(), number, kernel.NewUUID(), "", order.HomeDelivery,
		kernel.MustMoney("245.50"), []order.Item{frame, kit}, billing, time.Now().UTC())
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) createPrescription() kernel.UUID {
	id := kernel.NewUUID()
	suite.Require().NoError(suite.db.Create(&prescriptionrepo.PrescriptionDTO{
		ID:        id.Bytes(),
		UserID:    uuid.New(),
		CreatedAt: time.Now().UTC(),
	}).Error)
	return id
}

func (suite *OrderRepositoryIntegrationTestSuite) deliveryPerson() *access.Account {
	person, err := access.RestoreAccount(kernel.NewUUID(), "Dan Driver", "dan@example.com", access.Delivery, true)
	suite.Require().NoError(err)
	return person
}

func (suite *OrderRepositoryIntegrationTestSuite) assertCount(table string, expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Table(table).Count(&count).Error)
	suite.Equal(expected, count, table)
}

func TestOrderRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
