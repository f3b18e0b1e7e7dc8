package commands_test

import (
	"context"

	"optistore/internal/core/application/usecases/commands"
	"optistore/internal/core/domain/model/access"
	"optistore/internal/core/domain/model/catalog"
	"optistore/internal/core/domain/model/kernel"
	"optistore/internal/core/domain/model/notification"
	"optistore/internal/core/domain/model/order"
	"optistore/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetByNumberForUpdate(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockProductCatalog struct{ mock.Mock }

func (m *MockProductCatalog) Get(ctx context.Context, id kernel.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*catalog.Product)
	return p, args.Error(1)
}

type MockPrescriptionRegistry struct{ mock.Mock }

func (m *MockPrescriptionRegistry) Exists(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockAccountDirectory struct{ mock.Mock }

func (m *MockAccountDirectory) Get(ctx context.Context, id kernel.UUID) (*access.Account, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*access.Account)
	return a, args.Error(1)
}

type MockOutbox struct{ mock.Mock }

func (m *MockOutbox) Add(ctx context.Context, messages ...*notification.Message) error {
	args := m.Called(ctx, messages)
	return args.Error(0)
}

func (m *MockOutbox) GetPending(ctx context.Context, limit int) ([]*notification.Message, error) {
	args := m.Called(ctx, limit)
	msgs, _ := args.Get(0).([]*notification.Message)
	return msgs, args.Error(1)
}

func (m *MockOutbox) Update(ctx context.Context, message *notification.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

type MockEmailSender struct{ mock.Mock }

func (m *MockEmailSender) Send(ctx context.Context, message *notification.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

// MockUoW satisfies every unit of work interface used by the command handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ProductCatalog() ports.ProductCatalog {
	args := m.Called()
	return args.Get(0).(ports.ProductCatalog)
}

func (m *MockUoW) PrescriptionRegistry() ports.PrescriptionRegistry {
	args := m.Called()
	return args.Get(0).(ports.PrescriptionRegistry)
}

func (m *MockUoW) AccountDirectory() ports.AccountDirectory {
	args := m.Called()
	return args.Get(0).(ports.AccountDirectory)
}

func (m *MockUoW) NotificationOutbox() ports.NotificationOutbox {
	args := m.Called()
	return args.Get(0).(ports.NotificationOutbox)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) create() *MockUoW {
	args := m.Called()
	return args.Get(0).(*MockUoW)
}

type placeOrderFactory struct{ *MockUoWFactory }

func (f placeOrderFactory) Create() commands.PlaceOrderUoW { return f.create() }

type orderFactory struct{ *MockUoWFactory }

func (f orderFactory) Create() commands.OrderUoW { return f.create() }

type deliveryFactory struct{ *MockUoWFactory }

func (f deliveryFactory) Create() commands.DeliveryUoW { return f.create() }

type outboxFactory struct{ *MockUoWFactory }

func (f outboxFactory) Create() commands.OutboxUoW { return f.create() }
