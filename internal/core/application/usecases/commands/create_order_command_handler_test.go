package commands_test

import (
	"errors"
	"testing"

	"optistore/internal/core/application/usecases/commands"
	"optistore/internal/core/domain/model/access"
	"optistore/internal/core/domain/model/kernel"
	"optistore/internal/core/domain/model/order"
	"optistore/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateOrderCommand(t *testing.T, caller access.Caller, lines []commands.OrderLine) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(caller, "ORD-1001", "home", "",
		decimal.RequireFromString("160.00"), lines, billingDetails())
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	caller := newCaller(t, access.Customer)
	frameID := kernel.NewUUID()
	rxID := kernel.NewUUID()
	cmd := newCreateOrderCommand(t, caller, []commands.OrderLine{{
		ProductID:      frameID,
		Quantity:       2,
		Price:          decimal.RequireFromString("80.00"),
		PrescriptionID: &rxID,
	}})

	repo := new(MockOrderRepository)
	products := new(MockProductCatalog)
	prescriptions := new(MockPrescriptionRegistry)
	uow := new(MockUoW)

	var saved *order.Order
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductCatalog").Return(products).Once(),
		uow.On("PrescriptionRegistry").Return(prescriptions).Once(),
		products.On("Get", ctx, frameID).Return(newProduct(t, frameID, "Round acetate frame"), nil).Once(),
		prescriptions.On("Exists", ctx, rxID).Return(true, nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*order.Order) }).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := &MockUoWFactory{}
	factory.On("create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(placeOrderFactory{factory})
	created, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Same(t, saved, created)
	assert.Equal(t, order.Pending, created.Status())
	assert.True(t, caller.UserID().IsEqual(created.OwnerID()))
	assert.Equal(t, "card", created.PaymentMethod())
	require.Len(t, created.Items(), 1)
	assert.Equal(t, "Round acetate frame", created.Items()[0].ProductName())
	assert.Len(t, created.DomainEvents(), 1)

	repo.AssertExpectations(t)
	products.AssertExpectations(t)
	prescriptions.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ProductNotFound(t *testing.T) {
	ctx := t.Context()
	missing := kernel.NewUUID()
	cmd := newCreateOrderCommand(t, newCaller(t, access.Customer), []commands.OrderLine{{
		ProductID: missing, Quantity: 1, Price: decimal.RequireFromString("10.00"),
	}})

	products := new(MockProductCatalog)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductCatalog").Return(products).Once(),
		uow.On("PrescriptionRegistry").Return(new(MockPrescriptionRegistry)).Once(),
		products.On("Get", ctx, missing).Return(nil, errs.NewObjectNotFoundError("product", missing.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := &MockUoWFactory{}
	factory.On("create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(placeOrderFactory{factory})
	created, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Contains(t, err.Error(), missing.String())
	assert.Nil(t, created)
	uow.AssertNotCalled(t, "OrderRepository")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_PrescriptionNotFound(t *testing.T) {
	ctx := t.Context()
	productID := kernel.NewUUID()
	rxID := kernel.NewUUID()
	cmd := newCreateOrderCommand(t, newCaller(t, access.Customer), []commands.OrderLine{{
		ProductID: productID, Quantity: 1, Price: decimal.RequireFromString("10.00"), PrescriptionID: &rxID,
	}})

	products := new(MockProductCatalog)
	prescriptions := new(MockPrescriptionRegistry)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ProductCatalog").Return(products).Once()
	uow.On("PrescriptionRegistry").Return(prescriptions).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	products.On("Get", ctx, productID).Return(newProduct(t, productID, "Lens"), nil).Once()
	prescriptions.On("Exists", ctx, rxID).Return(false, nil).Once()
	factory := &MockUoWFactory{}
	factory.On("create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(placeOrderFactory{factory})
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_DuplicateOrderNumber(t *testing.T) {
	ctx := t.Context()
	productID := kernel.NewUUID()
	cmd := newCreateOrderCommand(t, newCaller(t, access.Doctor), []commands.OrderLine{{
		ProductID: productID, Quantity: 1, Price: decimal.RequireFromString("10.00"),
	}})

	repo := new(MockOrderRepository)
	products := new(MockProductCatalog)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ProductCatalog").Return(products).Once()
	uow.On("PrescriptionRegistry").Return(new(MockPrescriptionRegistry)).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	products.On("Get", ctx, productID).Return(newProduct(t, productID, "Lens"), nil).Once()
	repo.On("Add", ctx, mock.Anything).
		Return(errs.NewObjectAlreadyExistsErrorWithCause("order_number", "ORD-1001", order.ErrDuplicateOrderNumber)).Once()
	factory := &MockUoWFactory{}
	factory.On("create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(placeOrderFactory{factory})
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrDuplicateOrderNumber)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := &MockUoWFactory{}
	h := commands.NewCreateOrderCommandHandler(placeOrderFactory{factory})

	_, err := h.Handle(t.Context(), commands.CreateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "create")
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t, newCaller(t, access.Customer), validLines())

	uow := new(MockUoW)
	factory := &MockUoWFactory{}
	mock.InOrder(
		factory.On("create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(placeOrderFactory{factory})
	_, err := h.Handle(ctx, cmd)
	require.EqualError(t, err, "begin error")
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	lines := validLines()
	cmd := newCreateOrderCommand(t, newCaller(t, access.Customer), lines)

	repo := new(MockOrderRepository)
	products := new(MockProductCatalog)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ProductCatalog").Return(products).Once()
	uow.On("PrescriptionRegistry").Return(new(MockPrescriptionRegistry)).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(errors.New("commit error")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	products.On("Get", ctx, lines[0].ProductID).Return(newProduct(t, lines[0].ProductID, "Lens"), nil).Once()
	repo.On("Add", ctx, mock.Anything).Return(nil).Once()
	factory := &MockUoWFactory{}
	factory.On("create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(placeOrderFactory{factory})
	created, err := h.Handle(ctx, cmd)

	require.EqualError(t, err, "commit error")
	assert.Nil(t, created)
	uow.AssertExpectations(t)
}
