package http

import (
	"log/slog"
	"net/http"
	"time"

	"optistore/internal/core/application/usecases/commands"
	"optistore/internal/core/application/usecases/queries"
	"optistore/internal/core/domain/model/kernel"
	"optistore/internal/core/domain/model/order"
	"optistore/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder       commands.CreateOrderCommandHandler
	UpdateOrderStatus commands.UpdateOrderStatusCommandHandler
	AssignDelivery    commands.AssignDeliveryCommandHandler

	ListOwnOrders             queries.ListOwnOrdersQueryHandler
	GetOrder                  queries.GetOrderQueryHandler
	ListRoleOrders            queries.ListRoleOrdersQueryHandler
	ListActiveDeliveryPersons queries.ListActiveDeliveryPersonsQueryHandler
	PendingOrderCount         queries.PendingOrderCountQueryHandler
	TotalSales                queries.TotalSalesQueryHandler
	MonthlyRevenue            queries.MonthlyRevenueQueryHandler
	SalesOverview             queries.SalesOverviewQueryHandler
}

// Server implements ServerInterface on top of the order use cases.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
	now      func() time.Time
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http_server"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the clock used as the reference date of sales reports.
func (s *Server) WithClock(now func() time.Time) *Server {
	s.now = now
	return s
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body NewOrder
	if err = ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	lines, err := orderLines(body.Items)
	if err != nil {
		return s.fail(ctx, err)
	}

	address2 := ""
	if body.Billing.Address2 != nil {
		address2 = *body.Billing.Address2
	}

	cmd, err := commands.NewCreateOrderCommand(
		caller,
		body.OrderNumber,
		body.DeliveryOption,
		body.PaymentMethod,
		body.TotalPrice,
		lines,
		order.BillingDetails{
			Name:     body.Billing.Name,
			Email:    body.Billing.Email,
			Phone:    body.Billing.Phone,
			Address1: body.Billing.Address1,
			Address2: address2,
			City:     body.Billing.City,
			State:    body.Billing.State,
			Country:  body.Billing.Country,
			ZipCode:  body.Billing.ZipCode,
		},
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	placed, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderFromDomain(placed))
}

func orderLines(items []NewOrderItem) ([]commands.OrderLine, error) {
	lines := make([]commands.OrderLine, 0, len(items))
	for _, it := range items {
		productID, err := kernel.UUIDFromString(it.ProductID)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("product_id", err)
		}

		line := commands.OrderLine{
			ProductID:  productID,
			Quantity:   it.Quantity,
			Price:      it.Price,
			LensOption: it.LensOption,
		}
		if it.PrescriptionID != nil && *it.PrescriptionID != "" {
			prescriptionID, err := kernel.UUIDFromString(*it.PrescriptionID)
			if err != nil {
				return nil, errs.NewValueIsInvalidErrorWithCause("prescription_id", err)
			}
			line.PrescriptionID = &prescriptionID
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// ListOwnOrders handles GET /api/v1/orders.
func (s *Server) ListOwnOrders(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewListOwnOrdersQuery(caller)
	if err != nil {
		return s.fail(ctx, err)
	}

	orders, err := s.handlers.ListOwnOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ordersFromViews(orders))
}

// GetOrder handles GET /api/v1/orders/{order_number}.
func (s *Server) GetOrder(ctx echo.Context, orderNumber string) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(caller, orderNumber)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromView(view))
}

// UpdateOwnOrderStatus handles PATCH /api/v1/orders/{order_number}/status.
func (s *Server) UpdateOwnOrderStatus(ctx echo.Context, orderNumber string) error {
	return s.updateStatus(ctx, orderNumber, true)
}

// UpdateOrderStatus handles PATCH /api/v1/role/orders/{order_number}/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context, orderNumber string) error {
	return s.updateStatus(ctx, orderNumber, false)
}

func (s *Server) updateStatus(ctx echo.Context, orderNumber string, ownOrderOnly bool) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body StatusChange
	if err = ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(caller, orderNumber, body.Status, ownOrderOnly)
	if err != nil {
		return s.fail(ctx, err)
	}

	updated, err := s.handlers.UpdateOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, StatusChanged{
		Message:         "Order status updated",
		OrderNumber:     updated.Number(),
		Status:          updated.Status().String(),
		StatusUpdatedAt: updated.StatusUpdatedAt(),
	})
}

// ListRoleOrders handles GET /api/v1/role/orders.
func (s *Server) ListRoleOrders(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewListRoleOrdersQuery(caller)
	if err != nil {
		return s.fail(ctx, err)
	}

	orders, err := s.handlers.ListRoleOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ordersFromViews(orders))
}

// PendingOrderCount handles GET /api/v1/role/orders/pending-count.
func (s *Server) PendingOrderCount(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewPendingOrderCountQuery(caller)
	if err != nil {
		return s.fail(ctx, err)
	}

	count, err := s.handlers.PendingOrderCount.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, PendingCount{PendingOrders: count})
}

// AssignDelivery handles POST /api/v1/role/deliveries.
func (s *Server) AssignDelivery(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body NewDelivery
	if err = ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	personID, err := kernel.UUIDFromString(body.DeliveryPersonID)
	if err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("delivery_person_id", err))
	}

	cmd, err := commands.NewAssignDeliveryCommand(caller, body.OrderNumber, personID)
	if err != nil {
		return s.fail(ctx, err)
	}

	shipped, err := s.handlers.AssignDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	d := shipped.Delivery()
	return ctx.JSON(http.StatusCreated, Delivery{
		OrderNumber:      shipped.Number(),
		DeliveryPersonID: d.PersonID().Bytes(),
		AssignedAt:       d.AssignedAt(),
	})
}

// ListActiveDeliveryPersons handles GET /api/v1/role/delivery-persons.
func (s *Server) ListActiveDeliveryPersons(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewListActiveDeliveryPersonsQuery(caller)
	if err != nil {
		return s.fail(ctx, err)
	}

	persons, err := s.handlers.ListActiveDeliveryPersons.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]DeliveryPerson, len(persons))
	for i, p := range persons {
		response[i] = DeliveryPerson{
			ID:    p.ID.Bytes(),
			Name:  p.Name,
			Email: p.Email,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// TotalSales handles GET /api/v1/sales/total.
func (s *Server) TotalSales(ctx echo.Context) error {
	query, err := s.salesQuery(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	totals, err := s.handlers.TotalSales.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, TotalSales{
		Current: amount(totals.Current),
		Prior:   amount(totals.Prior),
	})
}

// MonthlyRevenue handles GET /api/v1/sales/monthly.
func (s *Server) MonthlyRevenue(ctx echo.Context) error {
	query, err := s.salesQuery(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	revenue, err := s.handlers.MonthlyRevenue.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, MonthlyRevenue{
		CurrentMonth:  amount(revenue.CurrentMonth),
		PreviousMonth: amount(revenue.PreviousMonth),
	})
}

// SalesOverview handles GET /api/v1/sales/overview.
func (s *Server) SalesOverview(ctx echo.Context) error {
	query, err := s.salesQuery(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	months, err := s.handlers.SalesOverview.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]MonthRevenue, len(months))
	for i, m := range months {
		response[i] = MonthRevenue{Month: m.Month, Revenue: amount(m.Revenue)}
	}

	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) salesQuery(ctx echo.Context) (queries.SalesQuery, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return queries.SalesQuery{}, err
	}
	return queries.NewSalesQuery(caller, s.now())
}

func ordersFromViews(views []queries.OrderResponse) []Order {
	response := make([]Order, len(views))
	for i, v := range views {
		response[i] = orderFromView(v)
	}
	return response
}
