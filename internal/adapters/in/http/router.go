package http

import (
	"context"
	"fmt"
	"net/http"

	"optistore/internal/adapters/in/http/api"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/oapi-codegen/runtime"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// ServerInterface lists the operations of the OpenAPI document.
type ServerInterface interface {
	// (POST /orders)
	CreateOrder(ctx echo.Context) error
	// (GET /orders)
	ListOwnOrders(ctx echo.Context) error
	// (GET /orders/{order_number})
	GetOrder(ctx echo.Context, orderNumber string) error
	// (PATCH /orders/{order_number}/status)
	UpdateOwnOrderStatus(ctx echo.Context, orderNumber string) error
	// (GET /role/orders)
	ListRoleOrders(ctx echo.Context) error
	// (GET /role/orders/pending-count)
	PendingOrderCount(ctx echo.Context) error
	// (PATCH /role/orders/{order_number}/status)
	UpdateOrderStatus(ctx echo.Context, orderNumber string) error
	// (POST /role/deliveries)
	AssignDelivery(ctx echo.Context) error
	// (GET /role/delivery-persons)
	ListActiveDeliveryPersons(ctx echo.Context) error
	// (GET /sales/total)
	TotalSales(ctx echo.Context) error
	// (GET /sales/monthly)
	MonthlyRevenue(ctx echo.Context) error
	// (GET /sales/overview)
	SalesOverview(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindOrderNumber(ctx echo.Context) (string, error) {
	var orderNumber string
	err := runtime.BindStyledParameterWithOptions("simple", "order_number", ctx.Param("order_number"), &orderNumber,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter order_number: %s", err))
	}
	return orderNumber, nil
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) ListOwnOrders(ctx echo.Context) error {
	return w.Handler.ListOwnOrders(ctx)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderNumber, err := bindOrderNumber(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderNumber)
}

func (w *ServerInterfaceWrapper) UpdateOwnOrderStatus(ctx echo.Context) error {
	orderNumber, err := bindOrderNumber(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UpdateOwnOrderStatus(ctx, orderNumber)
}

func (w *ServerInterfaceWrapper) ListRoleOrders(ctx echo.Context) error {
	return w.Handler.ListRoleOrders(ctx)
}

func (w *ServerInterfaceWrapper) PendingOrderCount(ctx echo.Context) error {
	return w.Handler.PendingOrderCount(ctx)
}

func (w *ServerInterfaceWrapper) UpdateOrderStatus(ctx echo.Context) error {
	orderNumber, err := bindOrderNumber(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UpdateOrderStatus(ctx, orderNumber)
}

func (w *ServerInterfaceWrapper) AssignDelivery(ctx echo.Context) error {
	return w.Handler.AssignDelivery(ctx)
}

func (w *ServerInterfaceWrapper) ListActiveDeliveryPersons(ctx echo.Context) error {
	return w.Handler.ListActiveDeliveryPersons(ctx)
}

func (w *ServerInterfaceWrapper) TotalSales(ctx echo.Context) error {
	return w.Handler.TotalSales(ctx)
}

func (w *ServerInterfaceWrapper) MonthlyRevenue(ctx echo.Context) error {
	return w.Handler.MonthlyRevenue(ctx)
}

func (w *ServerInterfaceWrapper) SalesOverview(ctx echo.Context) error {
	return w.Handler.SalesOverview(ctx)
}

// EchoRouter is the part of echo.Echo and echo.Group used for registration.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds the routes of si under baseURL.
func RegisterHandlers(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.POST(baseURL+"/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/orders", wrapper.ListOwnOrders)
	router.GET(baseURL+"/orders/:order_number", wrapper.GetOrder)
	router.PATCH(baseURL+"/orders/:order_number/status", wrapper.UpdateOwnOrderStatus)
	router.GET(baseURL+"/role/orders", wrapper.ListRoleOrders)
	router.GET(baseURL+"/role/orders/pending-count", wrapper.PendingOrderCount)
	router.PATCH(baseURL+"/role/orders/:order_number/status", wrapper.UpdateOrderStatus)
	router.POST(baseURL+"/role/deliveries", wrapper.AssignDelivery)
	router.GET(baseURL+"/role/delivery-persons", wrapper.ListActiveDeliveryPersons)
	router.GET(baseURL+"/sales/total", wrapper.TotalSales)
	router.GET(baseURL+"/sales/monthly", wrapper.MonthlyRevenue)
	router.GET(baseURL+"/sales/overview", wrapper.SalesOverview)
}

// RouterOptions configures NewRouter.
type RouterOptions struct {
	JWTSecret  string
	LogRequest bool
}

// NewRouter builds the echo instance serving the API, its document and the
// Swagger UI.
func NewRouter(ctx context.Context, server *Server, opts RouterOptions) (*echo.Echo, error) {
	doc, err := api.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}

	validate, err := requestValidator(doc)
	if err != nil {
		return nil, fmt.Errorf("build request validator: %w", err)
	}
	registerSwagger(doc)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	if opts.LogRequest {
		e.Use(middleware.Logger())
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.yaml", specHandler)
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(swaggerInstance)))

	group := e.Group("/api/v1", authenticate([]byte(opts.JWTSecret)), validate)
	RegisterHandlers(group, server, "")

	return e, nil
}
