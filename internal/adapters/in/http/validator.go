package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"

	"optistore/internal/adapters/in/http/api"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

// swaggerInstance is the swag registry name the Swagger UI reads the document from.
const swaggerInstance = "optistore"

var registerSwaggerOnce sync.Once

// swaggerDoc serves the embedded document to echo-swagger as JSON.
type swaggerDoc struct {
	doc *openapi3.T
}

func (d swaggerDoc) ReadDoc() string {
	data, err := json.Marshal(d.doc)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func registerSwagger(doc *openapi3.T) {
	registerSwaggerOnce.Do(func() {
		swag.Register(swaggerInstance, swaggerDoc{doc: doc})
	})
}

// requestValidator checks requests against the OpenAPI document before they
// reach the handlers. Requests for paths the document does not describe pass
// through untouched.
func requestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		MultiError:         true,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				var routeErr *routers.RouteError
				if errors.As(err, &routeErr) {
					return next(c)
				}
				return err
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return c.JSON(http.StatusBadRequest, Error{
					Code:    http.StatusBadRequest,
					Message: "Invalid request",
					Details: validationDetails(err),
				})
			}

			return next(c)
		}
	}, nil
}

func validationDetails(err error) []string {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		details := make([]string, 0, len(multi))
		for _, e := range multi {
			details = append(details, firstLine(e.Error()))
		}
		return details
	}
	return []string{firstLine(err.Error())}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// specHandler serves the raw OpenAPI document.
func specHandler(c echo.Context) error {
	return c.Blob(http.StatusOK, "application/yaml", api.Spec())
}
