package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"optistore/internal/core/domain/model/order"
	"optistore/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "validation",
			err:     errs.NewValueIsRequiredError("order_number"),
			code:    http.StatusBadRequest,
			message: "Invalid data",
		},
		{
			name:    "invalid status",
			err:     order.Status("archived").Validate(),
			code:    http.StatusBadRequest,
			message: "Invalid data",
		},
		{
			name:    "not found",
			err:     errs.NewObjectNotFoundError("product", "42"),
			code:    http.StatusNotFound,
			message: errs.NewObjectNotFoundError("product", "42").Error(),
		},
		{
			name:    "duplicate order number",
			err:     errs.NewObjectAlreadyExistsErrorWithCause("order", "ORD-1", order.ErrDuplicateOrderNumber),
			code:    http.StatusConflict,
			message: errs.NewObjectAlreadyExistsErrorWithCause("order", "ORD-1", order.ErrDuplicateOrderNumber).Error(),
		},
		{
			name:    "permission denied",
			err:     errs.NewPermissionDeniedError("assign_delivery", "customer"),
			code:    http.StatusForbidden,
			message: "Insufficient role",
		},
		{
			name:    "unauthenticated",
			err:     errUnauthenticated,
			code:    http.StatusUnauthorized,
			message: "Authentication required",
		},
		{
			name:    "internal",
			err:     fmt.Errorf("insert order: %w", errors.New("connection reset")),
			code:    http.StatusInternalServerError,
			message: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := errorResponse(tt.err)

			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.code, resp.Code)
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}

func TestErrorResponse_ListsJoinedValidationErrors(t *testing.T) {
	err := errors.Join(
		errs.NewValueIsRequiredError("order_number"),
		errors.Join(errs.NewValueIsRequiredError("items")),
	)

	code, resp := errorResponse(err)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Len(t, resp.Details, 2)
	assert.Contains(t, resp.Details[0], "order_number")
	assert.Contains(t, resp.Details[1], "items")
}

func TestErrorResponse_InvalidStatusListsValidValues(t *testing.T) {
	_, resp := errorResponse(order.Status("archived").Validate())

	assert.Len(t, resp.Details, 1)
	assert.Contains(t, resp.Details[0], "pending, processing, shipped, delivered, cancelled")
}
