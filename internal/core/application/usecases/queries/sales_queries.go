package queries

import (
	"errors"
	"time"

	"optistore/internal/core/domain/model/access"
	"optistore/internal/core/domain/services"
	"optistore/internal/pkg/errs"
	"optistore/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrSalesQueryIsNotConstructed = errors.New(
		"SalesQuery must be created via NewSalesQuery constructor",
	)
)

// SalesQuery is the input of the sales aggregations. Periods are derived from asOf
// in its own time zone; only delivered orders count as sales.
//
// Example:
//
//	query, err := NewSalesQuery(caller, time.Now().UTC())
//	if err != nil {
//	    return err
//	}
//	totals, err := totalSalesHandler.Handle(ctx, query)
type SalesQuery struct {
	caller access.Caller
	asOf   time.Time
	guard  guard.ConstructorGuard
}

func NewSalesQuery(caller access.Caller, asOf time.Time) (SalesQuery, error) {
	if err := caller.Validate(); err != nil {
		return SalesQuery{}, err
	}
	if asOf.IsZero() {
		return SalesQuery{}, errs.NewValueIsRequiredError("as_of")
	}
	return SalesQuery{caller: caller, asOf: asOf, guard: guard.NewConstructorGuard()}, nil
}

func (q SalesQuery) Caller() access.Caller {
	return q.caller
}

func (q SalesQuery) AsOf() time.Time {
	return q.asOf
}

func (q SalesQuery) Calendar() services.SalesCalendar {
	return services.NewSalesCalendar(q.asOf)
}

func (q SalesQuery) Validate() error {
	return q.guard.Validate(ErrSalesQueryIsNotConstructed)
}

// TotalSalesResponse holds the revenue of all delivered orders (Current) and of
// those created before the current month (Prior).
type TotalSalesResponse struct {
	Current decimal.Decimal
	Prior   decimal.Decimal
}

type MonthlyRevenueResponse struct {
	CurrentMonth  decimal.Decimal
	PreviousMonth decimal.Decimal
}

// SalesOverviewResponse is one month of the yearly overview.
type SalesOverviewResponse struct {
	Month   string
	Revenue decimal.Decimal
}
