package queries

import (
	"context"
	"time"

	"optistore/internal/core/domain/model/access"
	"optistore/internal/core/domain/model/order"
	"optistore/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TotalSalesQueryHandler sums delivered orders overall and before the current month.
type TotalSalesQueryHandler struct {
	db *gorm.DB
}

func NewTotalSalesQueryHandler(db *gorm.DB) TotalSalesQueryHandler {
	return TotalSalesQueryHandler{db: db}
}

func (h TotalSalesQueryHandler) Handle(ctx context.Context, query SalesQuery) (TotalSalesResponse, error) {
	if err := authorizeSales(query); err != nil {
		return TotalSalesResponse{}, err
	}

	current, err := deliveredRevenue(ctx, h.db, nil)
	if err != nil {
		return TotalSalesResponse{}, err
	}

	prior, err := deliveredRevenue(ctx, h.db, &services.Period{To: query.Calendar().CurrentMonth().From})
	if err != nil {
		return TotalSalesResponse{}, err
	}

	return TotalSalesResponse{Current: current, Prior: prior}, nil
}

// MonthlyRevenueQueryHandler sums delivered orders of the current and the previous month.
type MonthlyRevenueQueryHandler struct {
	db *gorm.DB
}

func NewMonthlyRevenueQueryHandler(db *gorm.DB) MonthlyRevenueQueryHandler {
	return MonthlyRevenueQueryHandler{db: db}
}

func (h MonthlyRevenueQueryHandler) Handle(ctx context.Context, query SalesQuery) (MonthlyRevenueResponse, error) {
	if err := authorizeSales(query); err != nil {
		return MonthlyRevenueResponse{}, err
	}

	calendar := query.Calendar()
	currentMonth := calendar.CurrentMonth()
	previousMonth := calendar.PreviousMonth()

	current, err := deliveredRevenue(ctx, h.db, &currentMonth)
	if err != nil {
		return MonthlyRevenueResponse{}, err
	}

	previous, err := deliveredRevenue(ctx, h.db, &previousMonth)
	if err != nil {
		return MonthlyRevenueResponse{}, err
	}

	return MonthlyRevenueResponse{CurrentMonth: current, PreviousMonth: previous}, nil
}

// SalesOverviewQueryHandler returns twelve zero-filled monthly revenue buckets
// for the calendar year of the query.
type SalesOverviewQueryHandler struct {
	db *gorm.DB
}

func NewSalesOverviewQueryHandler(db *gorm.DB) SalesOverviewQueryHandler {
	return SalesOverviewQueryHandler{db: db}
}

func (h SalesOverviewQueryHandler) Handle(ctx context.Context, query SalesQuery) ([]SalesOverviewResponse, error) {
	if err := authorizeSales(query); err != nil {
		return nil, err
	}

	calendar := query.Calendar()
	year := calendar.CurrentYear()

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			created_at,
			total_price
		FROM orders
		WHERE status = ? AND created_at >= ? AND created_at < ?
	`, string(order.Delivered), year.From.UTC(), year.To.UTC()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		createdAt []time.Time
		totals    []decimal.Decimal
	)
	for rows.Next() {
		var at time.Time
		var total decimal.Decimal
		if err = rows.Scan(&at, &total); err != nil {
			return nil, err
		}
		createdAt = append(createdAt, at)
		totals = append(totals, total)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	buckets := calendar.Overview(createdAt, totals)
	overview := make([]SalesOverviewResponse, 0, len(buckets))
	for _, b := range buckets {
		overview = append(overview, SalesOverviewResponse{Month: b.Label, Revenue: b.Revenue.Round(2)})
	}
	return overview, nil
}

func authorizeSales(query SalesQuery) error {
	if err := query.Validate(); err != nil {
		return err
	}
	return access.Authorize(access.ViewSalesAggregation, query.Caller())
}

// deliveredRevenue sums delivered orders, restricted to period when it is not nil.
// A zero From leaves the period open at the start.
func deliveredRevenue(ctx context.Context, db *gorm.DB, period *services.Period) (decimal.Decimal, error) {
	sql := "SELECT COALESCE(SUM(total_price), 0) FROM orders WHERE status = ?"
	args := []any{string(order.Delivered)}

	if period != nil {
		if !period.From.IsZero() {
			sql += " AND created_at >= ?"
			args = append(args, period.From.UTC())
		}
		sql += " AND created_at < ?"
		args = append(args, period.To.UTC())
	}

	var sum decimal.NullDecimal
	if err := db.WithContext(ctx).Raw(sql, args...).Row().Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal.Round(2), nil
}
