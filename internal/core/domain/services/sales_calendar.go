package services

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period is a half-open time range [From, To).
type Period struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.From) && t.Before(p.To)
}

// MonthlyRevenue is the revenue of one calendar month of the overview.
type MonthlyRevenue struct {
	Label   string
	Revenue decimal.Decimal
}

// SalesCalendar computes the reporting periods used by the sales aggregations.
// All periods are taken in the time zone of asOf.
type SalesCalendar struct {
	asOf time.Time
}

func NewSalesCalendar(asOf time.Time) SalesCalendar {
	return SalesCalendar{asOf: asOf}
}

// CurrentMonth is the calendar month containing asOf.
func (c SalesCalendar) CurrentMonth() Period {
	start := monthStart(c.asOf)
	return Period{From: start, To: start.AddDate(0, 1, 0)}
}

// PreviousMonth is the calendar month before CurrentMonth.
func (c SalesCalendar) PreviousMonth() Period {
	start := monthStart(c.asOf)
	return Period{From: start.AddDate(0, -1, 0), To: start}
}

// CurrentYear is the calendar year containing asOf.
func (c SalesCalendar) CurrentYear() Period {
	start := time.Date(c.asOf.Year(), time.January, 1, 0, 0, 0, 0, c.asOf.Location())
	return Period{From: start, To: start.AddDate(1, 0, 0)}
}

// Overview folds delivered order totals into twelve zero-filled buckets labelled Jan..Dec.
// Points outside the current year are ignored.
func (c SalesCalendar) Overview(createdAt []time.Time, totals []decimal.Decimal) []MonthlyRevenue {
	year := c.CurrentYear()
	buckets := make([]MonthlyRevenue, 12)
	for m := range buckets {
		buckets[m] = MonthlyRevenue{
			Label:   time.Month(m + 1).String()[:3],
			Revenue: decimal.Zero,
		}
	}

	for i := range createdAt {
		if i >= len(totals) {
			break
		}
		at := createdAt[i].In(c.asOf.Location())
		if !year.Contains(at) {
			continue
		}
		m := at.Month() - 1
		buckets[m].Revenue = buckets[m].Revenue.Add(totals[i])
	}

	return buckets
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
