// Package services provides domain services that work across aggregates of the
// order service.
//
// The package includes:
//   - DeliveryDispatcher: hands an order to a validated delivery person
//   - SalesCalendar: reporting periods and month buckets for the sales aggregations
package services
