// Package order provides the Order aggregate of the optical store: multi-item orders
// with a billing snapshot, a five-state status, and an optional delivery assignment.
//
// The package includes:
//   - Order: the aggregate root, raising domain events on every state change
//   - Item and Billing: snapshots captured when the order is placed
//   - Delivery: the write-once delivery person assignment
//   - Status and DeliveryOption: validated enumerations
//
// Key business rules:
//   - Orders start pending and record when their status last changed
//   - Assigning a delivery forces the shipped status and can happen only once
//   - Status values are validated separately from transition sequencing
package order
