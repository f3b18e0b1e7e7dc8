// Package access models who is calling the order service and what they may do.
//
// The package includes:
//   - Role: the five user kinds known to the platform
//   - Caller: the authenticated identity attached to every request
//   - Account: a read-only user record used to validate delivery persons
//   - Authorize and OrderScope: the one authorization table consulted by all
//     commands and queries
package access
