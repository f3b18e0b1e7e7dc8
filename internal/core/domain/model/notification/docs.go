// Package notification models the emails sent about orders. Messages are composed
// from order events, stored in an outbox and sent later by a scheduled job, so
// a mail outage never affects the order transaction.
package notification
