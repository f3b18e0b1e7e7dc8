package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"optistore/internal/pkg/errs"
)

// ErrInvalidStatus is the cause of every error returned for an unknown status value.
var ErrInvalidStatus = errors.New("invalid status")

// Status is the lifecycle state of an order.
//
//	pending ──> processing ──> shipped ──> delivered
//	   └────────────┴─────────────┴──────> cancelled
//
// The diagram shows the intended business flow. Sequencing is not enforced yet:
// any valid status may follow any other (see transitions).
type Status string

const (
	Pending    Status = "pending"
	Processing Status = "processing"
	Shipped    Status = "shipped"
	Delivered  Status = "delivered"
	Cancelled  Status = "cancelled"
)

// Statuses returns the valid statuses in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, Processing, Shipped, Delivered, Cancelled}
}

// transitions lists the statuses reachable from each status. Every status is
// reachable from every other one, including itself.
var transitions = map[Status][]Status{
	Pending:    Statuses(),
	Processing: Statuses(),
	Shipped:    Statuses(),
	Delivered:  Statuses(),
	Cancelled:  Statuses(),
}

// ParseStatus converts client or storage input into a Status. The error lists
// the accepted values and matches ErrInvalidStatus.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if err := st.Validate(); err != nil {
		return "", err
	}
	return st, nil
}

// Validate checks that s is one of the five known statuses.
func (s Status) Validate() error {
	if slices.Contains(Statuses(), s) {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%w: %q, valid values are %s", ErrInvalidStatus, string(s), validStatusList()),
	)
}

// ValidateTransition checks whether an order in status s may move to next.
// Value validity is checked separately by Validate.
func (s Status) ValidateTransition(next Status) error {
	if !slices.Contains(transitions[s], next) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("cannot change status from %s to %s", s, next),
		)
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}

func validStatusList() string {
	names := make([]string, 0, len(Statuses()))
	for _, st := range Statuses() {
		names = append(names, string(st))
	}
	return strings.Join(names, ", ")
}
