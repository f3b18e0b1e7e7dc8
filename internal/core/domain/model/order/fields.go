package order

import (
	"strings"
	"unicode/utf8"

	"optistore/internal/pkg/errs"
)

const (
	maxOrderNumberLength   = 20
	maxPaymentMethodLength = 20

	// DefaultPaymentMethod is used when the client does not name one.
	DefaultPaymentMethod = "card"
)

// requireText validates that value is non-blank and at most maxLen characters long.
func requireText(param, value string, maxLen int) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return limitText(param, value, maxLen)
}

// limitText validates only the upper bound so optional fields can be empty.
func limitText(param, value string, maxLen int) error {
	if n := utf8.RuneCountInString(value); n > maxLen {
		return errs.NewValueIsOutOfRangeError(param+" length", n, 1, maxLen)
	}
	return nil
}
