package kernel

import (
	"errors"
	"fmt"

	"optistore/internal/pkg/errs"
	"optistore/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const (
	// MoneyScale is the number of fraction digits stored for every amount.
	MoneyScale = 2

	// MoneyPrecision is the total number of digits a stored amount may have.
	MoneyPrecision = 10
)

var (
	ErrMoneyIsNotConstructed = errors.New("Money must be created via NewMoney or MoneyFromString")

	minMoney = decimal.New(1, -MoneyScale)
	maxMoney = decimal.New(1, MoneyPrecision-MoneyScale).Sub(minMoney)
)

// Money is a positive amount with at most two fraction digits and ten digits in total,
// matching the numeric(10,2) columns it is stored in. Prices and order totals use it.
type Money struct {
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewMoney validates amount and wraps it. Amounts below 0.01, above 99999999.99
// or with more than two significant fraction digits are rejected.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if !amount.Round(MoneyScale).Equal(amount) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s has more than %d decimal places", amount.String(), MoneyScale),
		)
	}
	if amount.LessThan(minMoney) || amount.GreaterThan(maxMoney) {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount.String(), minMoney.String(), maxMoney.String())
	}

	return Money{
		amount: amount.Round(MoneyScale),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// MoneyFromString parses a decimal literal such as "149.90".
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(amount)
}

// MustMoney is NewMoney for literals known to be valid.
func MustMoney(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Times multiplies the amount by a quantity. The result is a plain decimal
// because it may exceed the storable range.
func (m Money) Times(quantity int) decimal.Decimal {
	return m.amount.Mul(decimal.NewFromInt(int64(quantity)))
}

func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders the amount with exactly two fraction digits.
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}

func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}
