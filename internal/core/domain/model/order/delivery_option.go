package order

import (
	"fmt"

	"optistore/internal/pkg/errs"
)

// DeliveryOption is how the customer receives the goods.
type DeliveryOption string

const (
	HomeDelivery DeliveryOption = "home"
	StorePickup  DeliveryOption = "pickup"
)

func ParseDeliveryOption(s string) (DeliveryOption, error) {
	opt := DeliveryOption(s)
	if err := opt.Validate(); err != nil {
		return "", err
	}
	return opt, nil
}

func (o DeliveryOption) Validate() error {
	switch o {
	case HomeDelivery, StorePickup:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery_option",
			fmt.Errorf("%q is not one of %s, %s", string(o), HomeDelivery, StorePickup),
		)
	}
}

func (o DeliveryOption) String() string {
	return string(o)
}
