package order

import (
	"errors"
	"net/mail"
	"strings"

	"optistore/internal/pkg/errs"
)

var ErrBillingIsNotConstructed = errors.New("Billing must be created via NewBilling")

// Billing is the contact and address snapshot captured with the order.
// Its email is the recipient of every notification about the order.
type Billing struct {
	name     string
	email    string
	phone    string
	address1 string
	address2 string
	city     string
	state    string
	country  string
	zipCode  string

	isConstructed bool
}

// BillingDetails carries raw billing input into NewBilling.
type BillingDetails struct {
	Name     string
	Email    string
	Phone    string
	Address1 string
	Address2 string
	City     string
	State    string
	Country  string
	ZipCode  string
}

func NewBilling(d BillingDetails) (Billing, error) {
	if err := errors.Join(
		requireText("billing.name", d.Name, 100),
		validateEmail(d.Email),
		requireText("billing.phone", d.Phone, 20),
		requireText("billing.address1", d.Address1, 255),
		limitText("billing.address2", d.Address2, 255),
		requireText("billing.city", d.City, 100),
		requireText("billing.state", d.State, 100),
		requireText("billing.country", d.Country, 100),
		requireText("billing.zip_code", d.ZipCode, 20),
	); err != nil {
		return Billing{}, err
	}

	return Billing{
		name:          d.Name,
		email:         d.Email,
		phone:         d.Phone,
		address1:      d.Address1,
		address2:      d.Address2,
		city:          d.City,
		state:         d.State,
		country:       d.Country,
		zipCode:       d.ZipCode,
		isConstructed: true,
	}, nil
}

func validateEmail(email string) error {
	if err := requireText("billing.email", email, 254); err != nil {
		return err
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errs.NewValueIsInvalidErrorWithCause("billing.email", errors.New("not a valid email address"))
	}
	return nil
}

func (b Billing) Name() string     { return b.name }
func (b Billing) Email() string    { return b.email }
func (b Billing) Phone() string    { return b.phone }
func (b Billing) Address1() string { return b.address1 }
func (b Billing) Address2() string { return b.address2 }
func (b Billing) City() string     { return b.city }
func (b Billing) State() string    { return b.state }
func (b Billing) Country() string  { return b.country }
func (b Billing) ZipCode() string  { return b.zipCode }

// ShippingAddress renders the address lines on one line for messages.
func (b Billing) ShippingAddress() string {
	parts := []string{b.address1}
	if b.address2 != "" {
		parts = append(parts, b.address2)
	}
	parts = append(parts, b.city, b.state+" "+b.zipCode, b.country)
	return strings.Join(parts, ", ")
}

// Details returns the billing fields in their input form.
func (b Billing) Details() BillingDetails {
	return BillingDetails{
		Name:     b.name,
		Email:    b.email,
		Phone:    b.phone,
		Address1: b.address1,
		Address2: b.address2,
		City:     b.city,
		State:    b.state,
		Country:  b.country,
		ZipCode:  b.zipCode,
	}
}

func (b Billing) Validate() error {
	if !b.isConstructed {
		return ErrBillingIsNotConstructed
	}
	return nil
}
