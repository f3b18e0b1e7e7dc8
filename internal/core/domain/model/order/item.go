package order

import (
	"encoding/json"
	"errors"
	"fmt"

	"optistore/internal/core/domain/model/kernel"
	"optistore/internal/pkg/errs"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem")

const maxProductNameLength = 255

// Item is one order line. Product name and unit price are copied from the catalog
// when the order is placed so later catalog edits do not change past orders.
type Item struct {
	id             kernel.UUID
	productID      kernel.UUID
	productName    string
	quantity       int
	price          kernel.Money
	lensOption     json.RawMessage
	prescriptionID *kernel.UUID
	isConstructed  bool
}

// NewItem validates a new order line. lensOption is an opaque JSON document and
// may be empty; prescriptionID is optional.
func NewItem(
	productID kernel.UUID,
	productName string,
	quantity int,
	price kernel.Money,
	lensOption json.RawMessage,
	prescriptionID *kernel.UUID,
) (Item, error) {
	return RestoreItem(kernel.NewUUID(), productID, productName, quantity, price, lensOption, prescriptionID)
}

// RestoreItem rebuilds an order line loaded from storage.
func RestoreItem(
	id kernel.UUID,
	productID kernel.UUID,
	productName string,
	quantity int,
	price kernel.Money,
	lensOption json.RawMessage,
	prescriptionID *kernel.UUID,
) (Item, error) {
	var prescriptionErr error
	if prescriptionID != nil {
		prescriptionErr = prescriptionID.Validate()
	}

	if err := errors.Join(
		id.Validate(),
		productID.Validate(),
		requireText("product_name", productName, maxProductNameLength),
		validateQuantity(quantity),
		price.Validate(),
		validateLensOption(lensOption),
		prescriptionErr,
	); err != nil {
		return Item{}, err
	}

	return Item{
		id:             id,
		productID:      productID,
		productName:    productName,
		quantity:       quantity,
		price:          price,
		lensOption:     lensOption,
		prescriptionID: prescriptionID,
		isConstructed:  true,
	}, nil
}

func validateQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is less than 1", quantity))
	}
	return nil
}

func validateLensOption(raw json.RawMessage) error {
	if len(raw) == 0 {
		return nil
	}
	if !json.Valid(raw) {
		return errs.NewValueIsInvalidErrorWithCause("lens_option", errors.New("not a JSON document"))
	}
	return nil
}

func (i Item) ID() kernel.UUID              { return i.id }
func (i Item) ProductID() kernel.UUID       { return i.productID }
func (i Item) ProductName() string          { return i.productName }
func (i Item) Quantity() int                { return i.quantity }
func (i Item) Price() kernel.Money          { return i.price }
func (i Item) LensOption() json.RawMessage  { return i.lensOption }
func (i Item) PrescriptionID() *kernel.UUID { return i.prescriptionID }

func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}
