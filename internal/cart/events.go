package cart

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/cartflow/pkg/errors"
)

// Event is one discrete cart action. Implementations are plain payload
// records; Transition silently ignores kinds it does not recognize, so
// the dispatcher may fan out foreign events without filtering first.
// The unexported marker keeps this interface structurally distinct from
// other Kind()-shaped event families, so type switches over mixed event
// streams route cart events here and nowhere else.
type Event interface {
	Kind() string
	isCartEvent()
}

// Product carries the catalog fields the cart needs at add time.
type Product struct {
	ID    string `validate:"required"`
	Title string `validate:"required"`
	Price decimal.Decimal
}

// AddToCart inserts a line with quantity 1 or bumps an existing line by
// one unit at the product's current price.
type AddToCart struct {
	Product Product
}

func (AddToCart) Kind() string { return "add_to_cart" }

func (AddToCart) isCartEvent() {}

func (e AddToCart) validate() error {
	if err := validate.Struct(e.Product); err != nil {
		return formatValidationErrors(err)
	}
	if e.Product.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "product price cannot be negative").
			WithDetails(map[string]string{"price": e.Product.Price.String()})
	}
	return nil
}

// RemoveFromCart takes one unit off an existing line. The id must be in
// the cart: removal is user initiated and a miss means the UI and the
// store disagree, which is surfaced as not-found rather than ignored.
type RemoveFromCart struct {
	ProductID string `validate:"required"`
}

func (RemoveFromCart) Kind() string { return "remove_from_cart" }

func (RemoveFromCart) isCartEvent() {}

func (e RemoveFromCart) validate() error {
	if err := validate.Struct(e); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

// PlaceOrder resets the cart unconditionally. Building the order record
// from the pre-reset snapshot is the dispatcher's job.
type PlaceOrder struct{}

func (PlaceOrder) Kind() string { return "place_order" }

func (PlaceOrder) isCartEvent() {}

// ProductDeleted drops the whole line for a product removed from the
// catalog. Unlike RemoveFromCart an absent id is a no-op: deletion is an
// external event that may race with cart contents.
type ProductDeleted struct {
	ProductID string `validate:"required"`
}

func (ProductDeleted) Kind() string { return "product_deleted" }

func (ProductDeleted) isCartEvent() {}

func (e ProductDeleted) validate() error {
	if err := validate.Struct(e); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.ToLower(f.Name)
	})
	return v
}

func formatValidationErrors(err error) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = validationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "malformed event payload").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "malformed event payload")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	}
	return "is invalid"
}
