package products

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	pkgerrors "github.com/angelmondragon/cartflow/pkg/errors"
)

// Event is one discrete catalog action. The unexported marker keeps the
// interface structurally distinct from the cart's event family so type
// switches over mixed event streams never capture cart events here.
type Event interface {
	Kind() string
	isCatalogEvent()
}

// CreateProduct inserts a new catalog entry; the id must be unused.
type CreateProduct struct {
	Product Product
}

func (CreateProduct) Kind() string { return "create_product" }

func (CreateProduct) isCatalogEvent() {}

func (e CreateProduct) validate() error {
	if err := validate.Struct(e.Product); err != nil {
		return formatValidationErrors(err)
	}
	if e.Product.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "product price cannot be negative").
			WithDetails(map[string]string{"price": e.Product.Price.String()})
	}
	return nil
}

// UpdateProduct rewrites the descriptive fields of an existing entry.
// Price is deliberately absent: it is set once at creation.
type UpdateProduct struct {
	ProductID   string `validate:"required"`
	Title       string `validate:"required"`
	ImageURL    string `validate:"omitempty,url"`
	Description string
}

func (UpdateProduct) Kind() string { return "update_product" }

func (UpdateProduct) isCatalogEvent() {}

func (e UpdateProduct) validate() error {
	if err := validate.Struct(e); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

// DeleteProduct removes an entry. The dispatcher cascades the deletion
// into the cart so no stale line survives the product.
type DeleteProduct struct {
	ProductID string `validate:"required"`
}

func (DeleteProduct) Kind() string { return "delete_product" }

func (DeleteProduct) isCatalogEvent() {}

func (e DeleteProduct) validate() error {
	if err := validate.Struct(e); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

// ReplaceAll swaps in a whole catalog, the load path for an external
// product feed. Duplicate ids are rejected rather than last-write-wins.
type ReplaceAll struct {
	Products []Product
}

func (ReplaceAll) Kind() string { return "replace_all_products" }

func (ReplaceAll) isCatalogEvent() {}

func (e ReplaceAll) validate() error {
	seen := make(map[string]struct{}, len(e.Products))
	for _, product := range e.Products {
		if err := validate.Struct(product); err != nil {
			return formatValidationErrors(err)
		}
		if product.Price.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "product price cannot be negative").
				WithDetails(map[string]string{"product_id": product.ID})
		}
		if _, dup := seen[product.ID]; dup {
			return pkgerrors.New(pkgerrors.CodeValidation, "duplicate product id in feed").
				WithDetails(map[string]string{"product_id": product.ID})
		}
		seen[product.ID] = struct{}{}
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
	case "url":
		return "must be a valid url"
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}
