// Package products implements the product catalog state machine. Like the
// cart machine it is purely functional: every transition returns a fresh
// snapshot and leaves the input untouched.
package products

import (
	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/cartflow/pkg/errors"
)

// Product is one catalog entry. Price is exact decimal and fixed at
// creation; the edit flow only touches the descriptive fields.
type Product struct {
	ID          string          `json:"id" validate:"required"`
	OwnerID     string          `json:"owner_id" validate:"required"`
	Title       string          `json:"title" validate:"required"`
	ImageURL    string          `json:"image_url" validate:"omitempty,url"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// CatalogState is one immutable catalog snapshot.
type CatalogState struct {
	Products map[string]Product
}

// NewCatalogState returns the empty catalog.
func NewCatalogState() CatalogState {
	return CatalogState{Products: map[string]Product{}}
}

// Clone returns a deep copy of the snapshot.
func (s CatalogState) Clone() CatalogState {
	products := make(map[string]Product, len(s.Products))
	for id, product := range s.Products {
		products[id] = product
	}
	return CatalogState{Products: products}
}

// Get returns the product for the given id, if present.
func (s CatalogState) Get(id string) (Product, bool) {
	product, ok := s.Products[id]
	return product, ok
}

// Transition applies one catalog event and returns the next snapshot.
// Unknown event kinds pass through unchanged.
func Transition(state CatalogState, event Event) (CatalogState, error) {
	switch ev := event.(type) {
	case CreateProduct:
		return applyCreate(state, ev)
	case UpdateProduct:
		return applyUpdate(state, ev)
	case DeleteProduct:
		return applyDelete(state, ev)
	case ReplaceAll:
		return applyReplaceAll(state, ev)
	default:
		return state, nil
	}
}

func applyCreate(state CatalogState, ev CreateProduct) (CatalogState, error) {
	if err := ev.validate(); err != nil {
		return state, err
	}
	if _, exists := state.Products[ev.Product.ID]; exists {
		return state, pkgerrors.New(pkgerrors.CodeConflict, "product id already in catalog").
			WithDetails(map[string]string{"product_id": ev.Product.ID})
	}

	next := state.Clone()
	next.Products[ev.Product.ID] = ev.Product
	return next, nil
}

func applyUpdate(state CatalogState, ev UpdateProduct) (CatalogState, error) {
	if err := ev.validate(); err != nil {
		return state, err
	}
	product, ok := state.Products[ev.ProductID]
	if !ok {
		return state, pkgerrors.New(pkgerrors.CodeNotFound, "product not in catalog").
			WithDetails(map[string]string{"product_id": ev.ProductID})
	}

	product.Title = ev.Title
	product.ImageURL = ev.ImageURL
	product.Description = ev.Description

	next := state.Clone()
	next.Products[ev.ProductID] = product
	return next, nil
}

func applyDelete(state CatalogState, ev DeleteProduct) (CatalogState, error) {
	if err := ev.validate(); err != nil {
		return state, err
	}
	if _, ok := state.Products[ev.ProductID]; !ok {
		return state, pkgerrors.New(pkgerrors.CodeNotFound, "product not in catalog").
			WithDetails(map[string]string{"product_id": ev.ProductID})
	}

	next := state.Clone()
	delete(next.Products, ev.ProductID)
	return next, nil
}

func applyReplaceAll(state CatalogState, ev ReplaceAll) (CatalogState, error) {
	if err := ev.validate(); err != nil {
		return state, err
	}

	next := NewCatalogState()
	for _, product := range ev.Products {
		next.Products[product.ID] = product
	}
	return next, nil
}
