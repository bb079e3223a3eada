// Package cart implements the cart state machine: a pure transition
// function over immutable cart snapshots. It performs no I/O, keeps no
// hidden state, and leaves event ordering to the caller.
package cart

import (
	pkgerrors "github.com/angelmondragon/cartflow/pkg/errors"
)

// Transition applies one event to the cart and returns the next snapshot.
// The input state is never mutated and every transition is atomic: on
// error the returned state is the input, untouched. Events of unknown
// kinds pass through unchanged and never fail.
func Transition(state State, event Event) (State, error) {
	switch ev := event.(type) {
	case AddToCart:
		return applyAdd(state, ev)
	case RemoveFromCart:
		return applyRemove(state, ev)
	case PlaceOrder:
		return NewState(), nil
	case ProductDeleted:
		return applyProductDeleted(state, ev)
	default:
		return state, nil
	}
}

func applyAdd(state State, ev AddToCart) (State, error) {
	if err := ev.validate(); err != nil {
		return state, err
	}

	product := ev.Product
	next := state.Clone()

	if line, ok := next.Items[product.ID]; ok {
		line.Quantity++
		line.LineTotal = line.LineTotal.Add(product.Price)
		next.Items[product.ID] = line
	} else {
		next.Items[product.ID] = LineItem{
			Quantity:  1,
			UnitPrice: product.Price,
			Title:     product.Title,
			LineTotal: product.Price,
		}
	}

	next.TotalAmount = next.TotalAmount.Add(product.Price)
	return next, nil
}

func applyRemove(state State, ev RemoveFromCart) (State, error) {
	if err := ev.validate(); err != nil {
		return state, err
	}

	line, ok := state.Items[ev.ProductID]
	if !ok {
		return state, pkgerrors.New(pkgerrors.CodeNotFound, "product not in cart").
			WithDetails(map[string]string{"product_id": ev.ProductID})
	}

	next := state.Clone()
	if line.Quantity > 1 {
		line.Quantity--
		line.LineTotal = line.LineTotal.Sub(line.UnitPrice)
		next.Items[ev.ProductID] = line
	} else {
		delete(next.Items, ev.ProductID)
	}

	// One unit comes off at the recorded unit price, not the line total.
	next.TotalAmount = next.TotalAmount.Sub(line.UnitPrice)
	return next, nil
}

func applyProductDeleted(state State, ev ProductDeleted) (State, error) {
	if err := ev.validate(); err != nil {
		return state, err
	}

	line, ok := state.Items[ev.ProductID]
	if !ok {
		return state, nil
	}

	next := state.Clone()
	delete(next.Items, ev.ProductID)
	// The entire accumulated line value disappears with the product.
	next.TotalAmount = next.TotalAmount.Sub(line.LineTotal)
	return next, nil
}
