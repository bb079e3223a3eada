// Package orders keeps the append-only order log. Orders are immutable
// snapshots of the cart taken at placement; the log never edits or
// removes an entry.
package orders

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/cartflow/internal/cart"
	pkgerrors "github.com/angelmondragon/cartflow/pkg/errors"
)

// Item is one frozen cart line inside an order.
type Item struct {
	ProductID string
	Title     string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// Order is one placed order.
type Order struct {
	ID          uuid.UUID
	Items       []Item
	TotalAmount decimal.Decimal
	PlacedAt    time.Time
}

// LogState is one immutable order log snapshot.
type LogState struct {
	Orders []Order
}

// NewLogState returns the empty log.
func NewLogState() LogState {
	return LogState{}
}

// Clone returns a deep copy of the snapshot.
func (s LogState) Clone() LogState {
	if len(s.Orders) == 0 {
		return LogState{}
	}
	orders := make([]Order, len(s.Orders))
	for i, order := range s.Orders {
		items := make([]Item, len(order.Items))
		copy(items, order.Items)
		order.Items = items
		orders[i] = order
	}
	return LogState{Orders: orders}
}

// Count returns the number of placed orders.
func (s LogState) Count() int {
	return len(s.Orders)
}

// Place appends an order built from the given cart snapshot. The id and
// clock are injected so the log stays deterministic; an empty cart is
// rejected before anything is appended.
func Place(state LogState, cartState cart.State, id uuid.UUID, placedAt time.Time) (LogState, error) {
	if id == uuid.Nil {
		return state, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if cartState.IsEmpty() {
		return state, pkgerrors.New(pkgerrors.CodeValidation, "cannot place an order from an empty cart")
	}

	items := make([]Item, 0, len(cartState.Items))
	for productID, line := range cartState.Items {
		items = append(items, Item{
			ProductID: productID,
			Title:     line.Title,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
		})
	}
	// Map iteration order is random; keep order items stable by id.
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })

	next := state.Clone()
	next.Orders = append(next.Orders, Order{
		ID:          id,
		Items:       items,
		TotalAmount: cartState.TotalAmount,
		PlacedAt:    placedAt,
	})
	return next, nil
}
