package cart

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/cartflow/pkg/money"
)

// LineItem is the accumulated position of one product in the cart.
//
// LineTotal is an additive accumulator of the prices paid at each add; it
// is never recomputed as Quantity times UnitPrice. When a product's price
// changes between adds the two drift apart on purpose: the line keeps the
// amounts actually charged, and UnitPrice stays the price at first add.
type LineItem struct {
	Quantity  int
	UnitPrice decimal.Decimal
	Title     string
	LineTotal decimal.Decimal
}

// State is one immutable cart snapshot. TotalAmount equals the sum of all
// line totals after every transition.
type State struct {
	Items       map[string]LineItem
	TotalAmount decimal.Decimal
}

// NewState returns the empty cart.
func NewState() State {
	return State{Items: map[string]LineItem{}, TotalAmount: decimal.Zero}
}

// Clone returns a deep copy. Transition works on clones so callers can
// hold old snapshots indefinitely.
func (s State) Clone() State {
	items := make(map[string]LineItem, len(s.Items))
	for id, item := range s.Items {
		items[id] = item
	}
	return State{Items: items, TotalAmount: s.TotalAmount}
}

// Lines returns the number of distinct line items.
func (s State) Lines() int {
	return len(s.Items)
}

// IsEmpty reports whether the cart holds no line items.
func (s State) IsEmpty() bool {
	return len(s.Items) == 0
}

// Equal compares two snapshots by value with exact decimal comparison.
func (s State) Equal(other State) bool {
	if !money.Equal(s.TotalAmount, other.TotalAmount) {
		return false
	}
	if len(s.Items) != len(other.Items) {
		return false
	}
	for id, item := range s.Items {
		otherItem, ok := other.Items[id]
		if !ok {
			return false
		}
		if item.Quantity != otherItem.Quantity ||
			item.Title != otherItem.Title ||
			!money.Equal(item.UnitPrice, otherItem.UnitPrice) ||
			!money.Equal(item.LineTotal, otherItem.LineTotal) {
			return false
		}
	}
	return true
}
