package orders

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/cartflow/internal/cart"
	pkgerrors "github.com/angelmondragon/cartflow/pkg/errors"
	"github.com/angelmondragon/cartflow/pkg/money"
)

func fullCart(t *testing.T) cart.State {
	t.Helper()
	state := cart.NewState()
	var err error
	state, err = cart.Transition(state, cart.AddToCart{Product: cart.Product{ID: "p2", Title: "Lamp", Price: money.MustParse("15.00")}})
	require.NoError(t, err)
	state, err = cart.Transition(state, cart.AddToCart{Product: cart.Product{ID: "p1", Title: "Desk", Price: money.MustParse("120.00")}})
	require.NoError(t, err)
	state, err = cart.Transition(state, cart.AddToCart{Product: cart.Product{ID: "p1", Title: "Desk", Price: money.MustParse("120.00")}})
	require.NoError(t, err)
	return state
}

func TestPlaceSnapshotsCart(t *testing.T) {
	cartState := fullCart(t)
	id := uuid.New()
	placedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	log, err := Place(NewLogState(), cartState, id, placedAt)
	require.NoError(t, err)
	require.Equal(t, 1, log.Count())

	order := log.Orders[0]
	assert.Equal(t, id, order.ID)
	assert.Equal(t, placedAt, order.PlacedAt)
	assert.True(t, money.Equal(order.TotalAmount, money.MustParse("255.00")))

	// Items come out sorted by product id regardless of map order.
	require.Len(t, order.Items, 2)
	assert.Equal(t, "p1", order.Items[0].ProductID)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.True(t, money.Equal(order.Items[0].LineTotal, money.MustParse("240.00")))
	assert.Equal(t, "p2", order.Items[1].ProductID)
}

func TestPlaceAppendsWithoutMutatingInput(t *testing.T) {
	cartState := fullCart(t)
	first, err := Place(NewLogState(), cartState, uuid.New(), time.Now())
	require.NoError(t, err)

	second, err := Place(first, cartState, uuid.New(), time.Now())
	require.NoError(t, err)

	assert.Equal(t, 1, first.Count())
	assert.Equal(t, 2, second.Count())
}

func TestPlaceRejectsEmptyCart(t *testing.T) {
	log, err := Place(NewLogState(), cart.NewState(), uuid.New(), time.Now())
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
	assert.Equal(t, 0, log.Count())
}

func TestPlaceRejectsNilID(t *testing.T) {
	_, err := Place(NewLogState(), fullCart(t), uuid.Nil, time.Now())
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestCloneIsDeep(t *testing.T) {
	log, err := Place(NewLogState(), fullCart(t), uuid.New(), time.Now())
	require.NoError(t, err)

	clone := log.Clone()
	clone.Orders[0].Items[0].Quantity = 99

	assert.Equal(t, 2, log.Orders[0].Items[0].Quantity)
}
