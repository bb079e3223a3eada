package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSumIsExact(t *testing.T) {
	// 0.1 + 0.2 is the classic float trap; decimal must land on 0.3 exactly.
	total := Sum(MustParse("0.1"), MustParse("0.2"))
	assert.True(t, Equal(total, MustParse("0.3")), "got %s", total)

	assert.True(t, Equal(Sum(), Zero()))
}

func TestSumManyIncrements(t *testing.T) {
	amounts := make([]decimal.Decimal, 0, 1000)
	for i := 0; i < 1000; i++ {
		amounts = append(amounts, MustParse("0.01"))
	}
	assert.True(t, Equal(Sum(amounts...), MustParse("10.00")))
}

func TestNonNegative(t *testing.T) {
	assert.True(t, NonNegative(Zero()))
	assert.True(t, NonNegative(MustParse("10.50")))
	assert.False(t, NonNegative(MustParse("-0.01")))
}

func TestEqualIgnoresExponent(t *testing.T) {
	assert.True(t, Equal(MustParse("10"), MustParse("10.00")))
	assert.False(t, Equal(MustParse("10"), MustParse("10.01")))
}

func TestMustParsePanicsOnGarbage(t *testing.T) {
	require.Panics(t, func() { MustParse("not-a-number") })
}
