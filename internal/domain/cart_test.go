package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(id, price string) Product {
	return Product{
		ID:        id,
		Name:      "Product " + id,
		Category:  "Test",
		UnitPrice: decimal.RequireFromString(price),
	}
}

func TestCartAddValidatesQuantity(t *testing.T) {
	cart := NewCart()

	err := cart.Add(testProduct("A", "10.00"), 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	err = cart.Add(testProduct("A", "10.00"), -3)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.True(t, cart.IsEmpty())
}

func TestCartMergeOnAdd(t *testing.T) {
	merged := NewCart()
	require.NoError(t, merged.Add(testProduct("A", "10.00"), 2))
	require.NoError(t, merged.Add(testProduct("B", "5.00"), 1))
	require.NoError(t, merged.Add(testProduct("A", "10.00"), 3))

	single := NewCart()
	require.NoError(t, single.Add(testProduct("A", "10.00"), 5))
	require.NoError(t, single.Add(testProduct("B", "5.00"), 1))

	// adding in two steps equals a single add of the summed quantity, and
	// the merged line keeps its original position
	assert.Equal(t, 2, merged.Len())
	got := merged.Lines()
	assert.Equal(t, "A", got[0].ProductID)
	assert.Equal(t, 5, got[0].Quantity)
	assert.Equal(t, "B", got[1].ProductID)
	assert.True(t, merged.Subtotal().Equal(single.Subtotal()))
}

func TestCartInsertionOrderPreserved(t *testing.T) {
	cart := NewCart()
	for _, id := range []string{"C", "A", "B"} {
		require.NoError(t, cart.Add(testProduct(id, "1.00"), 1))
	}

	lines := cart.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, "C", lines[0].ProductID)
	assert.Equal(t, "A", lines[1].ProductID)
	assert.Equal(t, "B", lines[2].ProductID)
}

func TestCartRemoveIsIdempotent(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.Add(testProduct("A", "10.00"), 1))

	cart.Remove("missing")
	assert.Equal(t, 1, cart.Len())
	cart.Remove("A")
	assert.True(t, cart.IsEmpty())
	cart.Remove("A")
	assert.True(t, cart.IsEmpty())
}

func TestCartSetQuantity(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.Add(testProduct("A", "10.00"), 1))
	require.NoError(t, cart.Add(testProduct("B", "5.00"), 1))

	cart.SetQuantity("A", 7)
	lines := cart.Lines()
	assert.Equal(t, 7, lines[0].Quantity)
	assert.Equal(t, "A", lines[0].ProductID, "position unchanged after overwrite")

	// non-positive quantity means delete
	cart.SetQuantity("A", 0)
	assert.Equal(t, 1, cart.Len())
	cart.SetQuantity("B", -1)
	assert.True(t, cart.IsEmpty())

	// absent id is ignored
	cart.SetQuantity("missing", 4)
	assert.True(t, cart.IsEmpty())
}

func TestCartClear(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.Add(testProduct("A", "10.00"), 2))
	cart.Clear()
	assert.True(t, cart.IsEmpty())
	assert.True(t, cart.Subtotal().Equal(decimal.Zero))
}

func TestLineTotalRounding(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.Add(testProduct("A", "0.335"), 1))
	lines := cart.Lines()
	assert.Equal(t, "0.34", lines[0].LineTotal.StringFixed(2))
}

func TestSubtotalIsSumOfLineTotals(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.Add(testProduct("A", "12999.00"), 2))
	require.NoError(t, cart.Add(testProduct("B", "99.00"), 3))
	require.NoError(t, cart.Add(testProduct("C", "249.00"), 1))

	want := decimal.Zero
	for _, l := range cart.Lines() {
		want = want.Add(l.LineTotal)
	}
	assert.Equal(t, want.StringFixed(2), cart.Subtotal().StringFixed(2))
	assert.Equal(t, "26544.00", cart.Subtotal().StringFixed(2))
}
