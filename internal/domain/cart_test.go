package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemKey_AbsentPartsNormalizeToEmpty(t *testing.T) {
	assert.Equal(t, "1::::", ItemKey(1, "", ""))
	assert.Equal(t, "1::v2::M", ItemKey(1, "v2", SizeM))

	item := LineItem{ProductID: 1, VariantID: "v2", Size: SizeM}
	assert.Equal(t, ItemKey(1, "v2", SizeM), item.Key())
}

func TestAdd_MergesOnSameKey(t *testing.T) {
	cart := &Cart{}

	cart.Add(LineItem{ProductID: 1, Size: SizeM, Qty: 1, Price: 10, MaxQty: 3})
	cart.Add(LineItem{ProductID: 1, Size: SizeM, Qty: 1, Price: 10, MaxQty: 3})

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Qty)
	assert.Equal(t, 20.0, cart.Subtotal())
}

func TestAdd_DifferentSizesAreDifferentRows(t *testing.T) {
	cart := &Cart{}

	cart.Add(LineItem{ProductID: 1, Size: SizeM, Qty: 1})
	cart.Add(LineItem{ProductID: 1, Size: SizeL, Qty: 1})
	cart.Add(LineItem{ProductID: 1, VariantID: "red", Size: SizeM, Qty: 1})

	assert.Len(t, cart.Items, 3)
}

func TestAdd_ClampsToMaxQty(t *testing.T) {
	cart := &Cart{}

	// Inserting more than the known stock clamps immediately
	cart.Add(LineItem{ProductID: 1, Size: SizeM, Qty: 5, MaxQty: 3})
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Qty)

	// Merging past the max clamps too
	cart.Add(LineItem{ProductID: 1, Size: SizeM, Qty: 2, MaxQty: 3})
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Qty)
}

func TestAdd_AdoptsMaxQtyHintWithoutSumming(t *testing.T) {
	cart := &Cart{}

	cart.Add(LineItem{ProductID: 1, Size: SizeM, Qty: 1})
	cart.Add(LineItem{ProductID: 1, Size: SizeM, Qty: 1, MaxQty: 4})
	cart.Add(LineItem{ProductID: 1, Size: SizeM, Qty: 10, MaxQty: 9})

	require.Len(t, cart.Items, 1)
	// The hint describes availability: adopted once, never accumulated
	assert.Equal(t, 4, cart.Items[0].MaxQty)
	assert.Equal(t, 4, cart.Items[0].Qty)
}

func TestAdd_DefaultsQtyToOne(t *testing.T) {
	cart := &Cart{}
	cart.Add(LineItem{ProductID: 7})
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Qty)
}

func TestRemove_MatchesFullKey(t *testing.T) {
	cart := &Cart{}
	cart.Add(LineItem{ProductID: 1, Size: SizeM, Qty: 1})
	cart.Add(LineItem{ProductID: 1, Size: SizeL, Qty: 1})

	cart.Remove(1, "", SizeM)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, SizeL, cart.Items[0].Size)

	// Removing a missing key is a no-op
	cart.Remove(99, "", SizeXS)
	assert.Len(t, cart.Items, 1)
}

func TestSetQty_ZeroOrNegativeRemoves(t *testing.T) {
	cart := &Cart{}
	cart.Add(LineItem{ProductID: 1, Size: SizeM, Qty: 2, MaxQty: 3})

	cart.SetQty(1, "", SizeM, 0)
	assert.Empty(t, cart.Items)

	cart.Add(LineItem{ProductID: 1, Size: SizeM, Qty: 2})
	cart.SetQty(1, "", SizeM, -4)
	assert.Empty(t, cart.Items)
}

func TestSetQty_ClampsToMax(t *testing.T) {
	cart := &Cart{}
	cart.Add(LineItem{ProductID: 1, Size: SizeM, Qty: 1, MaxQty: 3})

	cart.SetQty(1, "", SizeM, 10)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Qty)
}

func TestSetQty_MissingKeyIsNoop(t *testing.T) {
	cart := &Cart{}
	cart.SetQty(1, "", SizeM, 2)
	assert.Empty(t, cart.Items)
}

func TestCountAndSubtotal(t *testing.T) {
	cart := &Cart{}
	cart.Add(LineItem{ProductID: 1, Size: SizeM, Qty: 2, Price: 10})
	cart.Add(LineItem{ProductID: 2, Size: SizeS, Qty: 1, Price: 5.5})

	assert.Equal(t, 3, cart.Count())
	assert.InDelta(t, 25.5, cart.Subtotal(), 1e-9)

	cart.Clear()
	assert.Equal(t, 0, cart.Count())
	assert.Zero(t, cart.Subtotal())
}

func TestGroupByShop(t *testing.T) {
	cart := &Cart{}
	cart.Add(LineItem{ProductID: 1, Qty: 2, Price: 10, ShopID: 5, ShopName: "Alpha"})
	cart.Add(LineItem{ProductID: 2, Qty: 1, Price: 30, ShopID: 9, ShopName: "Beta"})
	cart.Add(LineItem{ProductID: 3, Qty: 1, Price: 7, ShopID: 5, ShopName: "Alpha"})

	groups := cart.GroupByShop()
	require.Len(t, groups, 2)

	assert.Equal(t, int64(5), groups[0].ShopID)
	assert.Len(t, groups[0].Items, 2)
	assert.InDelta(t, 27.0, groups[0].Amount(), 1e-9)

	assert.Equal(t, int64(9), groups[1].ShopID)
	assert.InDelta(t, 30.0, groups[1].Amount(), 1e-9)

	assert.Equal(t, []int64{5, 9}, cart.ShopIDs())
}

func TestAdd_NeverDuplicatesKeys(t *testing.T) {
	cart := &Cart{}
	for i := 0; i < 20; i++ {
		cart.Add(LineItem{ProductID: int64(i % 4), Size: Sizes[i%3], Qty: 1})
	}

	seen := make(map[string]bool)
	for _, it := range cart.Items {
		require.False(t, seen[it.Key()], "duplicate key %s", it.Key())
		seen[it.Key()] = true
	}
}

func TestClone_DoesNotShareItems(t *testing.T) {
	cart := &Cart{UserID: 7}
	cart.Add(LineItem{ProductID: 1, Size: SizeM, Qty: 2, Price: 10})

	cp := cart.Clone()
	cp.Items[0].Qty = 99
	cp.Add(LineItem{ProductID: 2, Size: SizeL, Qty: 1})

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Qty)
	assert.Equal(t, int64(7), cp.UserID)
}
