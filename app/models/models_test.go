package models

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	paneer = MenuItem{ID: "m1", Name: "Paneer Tikka", PriceAC: 250, PriceNonAC: 220, Category: "Starters"}
	lassi  = MenuItem{ID: "m2", Name: "Lassi", PriceAC: 90, PriceNonAC: 80, Category: "Drinks"}
	legacy = MenuItem{ID: "m3", Name: "Old Thali", Price: 150}
)

func TestPriceFor(t *testing.T) {
	assert.Equal(t, 250.0, paneer.PriceFor(true))
	assert.Equal(t, 220.0, paneer.PriceFor(false))
	assert.Equal(t, 150.0, legacy.PriceFor(true), "legacy single price fills in")
	assert.Equal(t, 0.0, MenuItem{}.PriceFor(false))
}

func TestCategories(t *testing.T) {
	assert.True(t, ValidCategory("Main Course"))
	assert.False(t, ValidCategory("Beverages"))
	assert.False(t, ValidCategory(Uncategorized))
	assert.Equal(t, Uncategorized, legacy.GroupLabel())
	assert.Less(t, CategoryRank("Veg"), CategoryRank("Drinks"))
	assert.Less(t, CategoryRank("Beverages"), CategoryRank(Uncategorized))
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		want     bool
	}{
		{StatusPending, StatusServed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusPending, false},
		{StatusServed, StatusCancelled, false},
		{StatusCancelled, StatusServed, false},
		{StatusServed, StatusPending, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestCartAddIncrementsAndTotals(t *testing.T) {
	c := NewCart("c1", true, time.Now())

	c.Add(paneer)
	c.Add(lassi)
	c.Add(paneer)

	require.Len(t, c.Lines, 2, "re-adding an item increments its line")
	assert.Equal(t, 2, c.Lines[0].Quantity)
	assert.Equal(t, 250.0*2+90, c.Total)
}

func TestCartRoomSwitchKeepsCapturedPrices(t *testing.T) {
	c := NewCart("c1", true, time.Now())
	c.Add(paneer)

	c.SetRoom(false)
	c.Add(lassi)
	c.Add(paneer)

	assert.Equal(t, 250.0, c.Lines[0].Price, "existing line is not repriced")
	assert.Equal(t, 80.0, c.Lines[1].Price, "new line takes the non-AC price")
	assert.Equal(t, 250.0*2+80, c.Total)
}

func TestCartQuantityClampsAtOne(t *testing.T) {
	c := NewCart("c1", false, time.Now())
	c.Add(paneer)

	require.NoError(t, c.ChangeQuantity("m1", 3))
	assert.Equal(t, 4, c.Lines[0].Quantity)

	require.NoError(t, c.ChangeQuantity("m1", -10))
	assert.Equal(t, 1, c.Lines[0].Quantity)
	assert.Equal(t, 220.0, c.Total)

	assert.ErrorIs(t, c.ChangeQuantity("nope", 1), ErrLineNotFound)
}

func TestCartQuantitySaturatesOnHugeDelta(t *testing.T) {
	c := NewCart("c1", true, time.Now())
	c.Add(paneer)
	require.NoError(t, c.ChangeQuantity("m1", 5))

	require.NoError(t, c.ChangeQuantity("m1", math.MaxInt))
	assert.Equal(t, math.MaxInt, c.Lines[0].Quantity, "increment never wraps to a reset")

	c.Add(paneer)
	assert.Equal(t, math.MaxInt, c.Lines[0].Quantity)

	require.NoError(t, c.ChangeQuantity("m1", math.MinInt))
	assert.Equal(t, 1, c.Lines[0].Quantity)
	assert.Equal(t, 250.0, c.Total)
}

func TestCartNotesAndRemove(t *testing.T) {
	c := NewCart("c1", true, time.Now())
	c.Add(paneer)
	c.Add(lassi)

	require.NoError(t, c.SetNotes("m2", "  less sugar "))
	assert.Equal(t, "less sugar", c.Lines[1].Notes)

	require.NoError(t, c.Remove("m1"))
	require.Len(t, c.Lines, 1)
	assert.Equal(t, 90.0, c.Total)
	assert.ErrorIs(t, c.Remove("m1"), ErrLineNotFound)
	assert.ErrorIs(t, c.SetNotes("m1", "x"), ErrLineNotFound)
}

func TestCartValidateAndSnapshot(t *testing.T) {
	c := NewCart("c1", true, time.Now())

	errs := c.Validate("  ")
	assert.Equal(t, "Please enter table number", errs["tableNumber"])
	assert.Equal(t, "Add items to order", errs["items"])

	c.Add(paneer)
	assert.Empty(t, c.Validate("4"))

	now := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
	o := c.ToOrder(" 4 ", now)
	assert.Equal(t, "4", o.TableNumber)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, 250.0, o.Total)
	assert.Equal(t, now, o.CreatedAt)
	assert.Equal(t, "ac", o.Room())

	c.Lines[0].Quantity = 9
	assert.Equal(t, 1, o.Items[0].Quantity, "order does not alias cart lines")
}

func TestValidationErrorMessage(t *testing.T) {
	assert.Nil(t, Invalid(nil))

	err := Invalid(map[string]string{"name": "required", "items": "empty"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "validation failed: items: empty; name: required", err.Error())
}
