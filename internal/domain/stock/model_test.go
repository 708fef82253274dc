package stock

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/Spok95/kit-inventory/internal/domain/errs"
)

func TestClamp(t *testing.T) {
	cases := []struct {
		name          string
		current       int
		delta         int
		next, deficit int
	}{
		{"issue within stock", 100, 80, 20, 0},
		{"issue exactly all", 30, 30, 0, 0},
		{"issue beyond stock", 10, 50, 0, 40},
		{"return", 20, -80, 100, 0},
		{"no change", 7, 0, 7, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, deficit := Clamp(tc.current, tc.delta)
			assert.Equal(t, tc.next, next)
			assert.Equal(t, tc.deficit, deficit)
		})
	}
}

func TestClampNeverNegative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		current := rapid.IntRange(0, 1_000_000).Draw(t, "current")
		delta := rapid.IntRange(-1_000_000, 1_000_000).Draw(t, "delta")

		next, deficit := Clamp(current, delta)
		if next < 0 {
			t.Fatalf("negative stock %d", next)
		}
		if want := max(0, current-delta); next != want {
			t.Fatalf("next = %d, want %d", next, want)
		}
		if next-deficit != current-delta {
			t.Fatalf("deficit %d does not account for the shortfall", deficit)
		}
	})
}

func TestUpdateValidate(t *testing.T) {
	neg, pos := -1, 5

	err := Update{}.Validate()
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "no valid fields to update")

	err = Update{Quantity: &neg}.Validate()
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "quantity cannot be negative")

	err = Update{Quantity: &pos, DangerLevel: &neg}.Validate()
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "danger level cannot be negative")

	require.NoError(t, Update{DangerLevel: &pos}.Validate())

	huge := MaxQuantity + 1
	err = Update{Quantity: &huge}.Validate()
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
	assert.Equal(t, "quantity cannot exceed 2147483647", err.Error())
}

func TestItemValidate(t *testing.T) {
	require.NoError(t, Item{Name: "lanyard", Quantity: MaxQuantity}.Validate())

	cases := []struct {
		item Item
		msg  string
	}{
		{Item{Name: " "}, "item name is required"},
		{Item{Name: strings.Repeat("n", 101)}, "item name must be at most 100 characters"},
		{Item{Name: "cap", Quantity: -1}, "quantity cannot be negative"},
		{Item{Name: "cap", DangerLevel: -1}, "danger level cannot be negative"},
		{Item{Name: "cap", DangerLevel: MaxQuantity + 1}, "danger level cannot exceed 2147483647"},
	}
	for _, tc := range cases {
		err := tc.item.Validate()
		require.ErrorIs(t, err, errs.ErrInvalidArgument, tc.msg)
		assert.Equal(t, tc.msg, err.Error())
	}
}

func TestUpdateApplyLeavesMissingFields(t *testing.T) {
	q := 12
	it := Item{Name: "pen", Quantity: 40, DangerLevel: 30}
	Update{Quantity: &q}.Apply(&it)
	assert.Equal(t, Item{Name: "pen", Quantity: 12, DangerLevel: 30}, it)
	assert.True(t, it.Low())
}

func TestDefaults(t *testing.T) {
	items := Defaults(DefaultQuantity, DefaultDangerLevel)
	require.Len(t, items, 10)
	for i, it := range items {
		assert.Equal(t, DefaultNames[i], it.Name)
		assert.Equal(t, 100, it.Quantity)
		assert.Equal(t, 30, it.DangerLevel)
	}
}

func TestLowStockOf(t *testing.T) {
	got := LowStockOf([]Item{{ID: 3, Name: "bag", Quantity: 20, DangerLevel: 30}})
	assert.Equal(t, []LowStock{{Type: "item", Name: "bag", Quantity: 20, DangerLevel: 30}}, got)
	assert.Empty(t, LowStockOf(nil))
}
