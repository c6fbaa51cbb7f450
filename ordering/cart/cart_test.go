package cart_test

import (
	"encoding/json"
	"testing"

	"overcooked-storefront/ordering/cart"
	"overcooked-storefront/ordering/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	paneer  = domain.MenuItem{ID: "paneer", Name: "Paneer Tikka", Price: 120, IsVegetarian: true}
	biryani = domain.MenuItem{ID: "biryani", Name: "Chicken Biryani", Price: 180}
	lassi   = domain.MenuItem{ID: "lassi", Name: "Lassi", Price: 40, IsVegetarian: true}
)

func mustAdd(t *testing.T, c cart.Cart, item domain.MenuItem, rid string) cart.Cart {
	t.Helper()
	next, err := cart.Add(c, item, rid)
	require.NoError(t, err)
	return next
}

func TestAdd(t *testing.T) {
	t.Run("first item locks the cart", func(t *testing.T) {
		c := mustAdd(t, cart.Empty(), paneer, "r1")

		rid, locked := c.RestaurantID()
		assert.True(t, locked)
		assert.Equal(t, "r1", rid)
		assert.Equal(t, []domain.CartLine{domain.NewCartLine(paneer)}, c.Lines())
	})

	t.Run("same item twice merges into one line", func(t *testing.T) {
		c := mustAdd(t, cart.Empty(), paneer, "r1")
		c = mustAdd(t, c, paneer, "r1")

		require.Equal(t, 1, c.Len())
		assert.Equal(t, 2, c.Quantity("paneer"))
	})

	t.Run("other restaurant is rejected and cart unchanged", func(t *testing.T) {
		c := mustAdd(t, cart.Empty(), paneer, "r1")

		next, err := cart.Add(c, biryani, "r2")

		assert.ErrorIs(t, err, cart.ErrRestaurantLocked)
		assert.Equal(t, c, next)
		assert.False(t, c.CanAddFrom("r2"))
		assert.True(t, c.CanAddFrom("r1"))
	})

	t.Run("invalid input", func(t *testing.T) {
		tests := []struct {
			name string
			item domain.MenuItem
			rid  string
		}{
			{name: "missing item id", item: domain.MenuItem{Name: "x", Price: 1}, rid: "r1"},
			{name: "missing restaurant", item: paneer, rid: ""},
			{name: "negative price", item: domain.MenuItem{ID: "x", Price: -1}, rid: "r1"},
		}
		for _, testCase := range tests {
			t.Run(testCase.name, func(t *testing.T) {
				_, err := cart.Add(cart.Empty(), testCase.item, testCase.rid)
				assert.ErrorIs(t, err, cart.ErrInvalidItem)
			})
		}
	})

	t.Run("input cart is not mutated", func(t *testing.T) {
		before := mustAdd(t, cart.Empty(), paneer, "r1")
		_ = mustAdd(t, before, paneer, "r1")

		assert.Equal(t, 1, before.Quantity("paneer"))
	})
}

func TestInsertionOrder(t *testing.T) {
	c := mustAdd(t, cart.Empty(), paneer, "r1")
	c = mustAdd(t, c, lassi, "r1")
	c = mustAdd(t, c, paneer, "r1")
	c, err := cart.RemoveOne(c, "paneer")
	require.NoError(t, err)
	c = mustAdd(t, c, paneer, "r1")

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "paneer", lines[0].ItemID)
	assert.Equal(t, "lassi", lines[1].ItemID)
}

func TestRemoveOne(t *testing.T) {
	t.Run("decrements quantity", func(t *testing.T) {
		c := mustAdd(t, cart.Empty(), paneer, "r1")
		c = mustAdd(t, c, paneer, "r1")

		c, err := cart.RemoveOne(c, "paneer")

		require.NoError(t, err)
		assert.Equal(t, 1, c.Quantity("paneer"))
	})

	t.Run("last unit removes line and lock", func(t *testing.T) {
		c := mustAdd(t, cart.Empty(), paneer, "r1")

		c, err := cart.RemoveOne(c, "paneer")

		require.NoError(t, err)
		assert.True(t, c.IsEmpty())
		_, locked := c.RestaurantID()
		assert.False(t, locked)
		assert.True(t, c.CanAddFrom("r2"))
	})

	t.Run("lock kept while other lines remain", func(t *testing.T) {
		c := mustAdd(t, cart.Empty(), paneer, "r1")
		c = mustAdd(t, c, lassi, "r1")

		c, err := cart.RemoveOne(c, "paneer")

		require.NoError(t, err)
		rid, locked := c.RestaurantID()
		assert.True(t, locked)
		assert.Equal(t, "r1", rid)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("unknown item is rejected", func(t *testing.T) {
		c := mustAdd(t, cart.Empty(), paneer, "r1")

		next, err := cart.RemoveOne(c, "naan")

		assert.ErrorIs(t, err, cart.ErrItemNotInCart)
		assert.Equal(t, c, next)
	})
}

func TestRestoreAndValidate(t *testing.T) {
	_, err := cart.Restore("", []domain.CartLine{domain.NewCartLine(paneer)})
	assert.ErrorIs(t, err, cart.ErrBrokenLock)

	_, err = cart.Restore("r1", nil)
	assert.ErrorIs(t, err, cart.ErrBrokenLock)

	line := domain.NewCartLine(paneer)
	_, err = cart.Restore("r1", []domain.CartLine{line, line})
	assert.ErrorIs(t, err, cart.ErrInvalidItem)

	c, err := cart.Restore("r1", []domain.CartLine{line})
	require.NoError(t, err)
	assert.NoError(t, c.Validate())

	empty, err := cart.Restore("", nil)
	require.NoError(t, err)
	assert.Equal(t, cart.Empty(), empty)
}

func TestMarshalJSON(t *testing.T) {
	raw, err := json.Marshal(cart.Empty())
	require.NoError(t, err)
	assert.JSONEq(t, `{"lines":[]}`, string(raw))

	c := mustAdd(t, cart.Empty(), lassi, "r1")
	raw, err = json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"restaurant_id":"r1","lines":[{"item_id":"lassi","name":"Lassi","price":40,"is_vegetarian":true,"quantity":1}]}`, string(raw))
}
