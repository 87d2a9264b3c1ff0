package shop

import (
	"regexp"
	"testing"
	"time"

	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderID(t *testing.T) {
	at := time.Date(2024, 1, 1, 12, 0, 30, 0, time.UTC)

	t.Run("format", func(t *testing.T) {
		assert.Equal(t, "ST01011200007", OrderID(7, at))
		assert.Regexp(t, regexp.MustCompile(`^ST\d{8}\d{3}$`), OrderID(123456789, at))
	})

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, OrderID(42, at), OrderID(42, at))
	})

	t.Run("minute changes the id", func(t *testing.T) {
		assert.NotEqual(t, OrderID(42, at), OrderID(42, at.Add(time.Minute)))
	})

	t.Run("seconds do not change the id", func(t *testing.T) {
		assert.Equal(t, OrderID(42, at), OrderID(42, at.Add(10*time.Second)))
	})

	t.Run("user ids collide mod 1000", func(t *testing.T) {
		// Accepted weakness: the id is a payment tag, not a unique key.
		assert.Equal(t, OrderID(7, at), OrderID(1007, at))
	})

	t.Run("negative user id stays zero padded", func(t *testing.T) {
		assert.Regexp(t, regexp.MustCompile(`^ST\d{11}$`), OrderID(-7, at))
	})
}

func TestNewOrder(t *testing.T) {
	p := testPricing(t)
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("valid quantity", func(t *testing.T) {
		o, err := NewOrder(p, 7, 100, at)
		require.NoError(t, err)
		assert.Equal(t, "ST01011200007", o.ID)
		assert.Equal(t, 100, o.Stars)
		assert.True(t, o.Price.Equal(decimal.MustParse("160")), "got %s", o.Price)
	})

	t.Run("out of range never constructs", func(t *testing.T) {
		o, err := NewOrder(p, 7, 10, at)
		require.Error(t, err)
		assert.Nil(t, o)

		o, err = NewOrder(p, 7, 5001, at)
		require.Error(t, err)
		assert.Nil(t, o)
	})
}
