package kernel_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContact(t *testing.T) {
	t.Run("should create valid contact", func(t *testing.T) {
		c, err := kernel.NewContact("Alice", "+15550001111", "12 Main St")

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.Equal(t, "Alice", c.Name())
		assert.Equal(t, "+15550001111", c.Phone())
		assert.Equal(t, "12 Main St", c.Address())
	})

	t.Run("should allow empty name", func(t *testing.T) {
		c, err := kernel.NewContact("", "+15550001111", "12 Main St")

		require.NoError(t, err)
		assert.Empty(t, c.Name())
	})

	t.Run("should trim whitespace", func(t *testing.T) {
		c, err := kernel.NewContact("  Alice ", " +15550001111 ", " 12 Main St ")

		require.NoError(t, err)
		assert.Equal(t, "Alice", c.Name())
		assert.Equal(t, "+15550001111", c.Phone())
		assert.Equal(t, "12 Main St", c.Address())
	})

	t.Run("should fail without phone", func(t *testing.T) {
		_, err := kernel.NewContact("Alice", "   ", "12 Main St")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "phone")
	})

	t.Run("should fail without address", func(t *testing.T) {
		_, err := kernel.NewContact("Alice", "+15550001111", "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "address")
	})
}

func TestContact_Validate_ZeroValue(t *testing.T) {
	var c kernel.Contact

	err := c.Validate()

	require.Error(t, err)
	require.ErrorIs(t, err, kernel.ErrContactIsNotConstructed)
}

func TestContact_IsEqual(t *testing.T) {
	first, _ := kernel.NewContact("Alice", "+15550001111", "12 Main St")
	same, _ := kernel.NewContact("Alice", "+15550001111", "12 Main St")
	other, _ := kernel.NewContact("Bob", "+15550002222", "34 Side St")

	assert.True(t, first.IsEqual(same))
	assert.False(t, first.IsEqual(other))
}
