package partner

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Run("creates active customer", func(t *testing.T) {
		c, err := NewCustomer("Jon Doe", "jon@doe.ca")

		require.NoError(t, err)
		assert.Equal(t, "Jon Doe", c.Name)
		assert.Equal(t, "jon@doe.ca", c.Email)
		assert.Equal(t, CustomerStatusActive, c.Status)
		assert.False(t, c.IsDeleted)
		assert.NotEqual(t, uuid.Nil, c.ID)
	})

	t.Run("keeps email case", func(t *testing.T) {
		c, err := NewCustomer("", "Jon@Doe.CA")

		require.NoError(t, err)
		assert.Equal(t, "Jon@Doe.CA", c.Email)
	})

	t.Run("fails with empty email", func(t *testing.T) {
		c, err := NewCustomer("Jon", "  ")

		assert.Error(t, err)
		assert.Nil(t, c)
		assert.Contains(t, err.Error(), "email cannot be empty")
	})

	t.Run("fails with long name", func(t *testing.T) {
		_, err := NewCustomer(strings.Repeat("a", 201), "a@b.c")
		assert.Error(t, err)
	})
}

func TestCustomer_SetStatus(t *testing.T) {
	c, err := NewCustomer("Jon", "jon@doe.ca")
	require.NoError(t, err)

	require.NoError(t, c.SetStatus(""))
	assert.Equal(t, CustomerStatusActive, c.Status)

	require.NoError(t, c.SetStatus(CustomerStatusInactive))
	assert.Equal(t, CustomerStatusInactive, c.Status)

	assert.Error(t, c.SetStatus("suspended"))
}

func TestCustomer_UpdateAndDelete(t *testing.T) {
	c, err := NewCustomer("Jon", "jon@doe.ca")
	require.NoError(t, err)

	require.NoError(t, c.Update("Jon Doe", "555-0100", "123 Elm St, Ottawa"))
	assert.Equal(t, "Jon Doe", c.Name)
	assert.Equal(t, "555-0100", c.Phone)
	assert.Equal(t, "jon@doe.ca", c.Email)

	c.MarkDeleted()
	assert.True(t, c.IsDeleted)
}
