// Package kvtest holds the behaviour every KeyValueStore backend must share.
package kvtest

import (
	"context"
	"testing"

	portsrepo "github.com/SscSPs/currency_convertor/internal/core/ports/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunContract exercises store through get/set/remove round trips.
func RunContract(t *testing.T, store portsrepo.KeyValueStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, found, err := store.Get(ctx, "kvtest-missing")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "kvtest-a", `{"input":"50"}`))
		value, found, err := store.Get(ctx, "kvtest-a")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, `{"input":"50"}`, value)
	})

	t.Run("set overwrites", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "kvtest-a", "second"))
		value, _, err := store.Get(ctx, "kvtest-a")
		require.NoError(t, err)
		assert.Equal(t, "second", value)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "kvtest-b", "keep"))
		require.NoError(t, store.Remove(ctx, "kvtest-a"))

		_, found, err := store.Get(ctx, "kvtest-a")
		require.NoError(t, err)
		assert.False(t, found)

		value, found, err := store.Get(ctx, "kvtest-b")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "keep", value)
	})

	t.Run("remove absent key", func(t *testing.T) {
		assert.NoError(t, store.Remove(ctx, "kvtest-never-set"))
	})

	t.Run("empty value is stored", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "kvtest-empty", ""))
		value, found, err := store.Get(ctx, "kvtest-empty")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "", value)
	})
}
