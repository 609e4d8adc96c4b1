package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_GetPut(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, ok, err := m.Get(ctx, "lol-favorites")
	require.NoError(t, err)
	assert.False(t, ok)

	value := []byte(`["Ahri"]`)
	require.NoError(t, m.Put(ctx, "lol-favorites", value))
	value[0] = 'x'

	got, ok, err := m.Get(ctx, "lol-favorites")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["Ahri"]`, string(got), "stored value is a copy")

	assert.ErrorIs(t, m.Put(ctx, " ", nil), ErrEmptyKey)
}
