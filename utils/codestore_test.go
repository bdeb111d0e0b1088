package utils

import (
	"context"
	"testing"
	"time"

	"okclinic/utils/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCodeStoreExpiry(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	store := NewMemoryCodeStore(clk)

	require.NoError(t, store.Set(ctx, "signup:a@b.c", "123456", 10*time.Minute))

	v, ok, err := store.Get(ctx, "signup:a@b.c")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "123456", v)

	clk.Add(10 * time.Minute)
	_, ok, err = store.Get(ctx, "signup:a@b.c")
	require.NoError(t, err)
	assert.False(t, ok, "entry must expire at its TTL")
}

func TestMemoryCodeStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCodeStore(nil)

	require.NoError(t, store.Set(ctx, "k", "v", time.Minute))
	require.NoError(t, store.Delete(ctx, "k"))

	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGenerateNumericCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateNumericCode(6)
		require.NoError(t, err)
		assert.Len(t, code, 6)
		assert.Regexp(t, `^[0-9]{6}$`, code)
	}

	_, err := GenerateNumericCode(0)
	assert.Error(t, err)
}
