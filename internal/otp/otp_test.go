package otp

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCodeRange(t *testing.T) {
	for i := 0; i < 10000; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)
	}
}

func TestMemoryStoreVerifyOnce(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Save(ctx, "9876543210", "123456"))
	require.NoError(t, s.Verify(ctx, "9876543210", "123456"))

	// The code is consumed; a second verify finds nothing.
	assert.ErrorIs(t, s.Verify(ctx, "9876543210", "123456"), ErrNotFound)
}

func TestMemoryStoreUnknownPhone(t *testing.T) {
	s := NewMemoryStore()
	assert.ErrorIs(t, s.Verify(context.Background(), "1111111111", "123456"), ErrNotFound)
}

func TestMemoryStoreInvalidThenSuccess(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Save(ctx, "9876543210", "123456"))
	assert.ErrorIs(t, s.Verify(ctx, "9876543210", "000000"), ErrInvalid)
	assert.ErrorIs(t, s.Verify(ctx, "9876543210", "999999"), ErrInvalid)
	require.NoError(t, s.Verify(ctx, "9876543210", "123456"))
}

func TestMemoryStoreExhaustion(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Save(ctx, "9876543210", "123456"))
	for i := 0; i < MaxAttempts; i++ {
		assert.ErrorIs(t, s.Verify(ctx, "9876543210", "000000"), ErrInvalid)
	}

	// Even the correct code is rejected once attempts are spent, and the
	// entry is gone afterwards.
	assert.ErrorIs(t, s.Verify(ctx, "9876543210", "123456"), ErrExhausted)
	assert.ErrorIs(t, s.Verify(ctx, "9876543210", "123456"), ErrNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	current := time.Now()
	s.now = func() time.Time { return current }

	require.NoError(t, s.Save(ctx, "9876543210", "123456"))

	current = current.Add(TTL + time.Second)
	assert.ErrorIs(t, s.Verify(ctx, "9876543210", "123456"), ErrExpired)
	assert.ErrorIs(t, s.Verify(ctx, "9876543210", "123456"), ErrNotFound)
}

func TestMemoryStoreSaveResetsAttempts(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Save(ctx, "9876543210", "123456"))
	for i := 0; i < MaxAttempts-1; i++ {
		assert.ErrorIs(t, s.Verify(ctx, "9876543210", "000000"), ErrInvalid)
	}

	// A fresh code replaces the old entry and its attempt counter.
	require.NoError(t, s.Save(ctx, "9876543210", "654321"))
	assert.ErrorIs(t, s.Verify(ctx, "9876543210", "123456"), ErrInvalid)
	require.NoError(t, s.Verify(ctx, "9876543210", "654321"))
}

func TestMemoryStorePhonesAreIndependent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Save(ctx, "1111111111", "111111"))
	require.NoError(t, s.Save(ctx, "2222222222", "222222"))

	assert.ErrorIs(t, s.Verify(ctx, "1111111111", "222222"), ErrInvalid)
	require.NoError(t, s.Verify(ctx, "2222222222", "222222"))
	require.NoError(t, s.Verify(ctx, "1111111111", "111111"))
}
