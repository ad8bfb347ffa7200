package middleware_test

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/virtualide/pkg/adapters/memory"
	"github.com/aretw0/virtualide/pkg/domain"
	"github.com/aretw0/virtualide/pkg/persistence/middleware"
	"github.com/aretw0/virtualide/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) []byte {
	t.Helper()
	k := make([]byte, 32)
	_, err := io.ReadFull(rand.Reader, k)
	require.NoError(t, err)
	return k
}

func secure(t *testing.T, next ports.RecordingStore, active []byte, fallback ...[]byte) ports.RecordingStore {
	t.Helper()
	mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    active,
		FallbackKeys: fallback,
	})
	require.NoError(t, err)
	return middleware.Chain(next, mw)
}

func sample() *domain.Recording {
	return &domain.Recording{
		ID: "demo",
		Actions: []domain.Action{
			{Name: "author-speak-before", Value: "the secret is 42"},
		},
	}
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	ports.RunRecordingStoreContract(t, secure(t, memory.NewStore(), generateKey(t)))
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	store := secure(t, underlying, generateKey(t))

	require.NoError(t, store.Save(ctx, sample()))

	raw, err := underlying.Load(ctx, "demo")
	require.NoError(t, err)
	assert.Equal(t, "demo", raw.ID)
	assert.Empty(t, raw.Actions, "actions must not be stored in the clear")
	assert.NotEmpty(t, raw.Sealed)
	assert.False(t, strings.Contains(string(raw.Sealed), "secret"))

	loaded, err := store.Load(ctx, "demo")
	require.NoError(t, err)
	assert.Equal(t, sample().Actions, loaded.Actions)
	assert.Empty(t, loaded.Sealed)
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	oldKey, newKey := generateKey(t), generateKey(t)

	oldStore := secure(t, underlying, oldKey)
	require.NoError(t, oldStore.Save(ctx, sample()))

	newStore := secure(t, underlying, newKey, oldKey)
	loaded, err := newStore.Load(ctx, "demo")
	require.NoError(t, err, "fallback key should decrypt")
	assert.Equal(t, "the secret is 42", loaded.Actions[0].Value)

	require.NoError(t, newStore.Save(ctx, loaded))
	_, err = oldStore.Load(ctx, "demo")
	assert.Error(t, err, "old key alone cannot read data sealed with the new key")
}

func TestEncryptionMiddleware_Errors(t *testing.T) {
	_, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")})
	assert.Error(t, err)

	ctx := context.Background()
	underlying := memory.NewStore()
	require.NoError(t, underlying.Save(ctx, sample()))

	_, err = secure(t, underlying, generateKey(t)).Load(ctx, "demo")
	assert.ErrorIs(t, err, middleware.ErrNotSealed)

	_, err = secure(t, underlying, generateKey(t)).Load(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrRecordingNotFound)
}

func TestParseKey(t *testing.T) {
	key := generateKey(t)
	parsed, err := middleware.ParseKey(hex.EncodeToString(key))
	require.NoError(t, err)
	assert.Equal(t, key, parsed)

	_, err = middleware.ParseKey("zz")
	assert.Error(t, err)
	_, err = middleware.ParseKey("abcd")
	assert.Error(t, err)
}
