package session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyIsStableAndOpaque(t *testing.T) {
	a := key("token-a")
	b := key("token-a")
	c := key("token-b")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Contains(t, a, "medisync:revoked:")
	// The raw token never appears in the key.
	assert.NotContains(t, a, "token-a")
}

func TestRevokedFailsOpen(t *testing.T) {
	// Nothing listens here; lookups must report not-revoked rather
	// than lock everyone out.
	s := NewStore("127.0.0.1:1", "", 0, time.Minute)
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.False(t, s.Revoked(ctx, "some-token"))
	assert.Error(t, s.Revoke(ctx, "some-token"))
}

func TestRevokeRoundTrip(t *testing.T) {
	addr := os.Getenv("MEDISYNC_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("MEDISYNC_TEST_REDIS_ADDR not set")
	}
	s := NewStore(addr, "", 0, time.Minute)
	defer s.Close()
	ctx := context.Background()

	assert.False(t, s.Revoked(ctx, "fresh-token"))
	require.NoError(t, s.Revoke(ctx, "fresh-token"))
	assert.True(t, s.Revoked(ctx, "fresh-token"))
	assert.False(t, s.Revoked(ctx, "other-token"))
}
