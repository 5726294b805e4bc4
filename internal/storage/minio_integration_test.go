//go:build integration
// +build integration

package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/hotelops-dashboard/internal/config"
)

// Integration tests that require a reachable MinIO server
// Run with: go test -tags=integration

func TestMinioStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	cfg := config.Load()

	store, err := NewMinioStore(ctx, cfg)
	require.NoError(t, err, "Should be able to connect to MinIO")

	h, err := store.Put(ctx, "passport.png", "image/png", []byte("png-bytes"))
	require.NoError(t, err)

	obj, err := store.Get(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), obj.Data)
	assert.Equal(t, "image/png", obj.ContentType)
	assert.Equal(t, "passport.png", obj.Filename)

	require.NoError(t, store.Revoke(ctx, h.ID))

	_, err = store.Get(ctx, h.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
