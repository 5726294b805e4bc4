package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/hotelops-dashboard/internal/config"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	data := []byte("scan")
	h, err := store.Put(ctx, "aadhaar.jpg", "image/jpeg", data)
	require.NoError(t, err)
	data[0] = 'X'

	obj, err := store.Get(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("scan"), obj.Data)
	assert.Equal(t, "aadhaar.jpg", obj.Filename)
	assert.Equal(t, "image/jpeg", obj.ContentType)
	assert.Equal(t, int64(4), obj.Size)
	assert.Equal(t, 1, store.Len())

	require.NoError(t, store.Revoke(ctx, h.ID))

	_, err = store.Get(ctx, h.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStoreRevokeUnknown(t *testing.T) {
	store := NewMemoryStore(time.Minute)

	assert.NoError(t, store.Revoke(context.Background(), ""))
	assert.NoError(t, store.Revoke(context.Background(), "missing"))
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(20 * time.Millisecond)
	h, err := store.Put(context.Background(), "pan.pdf", "application/pdf", []byte("%PDF"))
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		_, err := store.Get(context.Background(), h.ID)
		return err == ErrNotFound
	}, time.Second, 10*time.Millisecond)
}

func TestValidateStorageType(t *testing.T) {
	st, err := ValidateStorageType("minio")
	require.NoError(t, err)
	assert.Equal(t, StorageTypeMinio, st)

	_, err = ValidateStorageType("s3")
	assert.Error(t, err)
}

func TestFactoryCreatesMemoryStore(t *testing.T) {
	cfg := &config.Config{}
	cfg.Preview.Store = config.PreviewStoreMemory
	cfg.Preview.TTL = time.Minute

	factory, err := FromConfig(cfg)
	require.NoError(t, err)

	store, err := factory.CreateStore(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)
}

func TestLookupMeta(t *testing.T) {
	assert.Equal(t, "id.png", lookupMeta(map[string]string{"Filename": "id.png"}, metaFilename))
	assert.Equal(t, "id.png", lookupMeta(map[string]string{"X-Amz-Meta-Filename": "id.png"}, metaFilename))
	assert.Empty(t, lookupMeta(nil, metaFilename))
}
