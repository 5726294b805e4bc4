package storage

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/gravadigital/hotelops-dashboard/internal/logger"
)

// MemoryStore keeps previews in process memory with a fixed time to live
type MemoryStore struct {
	cache *cache.Cache
	ttl   time.Duration
	log   *log.Logger
}

// NewMemoryStore creates an in-memory preview store
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	s := &MemoryStore{
		cache: cache.New(ttl, ttl/2),
		ttl:   ttl,
		log:   logger.Storage("memory"),
	}
	s.cache.OnEvicted(func(id string, _ interface{}) {
		s.log.Debug("Preview released", "id", id)
	})
	return s
}

func (s *MemoryStore) Put(_ context.Context, filename, contentType string, data []byte) (Handle, error) {
	buf := make([]byte, len(data))
	copy(buf, data)

	obj := &Object{
		Handle: Handle{
			ID:          uuid.NewString(),
			Filename:    filename,
			ContentType: contentType,
			Size:        int64(len(buf)),
			StoredAt:    time.Now().UTC(),
		},
		Data: buf,
	}
	s.cache.Set(obj.ID, obj, s.ttl)

	s.log.Debug("Preview stored", "id", obj.ID, "filename", filename, "size", obj.Size)
	return obj.Handle, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Object, error) {
	value, ok := s.cache.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return value.(*Object), nil
}

// Revoke drops the preview. Revoking an unknown handle is not an error.
func (s *MemoryStore) Revoke(_ context.Context, id string) error {
	if id == "" {
		return nil
	}
	s.cache.Delete(id)
	return nil
}

// Len returns the number of live previews
func (s *MemoryStore) Len() int {
	return s.cache.ItemCount()
}
