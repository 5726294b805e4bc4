package storage

import (
	"context"
	"fmt"

	"github.com/gravadigital/hotelops-dashboard/internal/config"
)

// StorageType represents the type of preview storage backend
type StorageType string

const (
	// StorageTypeMemory keeps previews in process memory
	StorageTypeMemory StorageType = config.PreviewStoreMemory
	// StorageTypeMinio keeps previews in a MinIO bucket
	StorageTypeMinio StorageType = config.PreviewStoreMinio
)

// Factory provides a factory pattern for creating preview stores
type Factory struct {
	storageType StorageType
}

// NewFactory creates a new storage factory
func NewFactory(storageType StorageType) *Factory {
	return &Factory{
		storageType: storageType,
	}
}

// CreateStore creates a preview store based on the configured type
func (f *Factory) CreateStore(ctx context.Context, cfg *config.Config) (PreviewStore, error) {
	switch f.storageType {
	case StorageTypeMemory:
		return NewMemoryStore(cfg.Preview.TTL), nil
	case StorageTypeMinio:
		return NewMinioStore(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", f.storageType)
	}
}

// GetSupportedTypes returns a list of supported storage types
func GetSupportedTypes() []StorageType {
	return []StorageType{
		StorageTypeMemory,
		StorageTypeMinio,
	}
}

// ValidateStorageType validates if a storage type is supported
func ValidateStorageType(storageType string) (StorageType, error) {
	st := StorageType(storageType)

	for _, supported := range GetSupportedTypes() {
		if st == supported {
			return st, nil
		}
	}

	return "", fmt.Errorf("unsupported storage type: %s. Supported types: %v", storageType, GetSupportedTypes())
}

// FromConfig returns a factory for the store selected in cfg
func FromConfig(cfg *config.Config) (*Factory, error) {
	st, err := ValidateStorageType(cfg.Preview.Store)
	if err != nil {
		return nil, err
	}
	return NewFactory(st), nil
}
