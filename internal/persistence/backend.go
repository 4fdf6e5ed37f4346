// internal/persistence/backend.go
package persistence

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/brianstore/store-backend/internal/config"
)

// NewBackend selects the snapshot backend named by the storage config.
// db may be nil unless the postgres backend is selected.
func NewBackend(cfg *config.Config, db *gorm.DB) (Backend, error) {
	var primary Backend

	switch cfg.Storage.Backend {
	case config.StorageBackendMemory:
		primary = NewMemoryBackend()
	case config.StorageBackendPostgres:
		if db == nil {
			return nil, fmt.Errorf("postgres storage requires a database connection")
		}
		primary = NewGormBackend(db)
	case config.StorageBackendS3:
		s3Backend, err := NewS3BackendFromConfig(cfg)
		if err != nil {
			return nil, err
		}
		return s3Backend, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	if !cfg.Storage.MirrorToS3 {
		return primary, nil
	}

	mirror, err := NewS3BackendFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return NewMirroredBackend(primary, mirror), nil
}
