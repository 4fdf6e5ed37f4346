// internal/persistence/gorm_backend.go
package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/brianstore/store-backend/internal/models"
)

// GormBackend stores snapshots as rows of the store_snapshots table.
type GormBackend struct {
	db *gorm.DB
}

func NewGormBackend(db *gorm.DB) *GormBackend {
	return &GormBackend{db: db}
}

func (b *GormBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var row models.StoreSnapshot
	if err := b.db.WithContext(ctx).Where("key = ?", key).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return []byte(row.Value), nil
}

func (b *GormBackend) Put(ctx context.Context, key string, value []byte) error {
	row := models.StoreSnapshot{
		Key:       key,
		Value:     string(value),
		UpdatedAt: time.Now().UTC(),
	}

	err := b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot %s: %w", key, err)
	}
	return nil
}

func (b *GormBackend) Clear(ctx context.Context) error {
	if err := b.db.WithContext(ctx).Where("1 = 1").Delete(&models.StoreSnapshot{}).Error; err != nil {
		return fmt.Errorf("failed to clear snapshots: %w", err)
	}
	return nil
}
