// internal/persistence/adapter.go

// Package persistence mirrors the store state into a key-value backend.
//
// Each collection is written whole under a fixed key. Writes of different keys are
// independent, so an interrupted SaveState can leave keys from different generations.
// Readers must therefore tolerate any key being missing or unparsable.
package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/brianstore/store-backend/internal/models"
)

const (
	KeyProducts = "products"
	KeySales    = "sales"
	KeyAlerts   = "alerts"
	KeyStaff    = "staff"
	KeySettings = "settings"
)

// Keys lists every key written by SaveState, in write order.
var Keys = []string{KeyProducts, KeySales, KeyAlerts, KeyStaff, KeySettings}

var ErrNotFound = errors.New("snapshot not found")

// Backend stores raw JSON blobs by key.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Clear(ctx context.Context) error
}

type Adapter struct {
	backend Backend
	log     *logrus.Entry
}

func NewAdapter(backend Backend) *Adapter {
	return &Adapter{
		backend: backend,
		log:     logrus.WithField("component", "persistence"),
	}
}

// Load returns the value stored under key, or fallback when it is absent or unreadable.
func Load[T any](ctx context.Context, a *Adapter, key string, fallback T) T {
	log := a.log.WithField("key", key)

	raw, err := a.backend.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Info("No stored snapshot, using defaults")
		} else {
			log.WithError(err).Warn("Storage load error, using defaults")
		}
		return fallback
	}

	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		log.Warn("Empty stored snapshot, using defaults")
		return fallback
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		log.WithError(err).Warn("Corrupt stored snapshot, using defaults")
		return fallback
	}
	return value
}

// Save writes value under key. Failures are logged and otherwise ignored.
func (a *Adapter) Save(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		a.log.WithError(err).WithField("key", key).Error("Failed to encode snapshot")
		return
	}

	if err := a.backend.Put(ctx, key, raw); err != nil {
		a.log.WithError(err).WithField("key", key).Error("Failed to write snapshot")
	}
}

// SaveState writes all five collections, one key at a time.
func (a *Adapter) SaveState(ctx context.Context, state models.StoreState) {
	a.Save(ctx, KeyProducts, state.Products)
	a.Save(ctx, KeySales, state.Sales)
	a.Save(ctx, KeyAlerts, state.Alerts)
	a.Save(ctx, KeyStaff, state.Staff)
	a.Save(ctx, KeySettings, state.Settings)
}

// LoadState reads all five collections, substituting seed per missing key.
func (a *Adapter) LoadState(ctx context.Context, seed models.StoreState) models.StoreState {
	return models.StoreState{
		Products: Load(ctx, a, KeyProducts, seed.Products),
		Sales:    Load(ctx, a, KeySales, seed.Sales),
		Alerts:   Load(ctx, a, KeyAlerts, seed.Alerts),
		Staff:    Load(ctx, a, KeyStaff, seed.Staff),
		Settings: Load(ctx, a, KeySettings, seed.Settings),
	}
}

// Clear removes every stored key.
func (a *Adapter) Clear(ctx context.Context) {
	if err := a.backend.Clear(ctx); err != nil {
		a.log.WithError(err).Error("Failed to clear stored snapshots")
	}
}
