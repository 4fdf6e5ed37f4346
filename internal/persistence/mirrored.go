// internal/persistence/mirrored.go
package persistence

import (
	"context"

	"github.com/sirupsen/logrus"
)

// MirroredBackend reads from primary and copies every write to mirror.
// Mirror failures are logged only; primary is authoritative.
type MirroredBackend struct {
	primary Backend
	mirror  Backend
	log     *logrus.Entry
}

func NewMirroredBackend(primary, mirror Backend) *MirroredBackend {
	return &MirroredBackend{
		primary: primary,
		mirror:  mirror,
		log:     logrus.WithField("component", "persistence.mirror"),
	}
}

func (m *MirroredBackend) Get(ctx context.Context, key string) ([]byte, error) {
	return m.primary.Get(ctx, key)
}

func (m *MirroredBackend) Put(ctx context.Context, key string, value []byte) error {
	if err := m.primary.Put(ctx, key, value); err != nil {
		return err
	}
	if err := m.mirror.Put(ctx, key, value); err != nil {
		m.log.WithError(err).WithField("key", key).Warn("Mirror write failed")
	}
	return nil
}

func (m *MirroredBackend) Clear(ctx context.Context) error {
	if err := m.primary.Clear(ctx); err != nil {
		return err
	}
	if err := m.mirror.Clear(ctx); err != nil {
		m.log.WithError(err).Warn("Mirror clear failed")
	}
	return nil
}
