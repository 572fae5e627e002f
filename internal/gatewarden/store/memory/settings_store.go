package memory

import (
	"context"
	"sync"

	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/store"
	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/types"
)

type SettingsStore struct {
	mu  sync.RWMutex
	set bool
	cur types.GateSettings
}

func NewSettingsStore() *SettingsStore {
	return &SettingsStore{}
}

func (s *SettingsStore) GetSettings(_ context.Context) (types.GateSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.set {
		return types.GateSettings{}, store.ErrNotFound
	}
	return s.cur, nil
}

func (s *SettingsStore) PutSettings(_ context.Context, gs types.GateSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = gs
	s.set = true
	return nil
}
