package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/store"
	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/types"
)

// RecordStore keeps vehicles and identities in maps. Values are copied
// on the way in and out so callers cannot mutate stored records.
type RecordStore struct {
	mu         sync.RWMutex
	vehicles   map[string]types.Vehicle
	identities map[int64]types.Identity
	nextID     int64
}

func NewRecordStore() *RecordStore {
	return &RecordStore{
		vehicles:   make(map[string]types.Vehicle),
		identities: make(map[int64]types.Identity),
		nextID:     1,
	}
}

func (s *RecordStore) FindVehicle(_ context.Context, plate string) (types.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vehicles[plate]
	if !ok {
		return types.Vehicle{}, store.ErrNotFound
	}
	return v, nil
}

func (s *RecordStore) ListVehicles(_ context.Context) ([]types.Vehicle, error) {
	s.mu.RLock()
	out := make([]types.Vehicle, 0, len(s.vehicles))
	for _, v := range s.vehicles {
		out = append(out, v)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b types.Vehicle) int { return strings.Compare(a.Plate, b.Plate) })
	return out, nil
}

func (s *RecordStore) SaveVehicle(_ context.Context, v types.Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vehicles[v.Plate] = v
	return nil
}

func (s *RecordStore) DeleteVehicle(_ context.Context, plate string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vehicles[plate]; !ok {
		return store.ErrNotFound
	}
	delete(s.vehicles, plate)
	return nil
}

func (s *RecordStore) FindIdentity(_ context.Context, id int64) (types.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ident, ok := s.identities[id]
	if !ok {
		return types.Identity{}, store.ErrNotFound
	}
	ident.Plates = clonePlates(ident.Plates)
	return ident, nil
}

func (s *RecordStore) ListIdentities(_ context.Context) ([]types.Identity, error) {
	s.mu.RLock()
	out := make([]types.Identity, 0, len(s.identities))
	for _, ident := range s.identities {
		ident.Plates = clonePlates(ident.Plates)
		out = append(out, ident)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b types.Identity) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (s *RecordStore) CreateIdentity(_ context.Context, ident types.Identity) (types.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ident.ID = s.nextID
	s.nextID++
	ident.Plates = clonePlates(ident.Plates)
	s.identities[ident.ID] = ident
	return types.Identity{ID: ident.ID, Name: ident.Name, Role: ident.Role, Plates: clonePlates(ident.Plates)}, nil
}

// SaveIdentity upserts by id. Explicit ids above the internal counter
// bump it so later CreateIdentity calls never collide.
func (s *RecordStore) SaveIdentity(_ context.Context, ident types.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ident.Plates = clonePlates(ident.Plates)
	s.identities[ident.ID] = ident
	if ident.ID >= s.nextID {
		s.nextID = ident.ID + 1
	}
	return nil
}

func (s *RecordStore) DeleteIdentity(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.identities[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.identities, id)
	return nil
}
