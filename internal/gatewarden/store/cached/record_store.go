// Package cached fronts a RecordStore with in-process otter caches so the
// hot lookup paths (identity by id on every badge scan, vehicle by plate on
// every grant or guard action) avoid a database round trip.
package cached

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/maypok86/otter"

	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/store"
	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/types"
	"github.com/BrandonDHaskell/gatewarden/internal/logging"
)

type Config struct {
	TTL     time.Duration
	MaxSize int
}

type RecordStore struct {
	next       store.RecordStore
	vehicles   otter.Cache[string, types.Vehicle]
	identities otter.Cache[int64, types.Identity]
	logger     *slog.Logger
}

var _ store.RecordStore = (*RecordStore)(nil)

func NewRecordStore(next store.RecordStore, cfg Config, logger *slog.Logger) (*RecordStore, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = time.Minute
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = 1024
	}

	vehicles, err := otter.MustBuilder[string, types.Vehicle](cfg.MaxSize).
		WithTTL(cfg.TTL).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build vehicle cache: %w", err)
	}

	identities, err := otter.MustBuilder[int64, types.Identity](cfg.MaxSize).
		WithTTL(cfg.TTL).
		Build()
	if err != nil {
		vehicles.Close()
		return nil, fmt.Errorf("build identity cache: %w", err)
	}

	return &RecordStore{
		next:       next,
		vehicles:   vehicles,
		identities: identities,
		logger:     logger,
	}, nil
}

func (s *RecordStore) Close() {
	s.vehicles.Close()
	s.identities.Close()
}

func (s *RecordStore) FindVehicle(ctx context.Context, plate string) (types.Vehicle, error) {
	if v, ok := s.vehicles.Get(plate); ok {
		s.logger.Log(ctx, logging.LevelTrace, "vehicle cache hit", "plate", plate)
		return v, nil
	}

	v, err := s.next.FindVehicle(ctx, plate)
	if err != nil {
		return types.Vehicle{}, err
	}
	s.vehicles.Set(plate, v)
	return v, nil
}

func (s *RecordStore) ListVehicles(ctx context.Context) ([]types.Vehicle, error) {
	return s.next.ListVehicles(ctx)
}

// Writes invalidate after the backing store commits so a lookup racing the
// write cannot re-cache the old record.
func (s *RecordStore) SaveVehicle(ctx context.Context, v types.Vehicle) error {
	defer s.vehicles.Delete(v.Plate)
	return s.next.SaveVehicle(ctx, v)
}

func (s *RecordStore) DeleteVehicle(ctx context.Context, plate string) error {
	defer s.vehicles.Delete(plate)
	return s.next.DeleteVehicle(ctx, plate)
}

func (s *RecordStore) FindIdentity(ctx context.Context, id int64) (types.Identity, error) {
	if ident, ok := s.identities.Get(id); ok {
		s.logger.Log(ctx, logging.LevelTrace, "identity cache hit", "identity_id", id)
		ident.Plates = slices.Clone(ident.Plates)
		return ident, nil
	}

	ident, err := s.next.FindIdentity(ctx, id)
	if err != nil {
		return types.Identity{}, err
	}
	cachedIdent := ident
	cachedIdent.Plates = slices.Clone(ident.Plates)
	s.identities.Set(id, cachedIdent)
	return ident, nil
}

func (s *RecordStore) ListIdentities(ctx context.Context) ([]types.Identity, error) {
	return s.next.ListIdentities(ctx)
}

func (s *RecordStore) CreateIdentity(ctx context.Context, ident types.Identity) (types.Identity, error) {
	return s.next.CreateIdentity(ctx, ident)
}

func (s *RecordStore) SaveIdentity(ctx context.Context, ident types.Identity) error {
	defer s.identities.Delete(ident.ID)
	return s.next.SaveIdentity(ctx, ident)
}

func (s *RecordStore) DeleteIdentity(ctx context.Context, id int64) error {
	defer s.identities.Delete(id)
	return s.next.DeleteIdentity(ctx, id)
}
