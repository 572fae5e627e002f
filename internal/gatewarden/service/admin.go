package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/store"
	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/types"
)

// AdminService manages the reference data the gate reads.
type AdminService struct {
	records  store.RecordStore
	settings *SettingsService
	logger   *slog.Logger
}

func NewAdminService(records store.RecordStore, settings *SettingsService, logger *slog.Logger) *AdminService {
	return &AdminService{records: records, settings: settings, logger: logger}
}

func (s *AdminService) ListIdentities(ctx context.Context) ([]types.Identity, error) {
	return s.records.ListIdentities(ctx)
}

func (s *AdminService) CreateIdentity(ctx context.Context, ident types.Identity) (types.Identity, error) {
	ident.Name = strings.TrimSpace(ident.Name)
	if ident.Name == "" {
		return types.Identity{}, ErrInvalidIdentityName
	}
	ident.Role = strings.TrimSpace(ident.Role)

	plates := make([]string, 0, len(ident.Plates))
	for _, p := range ident.Plates {
		p = strings.TrimSpace(p)
		if p == "" {
			return types.Identity{}, ErrInvalidPlate
		}
		plates = append(plates, p)
	}
	ident.Plates = plates

	created, err := s.records.CreateIdentity(ctx, ident)
	if err != nil {
		return types.Identity{}, fmt.Errorf("create identity: %w", err)
	}
	s.logger.InfoContext(ctx, "identity created", "identity_id", created.ID, "plates", len(created.Plates))
	return created, nil
}

func (s *AdminService) DeleteIdentity(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidIdentityID
	}
	return s.records.DeleteIdentity(ctx, id)
}

func (s *AdminService) ListVehicles(ctx context.Context) ([]types.Vehicle, error) {
	return s.records.ListVehicles(ctx)
}

func (s *AdminService) SaveVehicle(ctx context.Context, v types.Vehicle) (types.Vehicle, error) {
	v.Plate = strings.TrimSpace(v.Plate)
	if v.Plate == "" {
		return types.Vehicle{}, ErrInvalidPlate
	}
	class, ok := types.ParseClassification(string(v.Classification))
	if !ok {
		return types.Vehicle{}, ErrInvalidClassification
	}
	v.Classification = class
	v.Model = strings.TrimSpace(v.Model)
	v.Color = strings.TrimSpace(v.Color)

	if err := s.records.SaveVehicle(ctx, v); err != nil {
		return types.Vehicle{}, fmt.Errorf("save vehicle: %w", err)
	}
	s.logger.InfoContext(ctx, "vehicle saved", "plate", v.Plate, "classification", v.Classification)
	return v, nil
}

func (s *AdminService) DeleteVehicle(ctx context.Context, plate string) error {
	plate = strings.TrimSpace(plate)
	if plate == "" {
		return ErrInvalidPlate
	}
	return s.records.DeleteVehicle(ctx, plate)
}

func (s *AdminService) Settings(ctx context.Context) types.GateSettings {
	return s.settings.Current(ctx)
}

func (s *AdminService) UpdateSettings(ctx context.Context, gs types.GateSettings) (types.GateSettings, error) {
	return s.settings.Update(ctx, gs)
}
