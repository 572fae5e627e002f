package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/store"
	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/types"
	"github.com/BrandonDHaskell/gatewarden/internal/logging"
)

// SettingsService serves the gate settings, falling back to the configured
// defaults until an admin has stored a value.
type SettingsService struct {
	store    store.SettingsStore
	defaults types.GateSettings
	logger   *slog.Logger
}

func NewSettingsService(st store.SettingsStore, defaults types.GateSettings, logger *slog.Logger) *SettingsService {
	if defaults.QRTimeoutSeconds <= 0 {
		defaults.QRTimeoutSeconds = 20
	}
	if defaults.AutoCloseDelaySeconds <= 0 {
		defaults.AutoCloseDelaySeconds = 10
	}
	return &SettingsService{store: st, defaults: defaults, logger: logger}
}

// Current never fails: a store error is logged and the defaults are used.
func (s *SettingsService) Current(ctx context.Context) types.GateSettings {
	gs, err := s.store.GetSettings(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.WarnContext(ctx, "settings lookup failed, using defaults", logging.ErrAttr(err))
		}
		return s.defaults
	}
	return gs
}

func (s *SettingsService) Update(ctx context.Context, gs types.GateSettings) (types.GateSettings, error) {
	if gs.QRTimeoutSeconds <= 0 || gs.AutoCloseDelaySeconds <= 0 {
		return types.GateSettings{}, ErrInvalidSettings
	}
	if err := s.store.PutSettings(ctx, gs); err != nil {
		return types.GateSettings{}, fmt.Errorf("update settings: %w", err)
	}
	s.logger.InfoContext(ctx, "gate settings updated",
		"qr_timeout_s", gs.QRTimeoutSeconds, "auto_close_delay_s", gs.AutoCloseDelaySeconds)
	return gs, nil
}
