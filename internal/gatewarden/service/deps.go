package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/BrandonDHaskell/gatewarden/internal/clock"
	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/store"
	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/types"
	"github.com/BrandonDHaskell/gatewarden/internal/logging"
	"github.com/BrandonDHaskell/gatewarden/internal/monitoring"
)

// Deps is the shared gate state handed to the correlation engine and the
// guard service. Both must be built from the same Deps so they act on the
// same registry, barrier and audit log.
type Deps struct {
	Registry *PendingRegistry
	Barrier  *Barrier
	Audit    *AuditLog
	Records  store.RecordStore
	Settings *SettingsService
	Clock    clock.Clock
	Logger   *slog.Logger
	Metrics  monitoring.Metrics
}

// resolveVehicle looks up the vehicle for plate. Unknown plates and lookup
// failures both yield nil; a failure is logged.
func resolveVehicle(ctx context.Context, d Deps, plate string) *types.Vehicle {
	v, err := d.Records.FindVehicle(ctx, plate)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			d.Logger.WarnContext(ctx, "vehicle lookup failed", "plate", plate, logging.ErrAttr(err))
		}
		return nil
	}
	return &v
}
