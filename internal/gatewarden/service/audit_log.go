package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/store"
	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/types"
	"github.com/BrandonDHaskell/gatewarden/internal/logging"
	"github.com/BrandonDHaskell/gatewarden/internal/monitoring"
)

// AuditLog is the append-only access history and the only source of truth
// for whether a vehicle is inside.
type AuditLog struct {
	store   store.AccessEventStore
	logger  *slog.Logger
	metrics monitoring.Metrics
}

func NewAuditLog(es store.AccessEventStore, logger *slog.Logger, metrics monitoring.Metrics) *AuditLog {
	return &AuditLog{store: es, logger: logger, metrics: metrics}
}

// Record appends one event. A failed append is logged and reported as nil;
// it never undoes the barrier action that caused it.
func (a *AuditLog) Record(
	ctx context.Context,
	identityID *int64,
	vehicle *types.Vehicle,
	action types.Action,
	at time.Time,
) *types.AccessEvent {
	rec := store.AccessEventRecord{
		IdentityID: identityID,
		Action:     action,
		OccurredAt: at,
	}
	if vehicle != nil {
		plate := vehicle.Plate
		rec.Plate = &plate
	}

	ev, err := a.store.AppendEvent(ctx, rec)
	if err != nil {
		a.logger.ErrorContext(ctx, "audit append failed", "action", action, logging.ErrAttr(err))
		return nil
	}
	a.metrics.ObserveAction(action)
	return &ev
}

// History returns every event ordered by time.
func (a *AuditLog) History(ctx context.Context) ([]types.AccessEvent, error) {
	events, err := a.store.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []types.AccessEvent{}
	}
	return events, nil
}
