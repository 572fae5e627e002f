package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/store"
	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/types"
)

// CorrelationEngine matches badge presentations against pending plate
// detections. A fresh match for a plate the identity owns opens the
// barrier automatically; anything else is left to the guard.
type CorrelationEngine struct {
	d Deps
}

func NewCorrelationEngine(d Deps) *CorrelationEngine {
	return &CorrelationEngine{d: d}
}

// RecordDetection stores a camera sighting, replacing any earlier sighting
// of the same plate. Input is expected to be validated already
// (ParseCameraInput); an empty plate or unknown direction is logged and
// dropped.
func (e *CorrelationEngine) RecordDetection(ctx context.Context, plate string, dir types.Direction) (types.PendingDetection, bool) {
	now := e.d.Clock.Now()

	if plate == "" || !dir.Valid() {
		e.d.Logger.WarnContext(ctx, "ignoring invalid detection", "plate", plate, "direction", dir)
		return types.PendingDetection{}, false
	}

	e.d.Registry.Record(plate, dir, now)
	e.d.Metrics.ObservePending(e.d.Registry.Len())
	e.d.Logger.InfoContext(ctx, "plate detected", "plate", plate, "direction", dir)

	return types.PendingDetection{Plate: plate, DetectedAt: now, Direction: dir}, true
}

// OnIdentityPresented resolves one badge scan. Among the identity's owned
// plates the earliest pending detection is considered; if it is within the
// QR timeout the barrier opens, an AUTOMATIC_OPEN event is appended and the
// detection is consumed. Unknown identities, no pending plate and expired
// detections are all no-ops.
func (e *CorrelationEngine) OnIdentityPresented(ctx context.Context, identityID int64) (types.Decision, error) {
	now := e.d.Clock.Now()

	decision := types.Decision{
		IdentityID: identityID,
		DecidedAt:  now.Format(time.RFC3339Nano),
	}

	ident, err := e.d.Records.FindIdentity(ctx, identityID)
	if errors.Is(err, store.ErrNotFound) {
		decision.Reason = types.ReasonUnknownIdentity
		e.observe(ctx, decision)
		return decision, nil
	}
	if err != nil {
		return types.Decision{}, fmt.Errorf("find identity %d: %w", identityID, err)
	}

	window := e.d.Settings.Current(ctx).QRTimeout()
	det, res := e.d.Registry.ClaimFirst(ident.Plates, now, window)

	switch res {
	case ClaimNone:
		decision.Reason = types.ReasonNoPendingPlate
	case ClaimExpired:
		decision.Reason = types.ReasonDetectionExpired
		decision.Plate = det.Plate
		decision.Direction = det.Direction
	case ClaimFresh:
		e.d.Barrier.Open()
		vehicle := resolveVehicle(ctx, e.d, det.Plate)
		id := ident.ID
		decision.Granted = true
		decision.Reason = types.ReasonAutomaticGrant
		decision.Plate = det.Plate
		decision.Direction = det.Direction
		decision.Event = e.d.Audit.Record(ctx, &id, vehicle, types.ActionAutomaticOpen, now)
	}

	e.observe(ctx, decision)
	return decision, nil
}

func (e *CorrelationEngine) observe(ctx context.Context, d types.Decision) {
	e.d.Metrics.ObserveCorrelation(d.Reason)
	e.d.Metrics.ObservePending(e.d.Registry.Len())
	e.d.Logger.InfoContext(ctx, "identity presented",
		"identity_id", d.IdentityID,
		"granted", d.Granted,
		"reason", d.Reason,
		"plate", d.Plate,
	)
}
