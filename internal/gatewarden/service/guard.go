package service

import (
	"context"
	"strings"
	"time"

	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/types"
)

// GuardService exposes the human overrides. They are never blocked by the
// correlation engine or the barrier state. An empty plate means the guard
// acted without naming a vehicle.
type GuardService struct {
	d Deps
}

func NewGuardService(d Deps) *GuardService {
	return &GuardService{d: d}
}

// ForceOpen opens the barrier, clears any pending detection for plate and
// appends FORCED_OPEN.
func (g *GuardService) ForceOpen(ctx context.Context, plate string) types.GuardActionResponse {
	now := g.d.Clock.Now()
	g.d.Barrier.Open()
	ev := g.recordPlateAction(ctx, plate, types.ActionForcedOpen, now)
	return g.response(ev)
}

// ForceClose closes the barrier and appends FORCED_CLOSE with no identity
// or vehicle.
func (g *GuardService) ForceClose(ctx context.Context) types.GuardActionResponse {
	now := g.d.Clock.Now()
	g.d.Barrier.Close()
	g.d.Logger.InfoContext(ctx, "guard action", "action", types.ActionForcedClose)
	ev := g.d.Audit.Record(ctx, nil, nil, types.ActionForcedClose, now)
	return g.response(ev)
}

// Reject denies a vehicle without touching the barrier, clears any
// pending detection for plate and appends REJECT.
func (g *GuardService) Reject(ctx context.Context, plate string) types.GuardActionResponse {
	now := g.d.Clock.Now()
	ev := g.recordPlateAction(ctx, plate, types.ActionReject, now)
	return g.response(ev)
}

func (g *GuardService) recordPlateAction(ctx context.Context, plate string, action types.Action, now time.Time) *types.AccessEvent {
	plate = strings.TrimSpace(plate)

	var vehicle *types.Vehicle
	if plate != "" {
		vehicle = resolveVehicle(ctx, g.d, plate)
		g.d.Registry.Consume(plate)
		g.d.Metrics.ObservePending(g.d.Registry.Len())
	}

	g.d.Logger.InfoContext(ctx, "guard action", "action", action, "plate", plate, "known_vehicle", vehicle != nil)
	return g.d.Audit.Record(ctx, nil, vehicle, action, now)
}

func (g *GuardService) response(ev *types.AccessEvent) types.GuardActionResponse {
	return types.GuardActionResponse{
		OK:      true,
		Barrier: g.d.Barrier.Status(),
		Event:   ev,
	}
}

// Pending returns the registry snapshot annotated with freshness against
// the current QR timeout.
func (g *GuardService) Pending(ctx context.Context) []types.PendingView {
	now := g.d.Clock.Now()
	window := g.d.Settings.Current(ctx).QRTimeout()

	entries := g.d.Registry.PeekAll()
	out := make([]types.PendingView, 0, len(entries))
	for _, d := range entries {
		out = append(out, types.PendingView{
			Plate:      d.Plate,
			DetectedAt: d.DetectedAt.Format(time.RFC3339Nano),
			Direction:  d.Direction,
			Fresh:      IsFresh(d, now, window),
			AgeSeconds: now.Sub(d.DetectedAt).Seconds(),
		})
	}
	return out
}

func (g *GuardService) BarrierStatus() types.BarrierResponse {
	st := g.d.Barrier.Status()
	return types.BarrierResponse{State: st, Open: st == types.BarrierOpen}
}

func (g *GuardService) History(ctx context.Context) ([]types.AccessEvent, error) {
	return g.d.Audit.History(ctx)
}
