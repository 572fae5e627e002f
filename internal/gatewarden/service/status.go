package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/store"
	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/types"
)

// StatusProjector derives inside/outside status by replaying the audit
// log on every call. There is no cached state.
type StatusProjector struct {
	audit   *AuditLog
	records store.RecordStore
}

func NewStatusProjector(audit *AuditLog, records store.RecordStore) *StatusProjector {
	return &StatusProjector{audit: audit, records: records}
}

func (p *StatusProjector) StatusOf(ctx context.Context, vehicles []types.Vehicle) ([]types.VehicleStatus, error) {
	events, err := p.audit.History(ctx)
	if err != nil {
		return nil, fmt.Errorf("status history: %w", err)
	}
	return Project(events, vehicles), nil
}

// CompanyFleetStatus projects every COMPANY vehicle.
func (p *StatusProjector) CompanyFleetStatus(ctx context.Context) ([]types.VehicleStatus, error) {
	all, err := p.records.ListVehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	fleet := make([]types.Vehicle, 0, len(all))
	for _, v := range all {
		if v.Classification == types.ClassCompany {
			fleet = append(fleet, v)
		}
	}
	return p.StatusOf(ctx, fleet)
}

// Project folds events in (OccurredAt, ID) order into the last action per
// plate, then classifies each vehicle: INSIDE if its last action was an
// entry action, OUTSIDE otherwise or when it has no events.
func Project(events []types.AccessEvent, vehicles []types.Vehicle) []types.VehicleStatus {
	ordered := slices.Clone(events)
	slices.SortStableFunc(ordered, func(a, b types.AccessEvent) int {
		if c := a.OccurredAt.Compare(b.OccurredAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	last := make(map[string]types.Action)
	for _, ev := range ordered {
		if ev.Plate == nil {
			continue
		}
		last[*ev.Plate] = ev.Action
	}

	out := make([]types.VehicleStatus, 0, len(vehicles))
	for _, v := range vehicles {
		status := types.PresenceOutside
		if action, ok := last[v.Plate]; ok && action.Entry() {
			status = types.PresenceInside
		}
		out = append(out, types.VehicleStatus{Vehicle: v, Status: status})
	}
	return out
}
