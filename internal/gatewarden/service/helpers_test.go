package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/BrandonDHaskell/gatewarden/internal/clock"
	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/service"
	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/store"
	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/store/memory"
	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/types"
	"github.com/BrandonDHaskell/gatewarden/internal/logging"
	"github.com/BrandonDHaskell/gatewarden/internal/monitoring"
)

var epoch = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

// testGate wires every gate service over in-memory stores and a fake clock
// starting at epoch.
type testGate struct {
	clock     *clock.Fake
	registry  *service.PendingRegistry
	barrier   *service.Barrier
	events    *memory.AccessEventStore
	records   *memory.RecordStore
	settings  *service.SettingsService
	engine    *service.CorrelationEngine
	guard     *service.GuardService
	projector *service.StatusProjector
	admin     *service.AdminService
}

func newTestGate(t *testing.T) *testGate {
	t.Helper()
	events := memory.NewAccessEventStore()
	g := newTestGateOver(t, events)
	g.events = events
	return g
}

// newTestGateOver is newTestGate with a caller-supplied audit store; the
// events field is left nil.
func newTestGateOver(t *testing.T, events store.AccessEventStore) *testGate {
	t.Helper()

	logger := logging.Discard()
	metrics := monitoring.NewStub()
	clk := clock.NewFake(epoch)
	records := memory.NewRecordStore()
	settings := service.NewSettingsService(memory.NewSettingsStore(), types.GateSettings{
		QRTimeoutSeconds:      20,
		AutoCloseDelaySeconds: 10,
	}, logger)
	audit := service.NewAuditLog(events, logger, metrics)

	deps := service.Deps{
		Registry: service.NewPendingRegistry(),
		Barrier:  service.NewBarrier(logger),
		Audit:    audit,
		Records:  records,
		Settings: settings,
		Clock:    clk,
		Logger:   logger,
		Metrics:  metrics,
	}

	return &testGate{
		clock:     clk,
		registry:  deps.Registry,
		barrier:   deps.Barrier,
		records:   records,
		settings:  settings,
		engine:    service.NewCorrelationEngine(deps),
		guard:     service.NewGuardService(deps),
		projector: service.NewStatusProjector(audit, records),
		admin:     service.NewAdminService(records, settings, logger),
	}
}

func (g *testGate) saveVehicle(t *testing.T, plate string, class types.Classification) types.Vehicle {
	t.Helper()
	v := types.Vehicle{Plate: plate, Classification: class}
	if err := g.records.SaveVehicle(context.Background(), v); err != nil {
		t.Fatalf("SaveVehicle(%s): %v", plate, err)
	}
	return v
}

func (g *testGate) saveIdentity(t *testing.T, id int64, plates ...string) {
	t.Helper()
	err := g.records.SaveIdentity(context.Background(), types.Identity{
		ID:     id,
		Name:   "driver",
		Plates: plates,
	})
	if err != nil {
		t.Fatalf("SaveIdentity(%d): %v", id, err)
	}
}

func (g *testGate) detect(t *testing.T, plate string, dir types.Direction) {
	t.Helper()
	if _, ok := g.engine.RecordDetection(context.Background(), plate, dir); !ok {
		t.Fatalf("RecordDetection(%s) was rejected", plate)
	}
}

func (g *testGate) pendingPlates() []string {
	var out []string
	for _, d := range g.registry.PeekAll() {
		out = append(out, d.Plate)
	}
	return out
}
