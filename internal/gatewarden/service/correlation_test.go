package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/types"
)

// ── Automatic grant ─────────────────────────────────────────────────────────

func TestOnIdentityPresented_FreshDetectionGrants(t *testing.T) {
	g := newTestGate(t)
	g.saveVehicle(t, "ABC-1", types.ClassCompany)
	g.saveIdentity(t, 7, "ABC-1")
	g.detect(t, "ABC-1", types.DirectionEnter)

	g.clock.Advance(5 * time.Second)
	d, err := g.engine.OnIdentityPresented(context.Background(), 7)
	if err != nil {
		t.Fatalf("OnIdentityPresented: %v", err)
	}

	if !d.Granted || d.Reason != types.ReasonAutomaticGrant {
		t.Errorf("expected automatic grant, got granted=%v reason=%q", d.Granted, d.Reason)
	}
	if g.barrier.Status() != types.BarrierOpen {
		t.Errorf("expected barrier OPEN, got %s", g.barrier.Status())
	}
	if n := g.registry.Len(); n != 0 {
		t.Errorf("expected registry empty, got %d", n)
	}

	events := g.events.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev := events[0]
	if ev.Action != types.ActionAutomaticOpen {
		t.Errorf("expected AUTOMATIC_OPEN, got %s", ev.Action)
	}
	if ev.IdentityID == nil || *ev.IdentityID != 7 {
		t.Errorf("expected identity 7, got %v", ev.IdentityID)
	}
	if ev.Plate == nil || *ev.Plate != "ABC-1" {
		t.Errorf("expected plate ABC-1, got %v", ev.Plate)
	}
	if !ev.OccurredAt.Equal(epoch.Add(5 * time.Second)) {
		t.Errorf("expected occurred_at=t+5s, got %v", ev.OccurredAt)
	}
	if d.Event == nil || d.Event.ID != ev.ID {
		t.Error("expected decision to carry the appended event")
	}
}

func TestOnIdentityPresented_UnregisteredVehicleStillGrants(t *testing.T) {
	g := newTestGate(t)
	g.saveIdentity(t, 3, "NOREC-1")
	g.detect(t, "NOREC-1", types.DirectionEnter)

	d, err := g.engine.OnIdentityPresented(context.Background(), 3)
	if err != nil {
		t.Fatalf("OnIdentityPresented: %v", err)
	}
	if !d.Granted {
		t.Fatal("expected grant on ownership match")
	}

	events := g.events.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Plate != nil {
		t.Errorf("expected absent vehicle reference, got %q", *events[0].Plate)
	}
	if events[0].IdentityID == nil || *events[0].IdentityID != 3 {
		t.Error("expected identity 3 on the event")
	}
}

// ── No-op outcomes ──────────────────────────────────────────────────────────

func TestOnIdentityPresented_ExpiredDetectionIsNoop(t *testing.T) {
	g := newTestGate(t)
	g.saveVehicle(t, "ABC-1", types.ClassCompany)
	g.saveIdentity(t, 7, "ABC-1")
	g.detect(t, "ABC-1", types.DirectionEnter)

	g.clock.Advance(25 * time.Second)
	d, err := g.engine.OnIdentityPresented(context.Background(), 7)
	if err != nil {
		t.Fatalf("OnIdentityPresented: %v", err)
	}

	if d.Granted || d.Reason != types.ReasonDetectionExpired {
		t.Errorf("expected detection_expired, got granted=%v reason=%q", d.Granted, d.Reason)
	}
	if g.barrier.Status() != types.BarrierClosed {
		t.Errorf("expected barrier unchanged, got %s", g.barrier.Status())
	}
	if n := len(g.events.Events()); n != 0 {
		t.Errorf("expected no events, got %d", n)
	}
	if plates := g.pendingPlates(); len(plates) != 1 || plates[0] != "ABC-1" {
		t.Errorf("expected ABC-1 still pending, got %v", plates)
	}
}

func TestOnIdentityPresented_WindowBoundaryIsStale(t *testing.T) {
	g := newTestGate(t)
	g.saveIdentity(t, 7, "ABC-1")
	g.detect(t, "ABC-1", types.DirectionEnter)

	g.clock.Advance(20 * time.Second)
	d, _ := g.engine.OnIdentityPresented(context.Background(), 7)
	if d.Granted {
		t.Error("expected no grant at exactly the window")
	}
}

func TestOnIdentityPresented_UnknownIdentityIsNoop(t *testing.T) {
	g := newTestGate(t)
	g.detect(t, "ABC-1", types.DirectionEnter)

	d, err := g.engine.OnIdentityPresented(context.Background(), 99)
	if err != nil {
		t.Fatalf("expected unknown identity to be a no-op, got %v", err)
	}
	if d.Reason != types.ReasonUnknownIdentity {
		t.Errorf("expected unknown_identity, got %q", d.Reason)
	}
	if g.registry.Len() != 1 || len(g.events.Events()) != 0 {
		t.Error("expected no state change")
	}
}

func TestOnIdentityPresented_NoPendingPlate(t *testing.T) {
	g := newTestGate(t)
	g.saveIdentity(t, 7, "ABC-1")
	g.detect(t, "OTHER-1", types.DirectionEnter)

	d, _ := g.engine.OnIdentityPresented(context.Background(), 7)
	if d.Reason != types.ReasonNoPendingPlate {
		t.Errorf("expected no_pending_plate, got %q", d.Reason)
	}
	if g.barrier.Status() != types.BarrierClosed {
		t.Error("expected barrier unchanged")
	}
	if plates := g.pendingPlates(); len(plates) != 1 || plates[0] != "OTHER-1" {
		t.Errorf("expected other plate untouched, got %v", plates)
	}
}

// ── Multiple owned plates ───────────────────────────────────────────────────

func TestOnIdentityPresented_ResolvesOnePlatePerCall(t *testing.T) {
	g := newTestGate(t)
	g.saveIdentity(t, 7, "CAR-B", "CAR-A")
	g.detect(t, "CAR-B", types.DirectionEnter)
	g.clock.Advance(time.Second)
	g.detect(t, "CAR-A", types.DirectionEnter)

	d, _ := g.engine.OnIdentityPresented(context.Background(), 7)
	if d.Plate != "CAR-B" {
		t.Errorf("expected earliest detection CAR-B first, got %s", d.Plate)
	}
	if plates := g.pendingPlates(); len(plates) != 1 || plates[0] != "CAR-A" {
		t.Errorf("expected CAR-A still pending, got %v", plates)
	}

	d, _ = g.engine.OnIdentityPresented(context.Background(), 7)
	if d.Plate != "CAR-A" || !d.Granted {
		t.Errorf("expected second scan to grant CAR-A, got %+v", d)
	}
	if n := len(g.events.Events()); n != 2 {
		t.Errorf("expected 2 events, got %d", n)
	}
}

func TestOnIdentityPresented_StaleFirstCandidateBlocksLaterFresh(t *testing.T) {
	g := newTestGate(t)
	g.saveIdentity(t, 7, "OLD-1", "NEW-1")
	g.detect(t, "OLD-1", types.DirectionEnter)
	g.clock.Advance(22 * time.Second)
	g.detect(t, "NEW-1", types.DirectionEnter)

	d, _ := g.engine.OnIdentityPresented(context.Background(), 7)
	if d.Granted || d.Reason != types.ReasonDetectionExpired || d.Plate != "OLD-1" {
		t.Errorf("expected stale OLD-1 to decide the call, got %+v", d)
	}
	if g.registry.Len() != 2 {
		t.Errorf("expected both entries kept, got %d", g.registry.Len())
	}
}

// ── Detection input ─────────────────────────────────────────────────────────

func TestRecordDetection_InvalidInputIgnored(t *testing.T) {
	g := newTestGate(t)

	if _, ok := g.engine.RecordDetection(context.Background(), "", types.DirectionEnter); ok {
		t.Error("expected empty plate to be ignored")
	}
	if _, ok := g.engine.RecordDetection(context.Background(), "ABC-1", types.Direction("SIDEWAYS")); ok {
		t.Error("expected invalid direction to be ignored")
	}
	if g.registry.Len() != 0 {
		t.Errorf("expected empty registry, got %d", g.registry.Len())
	}
}

func TestOnIdentityPresented_UsesUpdatedTimeout(t *testing.T) {
	g := newTestGate(t)
	g.saveIdentity(t, 7, "ABC-1")
	_, err := g.settings.Update(context.Background(), types.GateSettings{QRTimeoutSeconds: 60, AutoCloseDelaySeconds: 10})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	g.detect(t, "ABC-1", types.DirectionEnter)

	g.clock.Advance(45 * time.Second)
	d, _ := g.engine.OnIdentityPresented(context.Background(), 7)
	if !d.Granted {
		t.Errorf("expected grant within the 60s window, got reason=%q", d.Reason)
	}
}
