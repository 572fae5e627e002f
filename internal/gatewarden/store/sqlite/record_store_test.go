package sqlite_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/store"
	sqlitestore "github.com/BrandonDHaskell/gatewarden/internal/gatewarden/store/sqlite"
	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/types"
)

func newTestRecordStore(t *testing.T) *sqlitestore.RecordStore {
	t.Helper()
	conn := openTestDB(t)
	return sqlitestore.NewRecordStore(conn, newTestWriter(t, conn))
}

// ═══════════════════════════════════════════════════════════════════════════
// Vehicles
// ═══════════════════════════════════════════════════════════════════════════

func TestRecordStore_Vehicle_SaveFindUpdate(t *testing.T) {
	rs := newTestRecordStore(t)
	ctx := context.Background()

	v := types.Vehicle{Plate: "123-ABC", Classification: types.ClassCompany, Model: "Toyota Camry", Year: 2022, Color: "Silver"}
	if err := rs.SaveVehicle(ctx, v); err != nil {
		t.Fatalf("SaveVehicle: %v", err)
	}

	got, err := rs.FindVehicle(ctx, "123-ABC")
	if err != nil {
		t.Fatalf("FindVehicle: %v", err)
	}
	if got != v {
		t.Errorf("expected %+v, got %+v", v, got)
	}

	v.Color = "Black"
	if err := rs.SaveVehicle(ctx, v); err != nil {
		t.Fatalf("SaveVehicle update: %v", err)
	}
	got, _ = rs.FindVehicle(ctx, "123-ABC")
	if got.Color != "Black" {
		t.Errorf("expected color=Black after upsert, got %q", got.Color)
	}

	list, err := rs.ListVehicles(ctx)
	if err != nil {
		t.Fatalf("ListVehicles: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected upsert to keep 1 row, got %d", len(list))
	}
}

func TestRecordStore_Vehicle_PlateIsCaseSensitive(t *testing.T) {
	rs := newTestRecordStore(t)
	ctx := context.Background()

	if err := rs.SaveVehicle(ctx, types.Vehicle{Plate: "abc-1", Classification: types.ClassGuest}); err != nil {
		t.Fatalf("SaveVehicle: %v", err)
	}
	if _, err := rs.FindVehicle(ctx, "ABC-1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for different case, got %v", err)
	}
}

func TestRecordStore_Vehicle_DeleteMissing(t *testing.T) {
	rs := newTestRecordStore(t)
	if err := rs.DeleteVehicle(context.Background(), "NOPE"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Identities
// ═══════════════════════════════════════════════════════════════════════════

func TestRecordStore_Identity_CreateWithPlates(t *testing.T) {
	rs := newTestRecordStore(t)
	ctx := context.Background()

	created, err := rs.CreateIdentity(ctx, types.Identity{
		Name:   "Alice Johnson",
		Role:   "EMPLOYEE",
		Plates: []string{"999-XYZ", "123-ABC"},
	})
	if err != nil {
		t.Fatalf("CreateIdentity: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected assigned id")
	}

	got, err := rs.FindIdentity(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindIdentity: %v", err)
	}
	if !slices.Equal(got.Plates, []string{"123-ABC", "999-XYZ"}) {
		t.Errorf("expected plates sorted, got %v", got.Plates)
	}
	if got.Name != "Alice Johnson" || got.Role != "EMPLOYEE" {
		t.Errorf("unexpected identity: %+v", got)
	}
}

func TestRecordStore_Identity_SaveReplacesPlates(t *testing.T) {
	rs := newTestRecordStore(t)
	ctx := context.Background()

	if err := rs.SaveIdentity(ctx, types.Identity{ID: 7, Name: "Driver", Plates: []string{"A", "B"}}); err != nil {
		t.Fatalf("SaveIdentity: %v", err)
	}
	if err := rs.SaveIdentity(ctx, types.Identity{ID: 7, Name: "Driver", Plates: []string{"C"}}); err != nil {
		t.Fatalf("SaveIdentity second: %v", err)
	}

	got, err := rs.FindIdentity(ctx, 7)
	if err != nil {
		t.Fatalf("FindIdentity: %v", err)
	}
	if !slices.Equal(got.Plates, []string{"C"}) {
		t.Errorf("expected plates [C], got %v", got.Plates)
	}

	list, err := rs.ListIdentities(ctx)
	if err != nil {
		t.Fatalf("ListIdentities: %v", err)
	}
	if len(list) != 1 || list[0].ID != 7 {
		t.Errorf("expected one identity with id 7, got %+v", list)
	}
}

func TestRecordStore_Identity_DeleteCascadesPlates(t *testing.T) {
	conn := openTestDB(t)
	rs := sqlitestore.NewRecordStore(conn, newTestWriter(t, conn))
	ctx := context.Background()

	if err := rs.SaveIdentity(ctx, types.Identity{ID: 3, Name: "Temp", Plates: []string{"T-1"}}); err != nil {
		t.Fatalf("SaveIdentity: %v", err)
	}
	if err := rs.DeleteIdentity(ctx, 3); err != nil {
		t.Fatalf("DeleteIdentity: %v", err)
	}
	if _, err := rs.FindIdentity(ctx, 3); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	var n int
	if err := conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM identity_plates WHERE identity_id = 3`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Errorf("expected plates to cascade, got %d rows", n)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Settings
// ═══════════════════════════════════════════════════════════════════════════

func TestSettingsStore_GetBeforePut(t *testing.T) {
	conn := openTestDB(t)
	ss := sqlitestore.NewSettingsStore(conn, newTestWriter(t, conn))

	if _, err := ss.GetSettings(context.Background()); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound before first put, got %v", err)
	}
}

func TestSettingsStore_PutGet(t *testing.T) {
	conn := openTestDB(t)
	ss := sqlitestore.NewSettingsStore(conn, newTestWriter(t, conn))
	ctx := context.Background()

	for _, want := range []types.GateSettings{
		{QRTimeoutSeconds: 20, AutoCloseDelaySeconds: 10},
		{QRTimeoutSeconds: 45, AutoCloseDelaySeconds: 5},
	} {
		if err := ss.PutSettings(ctx, want); err != nil {
			t.Fatalf("PutSettings: %v", err)
		}
		got, err := ss.GetSettings(ctx)
		if err != nil {
			t.Fatalf("GetSettings: %v", err)
		}
		if got != want {
			t.Errorf("expected %+v, got %+v", want, got)
		}
	}
}

func TestSettingsStore_RejectsNonPositive(t *testing.T) {
	conn := openTestDB(t)
	ss := sqlitestore.NewSettingsStore(conn, newTestWriter(t, conn))

	err := ss.PutSettings(context.Background(), types.GateSettings{QRTimeoutSeconds: 0, AutoCloseDelaySeconds: 10})
	if err == nil {
		t.Error("expected CHECK constraint to reject qr_timeout_s=0")
	}
}
