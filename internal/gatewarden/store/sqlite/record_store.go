package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	dbpkg "github.com/BrandonDHaskell/gatewarden/internal/db"
	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/store"
	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/types"
)

// RecordStore keeps vehicles and identities. Reads go straight to the
// connection; writes go through the single writer.
type RecordStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewRecordStore(db *sql.DB, writer *dbpkg.Worker) *RecordStore {
	return &RecordStore{db: db, writer: writer}
}

// ── Vehicles ─────────────────────────────────────────────────────────────────

func (s *RecordStore) FindVehicle(ctx context.Context, plate string) (types.Vehicle, error) {
	var (
		v     types.Vehicle
		class string
	)
	err := s.db.QueryRowContext(ctx, `
SELECT plate, classification, model, year, color
FROM vehicles
WHERE plate = ?;
`, plate).Scan(&v.Plate, &class, &v.Model, &v.Year, &v.Color)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Vehicle{}, store.ErrNotFound
	}
	if err != nil {
		return types.Vehicle{}, fmt.Errorf("FindVehicle query: %w", err)
	}
	v.Classification = types.Classification(class)
	return v, nil
}

func (s *RecordStore) ListVehicles(ctx context.Context) ([]types.Vehicle, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT plate, classification, model, year, color
FROM vehicles
ORDER BY plate;
`)
	if err != nil {
		return nil, fmt.Errorf("ListVehicles query: %w", err)
	}
	defer rows.Close()

	out := []types.Vehicle{}
	for rows.Next() {
		var (
			v     types.Vehicle
			class string
		)
		if err := rows.Scan(&v.Plate, &class, &v.Model, &v.Year, &v.Color); err != nil {
			return nil, fmt.Errorf("ListVehicles scan: %w", err)
		}
		v.Classification = types.Classification(class)
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListVehicles rows: %w", err)
	}
	return out, nil
}

func (s *RecordStore) SaveVehicle(ctx context.Context, v types.Vehicle) error {
	nowMs := time.Now().UTC().UnixMilli()
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO vehicles(plate, classification, model, year, color, created_at_ms, updated_at_ms)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(plate) DO UPDATE SET
  classification = excluded.classification,
  model          = excluded.model,
  year           = excluded.year,
  color          = excluded.color,
  updated_at_ms  = excluded.updated_at_ms;
`, v.Plate, string(v.Classification), v.Model, v.Year, v.Color, nowMs, nowMs); err != nil {
			return fmt.Errorf("SaveVehicle upsert: %w", err)
		}
		return nil
	})
}

func (s *RecordStore) DeleteVehicle(ctx context.Context, plate string) error {
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM vehicles WHERE plate = ?;`, plate)
		if err != nil {
			return fmt.Errorf("DeleteVehicle: %w", err)
		}
		return requireAffected(res)
	})
}

// ── Identities ───────────────────────────────────────────────────────────────

func (s *RecordStore) FindIdentity(ctx context.Context, id int64) (types.Identity, error) {
	ident := types.Identity{ID: id}
	err := s.db.QueryRowContext(ctx, `
SELECT name, role FROM identities WHERE identity_id = ?;
`, id).Scan(&ident.Name, &ident.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Identity{}, store.ErrNotFound
	}
	if err != nil {
		return types.Identity{}, fmt.Errorf("FindIdentity query: %w", err)
	}

	plates, err := s.platesFor(ctx, id)
	if err != nil {
		return types.Identity{}, err
	}
	ident.Plates = plates
	return ident, nil
}

func (s *RecordStore) ListIdentities(ctx context.Context) ([]types.Identity, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT identity_id, name, role FROM identities ORDER BY identity_id;
`)
	if err != nil {
		return nil, fmt.Errorf("ListIdentities query: %w", err)
	}

	out := []types.Identity{}
	for rows.Next() {
		var ident types.Identity
		if err := rows.Scan(&ident.ID, &ident.Name, &ident.Role); err != nil {
			rows.Close()
			return nil, fmt.Errorf("ListIdentities scan: %w", err)
		}
		out = append(out, ident)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("ListIdentities rows: %w", err)
	}
	// Release the single connection before the per-identity plate queries.
	rows.Close()

	for i := range out {
		plates, err := s.platesFor(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Plates = plates
	}
	return out, nil
}

func (s *RecordStore) CreateIdentity(ctx context.Context, ident types.Identity) (types.Identity, error) {
	nowMs := time.Now().UTC().UnixMilli()
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
INSERT INTO identities(name, role, created_at_ms, updated_at_ms)
VALUES (?, ?, ?, ?);
`, ident.Name, ident.Role, nowMs, nowMs)
		if err != nil {
			return fmt.Errorf("CreateIdentity insert: %w", err)
		}
		ident.ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("CreateIdentity last id: %w", err)
		}
		return replacePlates(ctx, tx, ident.ID, ident.Plates)
	})
	if err != nil {
		return types.Identity{}, err
	}
	return s.FindIdentity(ctx, ident.ID)
}

func (s *RecordStore) SaveIdentity(ctx context.Context, ident types.Identity) error {
	nowMs := time.Now().UTC().UnixMilli()
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO identities(identity_id, name, role, created_at_ms, updated_at_ms)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(identity_id) DO UPDATE SET
  name          = excluded.name,
  role          = excluded.role,
  updated_at_ms = excluded.updated_at_ms;
`, ident.ID, ident.Name, ident.Role, nowMs, nowMs); err != nil {
			return fmt.Errorf("SaveIdentity upsert: %w", err)
		}
		return replacePlates(ctx, tx, ident.ID, ident.Plates)
	})
}

func (s *RecordStore) DeleteIdentity(ctx context.Context, id int64) error {
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM identities WHERE identity_id = ?;`, id)
		if err != nil {
			return fmt.Errorf("DeleteIdentity: %w", err)
		}
		return requireAffected(res)
	})
}

func (s *RecordStore) platesFor(ctx context.Context, id int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT plate FROM identity_plates WHERE identity_id = ? ORDER BY plate;
`, id)
	if err != nil {
		return nil, fmt.Errorf("platesFor query: %w", err)
	}
	defer rows.Close()

	plates := []string{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("platesFor scan: %w", err)
		}
		plates = append(plates, p)
	}
	return plates, rows.Err()
}

// replacePlates rewrites an identity's owned plates. Must be called inside
// an existing transaction.
func replacePlates(ctx context.Context, tx *sql.Tx, id int64, plates []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM identity_plates WHERE identity_id = ?;`, id); err != nil {
		return fmt.Errorf("replacePlates clear: %w", err)
	}
	for _, p := range plates {
		if _, err := tx.ExecContext(ctx, `
INSERT OR IGNORE INTO identity_plates(identity_id, plate) VALUES (?, ?);
`, id, p); err != nil {
			return fmt.Errorf("replacePlates insert %s: %w", p, err)
		}
	}
	return nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
