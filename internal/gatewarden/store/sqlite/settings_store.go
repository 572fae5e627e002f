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

type SettingsStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewSettingsStore(db *sql.DB, writer *dbpkg.Worker) *SettingsStore {
	return &SettingsStore{db: db, writer: writer}
}

func (s *SettingsStore) GetSettings(ctx context.Context) (types.GateSettings, error) {
	var gs types.GateSettings
	err := s.db.QueryRowContext(ctx, `
SELECT qr_timeout_s, auto_close_delay_s FROM gate_settings WHERE settings_id = 'gate';
`).Scan(&gs.QRTimeoutSeconds, &gs.AutoCloseDelaySeconds)
	if errors.Is(err, sql.ErrNoRows) {
		return types.GateSettings{}, store.ErrNotFound
	}
	if err != nil {
		return types.GateSettings{}, fmt.Errorf("GetSettings query: %w", err)
	}
	return gs, nil
}

func (s *SettingsStore) PutSettings(ctx context.Context, gs types.GateSettings) error {
	nowMs := time.Now().UTC().UnixMilli()
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO gate_settings(settings_id, qr_timeout_s, auto_close_delay_s, updated_at_ms)
VALUES ('gate', ?, ?, ?)
ON CONFLICT(settings_id) DO UPDATE SET
  qr_timeout_s       = excluded.qr_timeout_s,
  auto_close_delay_s = excluded.auto_close_delay_s,
  updated_at_ms      = excluded.updated_at_ms;
`, gs.QRTimeoutSeconds, gs.AutoCloseDelaySeconds, nowMs); err != nil {
			return fmt.Errorf("PutSettings upsert: %w", err)
		}
		return nil
	})
}
