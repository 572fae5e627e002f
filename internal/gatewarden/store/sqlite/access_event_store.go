package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	dbpkg "github.com/BrandonDHaskell/gatewarden/internal/db"
	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/store"
	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/types"
)

type AccessEventStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewAccessEventStore(db *sql.DB, writer *dbpkg.Worker) *AccessEventStore {
	return &AccessEventStore{db: db, writer: writer}
}

func (s *AccessEventStore) AppendEvent(ctx context.Context, rec store.AccessEventRecord) (types.AccessEvent, error) {
	if rec.OccurredAt.IsZero() {
		rec.OccurredAt = time.Now().UTC()
	}
	occurredUs := rec.OccurredAt.UTC().UnixMicro()

	var identityID any
	if rec.IdentityID != nil {
		identityID = *rec.IdentityID
	}
	var plate any
	if rec.Plate != nil {
		plate = *rec.Plate
	}

	var id int64
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
INSERT INTO access_events(identity_id, plate, action, occurred_at_us)
VALUES (?, ?, ?, ?);
`, identityID, plate, string(rec.Action), occurredUs)
		if err != nil {
			return fmt.Errorf("AppendEvent insert: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("AppendEvent last id: %w", err)
		}
		return nil
	})
	if err != nil {
		return types.AccessEvent{}, err
	}

	ev := types.AccessEvent{
		ID:         id,
		Action:     rec.Action,
		OccurredAt: time.UnixMicro(occurredUs).UTC(),
	}
	if rec.IdentityID != nil {
		v := *rec.IdentityID
		ev.IdentityID = &v
	}
	if rec.Plate != nil {
		v := *rec.Plate
		ev.Plate = &v
	}
	return ev, nil
}

func (s *AccessEventStore) ListEvents(ctx context.Context) ([]types.AccessEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT event_id, identity_id, plate, action, occurred_at_us
FROM access_events
ORDER BY occurred_at_us, event_id;
`)
	if err != nil {
		return nil, fmt.Errorf("ListEvents query: %w", err)
	}
	defer rows.Close()

	var out []types.AccessEvent
	for rows.Next() {
		var (
			ev         types.AccessEvent
			identityID sql.NullInt64
			plate      sql.NullString
			action     string
			occurredUs int64
		)
		if err := rows.Scan(&ev.ID, &identityID, &plate, &action, &occurredUs); err != nil {
			return nil, fmt.Errorf("ListEvents scan: %w", err)
		}
		if identityID.Valid {
			v := identityID.Int64
			ev.IdentityID = &v
		}
		if plate.Valid {
			v := plate.String
			ev.Plate = &v
		}
		ev.Action = types.Action(action)
		ev.OccurredAt = time.UnixMicro(occurredUs).UTC()
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListEvents rows: %w", err)
	}
	return out, nil
}
