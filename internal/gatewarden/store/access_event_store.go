package store

import (
	"context"
	"time"

	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/types"
)

// AccessEventRecord is an audit entry before it has been assigned an id.
type AccessEventRecord struct {
	IdentityID *int64
	Plate      *string
	Action     types.Action
	OccurredAt time.Time
}

// AccessEventStore persists access actions as an append-only audit log.
// Events are never updated or deleted.
type AccessEventStore interface {
	AppendEvent(ctx context.Context, rec AccessEventRecord) (types.AccessEvent, error)
	// ListEvents returns the full history ordered by (OccurredAt, ID).
	ListEvents(ctx context.Context) ([]types.AccessEvent, error)
}
