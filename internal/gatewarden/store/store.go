package store

import (
	"context"
	"errors"

	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/types"
)

// ErrNotFound is returned when a key does not resolve to a record.
var ErrNotFound = errors.New("record not found")

// RecordStore is the keyed reference data the gate reads: vehicles by
// plate and identities by id.
type RecordStore interface {
	FindVehicle(ctx context.Context, plate string) (types.Vehicle, error)
	ListVehicles(ctx context.Context) ([]types.Vehicle, error)
	SaveVehicle(ctx context.Context, v types.Vehicle) error
	DeleteVehicle(ctx context.Context, plate string) error

	FindIdentity(ctx context.Context, id int64) (types.Identity, error)
	ListIdentities(ctx context.Context) ([]types.Identity, error)
	// CreateIdentity assigns a new id and returns the stored identity.
	CreateIdentity(ctx context.Context, ident types.Identity) (types.Identity, error)
	SaveIdentity(ctx context.Context, ident types.Identity) error
	DeleteIdentity(ctx context.Context, id int64) error
}

// SettingsStore persists the singleton gate settings. GetSettings returns
// ErrNotFound until settings have been written once.
type SettingsStore interface {
	GetSettings(ctx context.Context) (types.GateSettings, error)
	PutSettings(ctx context.Context, s types.GateSettings) error
}
