package memory

import (
	"context"
	"sync"
	"time"

	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/store"
	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/types"
)

// AccessEventStore is an in-memory append-only log of access actions.
// It is intended for use in tests and dev environments.
type AccessEventStore struct {
	mu     sync.Mutex
	nextID int64
	events []types.AccessEvent
}

func NewAccessEventStore() *AccessEventStore {
	return &AccessEventStore{nextID: 1}
}

func (s *AccessEventStore) AppendEvent(_ context.Context, rec store.AccessEventRecord) (types.AccessEvent, error) {
	if rec.OccurredAt.IsZero() {
		rec.OccurredAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ev := types.AccessEvent{
		ID:         s.nextID,
		IdentityID: cloneInt64(rec.IdentityID),
		Plate:      cloneString(rec.Plate),
		Action:     rec.Action,
		OccurredAt: rec.OccurredAt.UTC().Truncate(time.Microsecond),
	}
	s.nextID++
	s.events = append(s.events, ev)
	return cloneEvent(ev), nil
}

// ListEvents returns a copy of all events. Appends are stamped by the
// caller, so the slice is sorted here rather than assumed.
func (s *AccessEventStore) ListEvents(_ context.Context) ([]types.AccessEvent, error) {
	return s.Events(), nil
}

// Events returns a copy of all recorded events ordered by time.
func (s *AccessEventStore) Events() []types.AccessEvent {
	s.mu.Lock()
	out := make([]types.AccessEvent, len(s.events))
	for i, ev := range s.events {
		out[i] = cloneEvent(ev)
	}
	s.mu.Unlock()

	sortEvents(out)
	return out
}

func cloneEvent(ev types.AccessEvent) types.AccessEvent {
	ev.IdentityID = cloneInt64(ev.IdentityID)
	ev.Plate = cloneString(ev.Plate)
	return ev
}

func cloneInt64(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
