package service

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/types"
)

// ClaimResult says what ClaimFirst found for an identity's plates.
type ClaimResult int

const (
	ClaimNone ClaimResult = iota
	ClaimExpired
	ClaimFresh
)

// PendingRegistry stores camera detections awaiting confirmation, at most
// one per plate. Expiry is evaluated only when an entry is matched; stale
// entries stay visible until confirmed, superseded or cleared by a guard.
type PendingRegistry struct {
	mu      sync.Mutex
	entries map[string]types.PendingDetection
}

func NewPendingRegistry() *PendingRegistry {
	return &PendingRegistry{entries: make(map[string]types.PendingDetection)}
}

// Record inserts or replaces the entry for plate. Empty plates are
// ignored and reported with false.
func (r *PendingRegistry) Record(plate string, dir types.Direction, now time.Time) bool {
	if plate == "" {
		return false
	}
	r.mu.Lock()
	r.entries[plate] = types.PendingDetection{Plate: plate, DetectedAt: now, Direction: dir}
	r.mu.Unlock()
	return true
}

// PeekAll returns every stored entry, stale ones included, oldest first.
func (r *PendingRegistry) PeekAll() []types.PendingDetection {
	r.mu.Lock()
	out := make([]types.PendingDetection, 0, len(r.entries))
	for _, d := range r.entries {
		out = append(out, d)
	}
	r.mu.Unlock()

	slices.SortFunc(out, compareDetections)
	return out
}

// Consume removes and returns the entry for plate.
func (r *PendingRegistry) Consume(plate string) (types.PendingDetection, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.entries[plate]
	if ok {
		delete(r.entries, plate)
	}
	return d, ok
}

func (r *PendingRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// ClaimFirst picks the earliest-detected pending entry among plates (ties
// by plate) and removes it only if it is still fresh. A stale first
// candidate is left in place and ClaimExpired is returned without looking
// at later candidates.
func (r *PendingRegistry) ClaimFirst(plates []string, now time.Time, window time.Duration) (types.PendingDetection, ClaimResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var (
		first types.PendingDetection
		found bool
	)
	for _, p := range plates {
		d, ok := r.entries[p]
		if !ok {
			continue
		}
		if !found || compareDetections(d, first) < 0 {
			first, found = d, true
		}
	}

	switch {
	case !found:
		return types.PendingDetection{}, ClaimNone
	case !IsFresh(first, now, window):
		return first, ClaimExpired
	}
	delete(r.entries, first.Plate)
	return first, ClaimFresh
}

// IsFresh reports whether d was detected strictly within window of now.
func IsFresh(d types.PendingDetection, now time.Time, window time.Duration) bool {
	return d.DetectedAt.After(now.Add(-window))
}

func compareDetections(a, b types.PendingDetection) int {
	if c := a.DetectedAt.Compare(b.DetectedAt); c != 0 {
		return c
	}
	return strings.Compare(a.Plate, b.Plate)
}
