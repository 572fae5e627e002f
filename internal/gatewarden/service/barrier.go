package service

import (
	"log/slog"
	"sync/atomic"

	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/types"
)

// Barrier holds the physical open/closed state of the gate arm. It has no
// policy of its own; open and close are idempotent and last writer wins.
type Barrier struct {
	open   atomic.Bool
	logger *slog.Logger
}

func NewBarrier(logger *slog.Logger) *Barrier {
	return &Barrier{logger: logger}
}

func (b *Barrier) Open() {
	if !b.open.Swap(true) {
		b.logger.Info("barrier opening")
	}
}

func (b *Barrier) Close() {
	if b.open.Swap(false) {
		b.logger.Info("barrier closing")
	}
}

func (b *Barrier) Status() types.BarrierState {
	if b.open.Load() {
		return types.BarrierOpen
	}
	return types.BarrierClosed
}
