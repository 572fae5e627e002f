package service_test

import (
	"sync"
	"testing"

	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/service"
	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/types"
	"github.com/BrandonDHaskell/gatewarden/internal/logging"
)

func TestBarrier_StartsClosedAndIsIdempotent(t *testing.T) {
	b := service.NewBarrier(logging.Discard())
	if b.Status() != types.BarrierClosed {
		t.Fatalf("expected initial CLOSED, got %s", b.Status())
	}

	b.Open()
	b.Open()
	if b.Status() != types.BarrierOpen {
		t.Errorf("expected OPEN, got %s", b.Status())
	}

	b.Close()
	b.Close()
	if b.Status() != types.BarrierClosed {
		t.Errorf("expected CLOSED, got %s", b.Status())
	}
}

func TestBarrier_ConcurrentTransitionsStayDefined(t *testing.T) {
	b := service.NewBarrier(logging.Discard())

	var wg sync.WaitGroup
	for i := range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				b.Open()
			} else {
				b.Close()
			}
		}()
	}
	wg.Wait()

	if st := b.Status(); st != types.BarrierOpen && st != types.BarrierClosed {
		t.Errorf("unexpected state %q", st)
	}
}
