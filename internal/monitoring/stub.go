package monitoring

import (
	"net/http"

	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/types"
)

type stubMetrics struct{}

var _ Metrics = (*stubMetrics)(nil)

func NewStub() *stubMetrics {
	return &stubMetrics{}
}

func (stubMetrics) Handler(h http.Handler) http.Handler { return h }
func (stubMetrics) ObserveAction(types.Action) {}
func (stubMetrics) ObserveCorrelation(string) {}
func (stubMetrics) ObservePending(int) {}
func (stubMetrics) Setup(*http.ServeMux) {}
