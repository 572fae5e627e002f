package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	prometheus_metrics "github.com/slok/go-http-metrics/metrics/prometheus"
	"github.com/slok/go-http-metrics/middleware"
	"github.com/slok/go-http-metrics/middleware/std"

	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/types"
)

const (
	metricsNamespace = "gate"
	actionLabel      = "action"
	resultLabel      = "result"
)

// Metrics is what the gate services report into.
type Metrics interface {
	Handler(h http.Handler) http.Handler
	ObserveAction(action types.Action)
	ObserveCorrelation(reason string)
	ObservePending(n int)
	Setup(mux *http.ServeMux)
}

type Service struct {
	registry      *prometheus.Registry
	middleware    middleware.Middleware
	decisionCount *prometheus.CounterVec
	correlCount   *prometheus.CounterVec
	pending       prometheus.Gauge
}

var _ Metrics = (*Service)(nil)

func NewService() *Service {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	decisionCount := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "decision_total",
			Help:      "Audit events appended, by action",
		},
		[]string{actionLabel},
	)
	reg.MustRegister(decisionCount)

	correlCount := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "correlation_total",
			Help:      "Badge presentations, by correlation result",
		},
		[]string{resultLabel},
	)
	reg.MustRegister(correlCount)

	pending := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "pending_detections",
		Help:      "Plate detections awaiting confirmation, stale ones included",
	})
	reg.MustRegister(pending)

	return &Service{
		registry: reg,
		middleware: middleware.New(middleware.Config{
			Service: metricsNamespace,
			Recorder: prometheus_metrics.NewRecorder(prometheus_metrics.Config{
				Registry: reg,
			}),
		}),
		decisionCount: decisionCount,
		correlCount:   correlCount,
		pending:       pending,
	}
}

// Handler wraps h with RED metrics; the handler id is the request path.
func (s *Service) Handler(h http.Handler) http.Handler {
	return std.Handler("", s.middleware, h)
}

func (s *Service) ObserveAction(action types.Action) {
	s.decisionCount.With(prometheus.Labels{actionLabel: string(action)}).Inc()
}

func (s *Service) ObserveCorrelation(reason string) {
	s.correlCount.With(prometheus.Labels{resultLabel: reason}).Inc()
}

func (s *Service) ObservePending(n int) {
	s.pending.Set(float64(n))
}

// Setup mounts /metrics on mux.
func (s *Service) Setup(mux *http.ServeMux) {
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry}))
}
