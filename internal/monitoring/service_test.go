package monitoring_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/types"
	"github.com/BrandonDHaskell/gatewarden/internal/monitoring"
)

func TestService_ExposesGateMetrics(t *testing.T) {
	svc := monitoring.NewService()
	svc.ObserveAction(types.ActionForcedOpen)
	svc.ObserveCorrelation(types.ReasonAutomaticGrant)
	svc.ObservePending(3)

	mux := http.NewServeMux()
	svc.Setup(mux)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	text := string(body)

	for _, want := range []string{
		`gate_decision_total{action="FORCED_OPEN"} 1`,
		`gate_correlation_total{result="automatic_grant"} 1`,
		`gate_pending_detections 3`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected metrics output to contain %q", want)
		}
	}
}
