package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNopMetrics_AllMethodsAreSafe(t *testing.T) {
	n := NewNop()

	// Must never panic; there is nothing else to observe.
	n.IncrementAssignment("checkout-button", "control", "store-1")
	n.IncrementAssignmentReuse("checkout-button", "control")
	n.IncrementExposure("checkout-button", "control", "checkout-page", "store-1")
	n.IncrementExposureDeduplicated("checkout-button", "checkout-page")
	n.IncrementGuardrailBreach("checkout-button", "error_rate", 0.05)
	n.RecordCatalogReload(3)
	n.IncrementCatalogReloadFailure()
}

func TestPrometheusCollector_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg, "")

	p.IncrementAssignment("checkout-button", "control", "store-1")
	p.IncrementAssignment("checkout-button", "control", "store-1")
	p.IncrementExposure("checkout-button", "control", "checkout-page", "store-1")
	p.IncrementGuardrailBreach("checkout-button", "error_rate", 0.05)
	p.RecordCatalogReload(3)

	require.InEpsilon(t, 2.0,
		testutil.ToFloat64(p.assignments.WithLabelValues("checkout-button", "control", "store-1")), 1e-9)
	require.InEpsilon(t, 1.0,
		testutil.ToFloat64(p.exposures.WithLabelValues("checkout-button", "control", "checkout-page", "store-1")), 1e-9)
	require.InEpsilon(t, 1.0,
		testutil.ToFloat64(p.guardrailBreaches.WithLabelValues("checkout-button", "error_rate", "0.05")), 1e-9)
	require.InEpsilon(t, 3.0, testutil.ToFloat64(p.catalogSize), 1e-9)
}

func TestPrometheusCollector_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg, "custom")

	// Repeated emission must not re-register (MustRegister would panic).
	for range 10 {
		p.IncrementAssignmentReuse("checkout-button", "control")
	}

	require.InEpsilon(t, 10.0,
		testutil.ToFloat64(p.assignmentReuse.WithLabelValues("checkout-button", "control")), 1e-9)
}
