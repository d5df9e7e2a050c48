package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewOrderMetrics_CollectorsPresent(t *testing.T) {
	m := newOrderMetricsWithRegisterer(prometheus.NewRegistry())

	if m.ordersPlaced == nil {
		t.Error("ordersPlaced counter should not be nil")
	}
	if m.ordersFailed == nil {
		t.Error("ordersFailed counter should not be nil")
	}
	if m.ordersCancelled == nil {
		t.Error("ordersCancelled counter should not be nil")
	}
	if m.compensationRuns == nil {
		t.Error("compensationRuns counter should not be nil")
	}
	if m.compensationStepsFailed == nil {
		t.Error("compensationStepsFailed counter should not be nil")
	}
	if m.placementDuration == nil {
		t.Error("placementDuration histogram should not be nil")
	}
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			return metric.GetCounter().GetValue()
		}
	}
	t.Fatalf("metric %q not found", name)
	return 0
}

func histogramSampleCount(t *testing.T, reg *prometheus.Registry, name string) uint64 {
	t.Helper()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	for _, family := range families {
		if family.GetName() != name || family.GetType() != dto.MetricType_HISTOGRAM {
			continue
		}
		for _, metric := range family.GetMetric() {
			return metric.GetHistogram().GetSampleCount()
		}
	}
	t.Fatalf("histogram %q not found", name)
	return 0
}

func TestOrderMetrics_Recording(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := newOrderMetricsWithRegisterer(reg)

	m.RecordOrderPlaced()
	m.RecordOrderPlaced()
	m.RecordOrderFailed()
	m.RecordOrderCancelled()
	m.RecordCompensationRun()
	m.RecordCompensationStepFailed()
	m.RecordPlacementDuration(42 * time.Millisecond)

	if got := counterValue(t, reg, "rims_orders_placed_total"); got != 2 {
		t.Errorf("ordersPlaced = %v, want 2", got)
	}
	if got := counterValue(t, reg, "rims_orders_failed_total"); got != 1 {
		t.Errorf("ordersFailed = %v, want 1", got)
	}
	if got := counterValue(t, reg, "rims_orders_cancelled_total"); got != 1 {
		t.Errorf("ordersCancelled = %v, want 1", got)
	}
	if got := counterValue(t, reg, "rims_order_compensation_runs_total"); got != 1 {
		t.Errorf("compensationRuns = %v, want 1", got)
	}
	if got := counterValue(t, reg, "rims_order_compensation_steps_failed_total"); got != 1 {
		t.Errorf("compensationStepsFailed = %v, want 1", got)
	}
	if got := histogramSampleCount(t, reg, "rims_order_placement_duration_seconds"); got != 1 {
		t.Errorf("placementDuration samples = %v, want 1", got)
	}
}

func TestOrderMetrics_DoubleRegistrationReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	first := newOrderMetricsWithRegisterer(reg)
	second := newOrderMetricsWithRegisterer(reg)

	first.RecordOrderPlaced()
	second.RecordOrderPlaced()

	if got := counterValue(t, reg, "rims_orders_placed_total"); got != 2 {
		t.Errorf("expected shared counter with value 2, got %v", got)
	}
}
