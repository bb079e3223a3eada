package metrics

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestStoreMetricsExportsCountersAndGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewStoreMetrics(reg)

	metrics.ObserveTransition("add_to_cart", "ok")
	metrics.ObserveTransition("add_to_cart", "ok")
	metrics.ObserveTransition("remove_from_cart", "error")
	metrics.IncOrderPlaced()
	metrics.SetCartGauges(3, 42.5)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "cart_transitions_total", "event", "add_to_cart"); err != nil {
		t.Fatalf("fetch transitions: %v", err)
	} else if got != 2 {
		t.Fatalf("expected transitions=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "cart_transitions_total", "outcome", "error"); err != nil {
		t.Fatalf("fetch errored transitions: %v", err)
	} else if got != 1 {
		t.Fatalf("expected errored transitions=1, got %f", got)
	}

	if got, err := fetchGaugeValue(mfs, "cart_line_items"); err != nil {
		t.Fatalf("fetch lines gauge: %v", err)
	} else if got != 3 {
		t.Fatalf("expected 3 lines, got %f", got)
	}

	if got, err := fetchGaugeValue(mfs, "cart_total_amount"); err != nil {
		t.Fatalf("fetch total gauge: %v", err)
	} else if got != 42.5 {
		t.Fatalf("expected total 42.5, got %f", got)
	}
}

func TestStoreMetricsNilSafe(t *testing.T) {
	var metrics *StoreMetrics
	metrics.ObserveTransition("add_to_cart", "ok")
	metrics.IncOrderPlaced()
	metrics.SetCartGauges(1, 1)

	unregistered := NewStoreMetrics(nil)
	unregistered.ObserveTransition("add_to_cart", "ok")
	unregistered.SetCartGauges(1, 1)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchGaugeValue(mfs []*dto.MetricFamily, name string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	if len(mf.GetMetric()) == 0 {
		return 0, fmt.Errorf("metric %q has no samples", name)
	}
	return mf.GetMetric()[0].GetGauge().GetValue(), nil
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
