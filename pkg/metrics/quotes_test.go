package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestQuoteMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewQuoteMetrics(reg)

	metrics.ObserveAction("select", true)
	metrics.ObserveAction("select", true)
	metrics.ObserveAction("advance", false)
	metrics.IncCommitted()
	metrics.ObserveCartSave(ResultSuccess, 120*time.Millisecond)
	metrics.ObserveCartSave(ResultFailure, 30*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "wizard_actions_total", map[string]string{"action": "select", "applied": "true"}); err != nil {
		t.Fatalf("fetch select: %v", err)
	} else if got != 2 {
		t.Fatalf("expected select=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "wizard_actions_total", map[string]string{"action": "advance", "applied": "false"}); err != nil {
		t.Fatalf("fetch advance: %v", err)
	} else if got != 1 {
		t.Fatalf("expected refused advance=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "cart_items_committed_total", nil); err != nil {
		t.Fatalf("fetch committed: %v", err)
	} else if got != 1 {
		t.Fatalf("expected committed=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "cart_saves_total", map[string]string{"result": ResultFailure}); err != nil {
		t.Fatalf("fetch failures: %v", err)
	} else if got != 1 {
		t.Fatalf("expected failure=1, got %f", got)
	}

	mf := findMetricFamily(mfs, "cart_save_duration_seconds")
	if mf == nil || len(mf.GetMetric()) != 1 {
		t.Fatalf("expected cart save histogram")
	}
	if count := mf.GetMetric()[0].GetHistogram().GetSampleCount(); count != 2 {
		t.Fatalf("expected 2 observations, got %d", count)
	}
}

func TestQuoteMetricsNilSafe(t *testing.T) {
	var m *QuoteMetrics
	m.ObserveAction("select", true)
	m.IncCommitted()
	m.ObserveCartSave(ResultSuccess, time.Second)

	unregistered := NewQuoteMetrics(nil)
	unregistered.ObserveAction("", false)
	unregistered.IncCommitted()
	unregistered.ObserveCartSave("", time.Second)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing labels %v", name, labels)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	matched := 0
	for _, pair := range pairs {
		if v, ok := want[pair.GetName()]; ok && v == pair.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}
