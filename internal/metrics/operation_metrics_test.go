package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewOperationMetrics(t *testing.T) {
	metrics := newOperationMetricsWithRegisterer(prometheus.NewRegistry())

	if metrics == nil {
		t.Fatal("newOperationMetricsWithRegisterer should not return nil")
	}
	if metrics.committed == nil {
		t.Error("committed counter vec should not be nil")
	}
	if metrics.rolledBack == nil {
		t.Error("rolledBack counter vec should not be nil")
	}
	if metrics.duration == nil {
		t.Error("duration histogram vec should not be nil")
	}
	if metrics.stockRejections == nil {
		t.Error("stockRejections counter should not be nil")
	}
	if metrics.eventsPublished == nil {
		t.Error("eventsPublished counter should not be nil")
	}
}

func TestOperationMetrics_DoubleRegistrationReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	first := newOperationMetricsWithRegisterer(reg)
	second := newOperationMetricsWithRegisterer(reg)

	first.RecordCommitted("create_order")
	second.RecordCommitted("create_order")

	counter, err := first.committed.GetMetricWithLabelValues("create_order")
	if err != nil {
		t.Fatalf("get counter: %v", err)
	}

	var m dto.Metric
	if err := counter.Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	if got := m.GetCounter().GetValue(); got != 2 {
		t.Fatalf("expected shared counter value 2, got %v", got)
	}
}

func TestOperationMetrics_Records(t *testing.T) {
	metrics := newOperationMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.RecordRolledBack("delete_order")
	metrics.RecordDuration("delete_order", 25*time.Millisecond)
	metrics.RecordStockRejection()
	metrics.RecordEventPublished()

	var m dto.Metric
	if err := metrics.stockRejections.Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	if got := m.GetCounter().GetValue(); got != 1 {
		t.Fatalf("expected 1 stock rejection, got %v", got)
	}
}
