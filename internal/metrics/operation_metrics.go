package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OperationMetrics содержит метрики для мутирующих операций хранилища.
type OperationMetrics struct {
	// Счётчики исходов по операциям
	committed  *prometheus.CounterVec
	rolledBack *prometheus.CounterVec

	// Гистограмма времени выполнения операции
	duration *prometheus.HistogramVec

	// Счётчики событий склада
	stockRejections prometheus.Counter
	eventsPublished prometheus.Counter
}

// NewOperationMetrics создаёт новый экземпляр метрик операций.
func NewOperationMetrics() *OperationMetrics {
	return newOperationMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newOperationMetricsWithRegisterer(registerer prometheus.Registerer) *OperationMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &OperationMetrics{
		committed: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "storefront_operations_committed_total",
			Help: "Total number of operations committed",
		}, []string{"operation"}),
		rolledBack: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "storefront_operations_rolled_back_total",
			Help: "Total number of operations rolled back",
		}, []string{"operation"}),
		duration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "storefront_operation_duration_seconds",
			Help:    "Duration of storefront operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"operation"}),
		stockRejections: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_stock_rejections_total",
			Help: "Total number of operations rejected due to insufficient stock",
		}),
		eventsPublished: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_mutation_events_published_total",
			Help: "Total number of mutation events published",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordCommitted увеличивает счётчик зафиксированных операций.
func (m *OperationMetrics) RecordCommitted(operation string) {
	m.committed.WithLabelValues(operation).Inc()
}

// RecordRolledBack увеличивает счётчик откатившихся операций.
func (m *OperationMetrics) RecordRolledBack(operation string) {
	m.rolledBack.WithLabelValues(operation).Inc()
}

// RecordDuration записывает время выполнения операции.
func (m *OperationMetrics) RecordDuration(operation string, duration time.Duration) {
	m.duration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordStockRejection увеличивает счётчик отказов из-за нехватки остатка.
func (m *OperationMetrics) RecordStockRejection() {
	m.stockRejections.Inc()
}

// RecordEventPublished увеличивает счётчик опубликованных событий.
func (m *OperationMetrics) RecordEventPublished() {
	m.eventsPublished.Inc()
}
