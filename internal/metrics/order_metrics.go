package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics содержит метрики оформления и отмены заказов.
type OrderMetrics struct {
	// Счётчики операций
	ordersPlaced    prometheus.Counter
	ordersFailed    prometheus.Counter
	ordersCancelled prometheus.Counter

	// Счётчики компенсаций
	compensationRuns        prometheus.Counter
	compensationStepsFailed prometheus.Counter

	// Гистограмма времени оформления
	placementDuration prometheus.Histogram
}

// NewOrderMetrics создаёт метрики в default registry.
func NewOrderMetrics() *OrderMetrics {
	return newOrderMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newOrderMetricsWithRegisterer(registerer prometheus.Registerer) *OrderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &OrderMetrics{
		ordersPlaced: registerCounter(registerer, prometheus.CounterOpts{
			Name: "rims_orders_placed_total",
			Help: "Total number of orders placed successfully",
		}),
		ordersFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "rims_orders_failed_total",
			Help: "Total number of order placements that failed during the mutation phase",
		}),
		ordersCancelled: registerCounter(registerer, prometheus.CounterOpts{
			Name: "rims_orders_cancelled_total",
			Help: "Total number of orders cancelled",
		}),
		compensationRuns: registerCounter(registerer, prometheus.CounterOpts{
			Name: "rims_order_compensation_runs_total",
			Help: "Total number of best-effort compensation sequences executed",
		}),
		compensationStepsFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "rims_order_compensation_steps_failed_total",
			Help: "Total number of compensation steps that themselves failed",
		}),
		placementDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "rims_order_placement_duration_seconds",
			Help:    "Duration of order placement attempts in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// RecordOrderPlaced инкрементирует счётчик успешно оформленных заказов.
func (m *OrderMetrics) RecordOrderPlaced() {
	m.ordersPlaced.Inc()
}

// RecordOrderFailed инкрементирует счётчик провалившихся оформлений.
func (m *OrderMetrics) RecordOrderFailed() {
	m.ordersFailed.Inc()
}

// RecordOrderCancelled инкрементирует счётчик отмен.
func (m *OrderMetrics) RecordOrderCancelled() {
	m.ordersCancelled.Inc()
}

// RecordCompensationRun фиксирует запуск компенсационной последовательности.
func (m *OrderMetrics) RecordCompensationRun() {
	m.compensationRuns.Inc()
}

// RecordCompensationStepFailed фиксирует сбой отдельного шага компенсации.
func (m *OrderMetrics) RecordCompensationStepFailed() {
	m.compensationStepsFailed.Inc()
}

// RecordPlacementDuration фиксирует длительность попытки оформления.
func (m *OrderMetrics) RecordPlacementDuration(d time.Duration) {
	m.placementDuration.Observe(d.Seconds())
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

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}
