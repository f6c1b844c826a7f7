// Package metrics exposes settlement telemetry through prometheus.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SettlementMetrics implements the commission engine's collector on top
// of promauto-registered collectors.
type SettlementMetrics struct {
	SettlementsTotal      prometheus.CounterVec
	LedgerEntriesTotal    prometheus.CounterVec
	DistributedTotal      prometheus.CounterVec
	UnconfiguredTotal     prometheus.CounterVec
	SettlementDuration    prometheus.Histogram
	SettlementErrorsTotal prometheus.CounterVec
}

func NewSettlementMetrics() *SettlementMetrics {
	return &SettlementMetrics{
		SettlementsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commission_settlements_total",
				Help: "Total number of settled transactions",
			},
			[]string{"service_id"},
		),

		LedgerEntriesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commission_ledger_entries_total",
				Help: "Total number of commission ledger entries written",
			},
			[]string{"service_id"},
		),

		DistributedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commission_distributed_amount_total",
				Help: "Total commission amount distributed",
			},
			[]string{"service_id"},
		),

		UnconfiguredTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commission_unconfigured_total",
				Help: "Transactions settled with zero commission because no scheme in the chain configures the service",
			},
			[]string{"service_id"},
		),

		SettlementDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "commission_settlement_duration_seconds",
				Help:    "Time spent resolving and distributing commission per transaction",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
		),

		SettlementErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commission_settlement_errors_total",
				Help: "Settlement failures by stage",
			},
			[]string{"stage"},
		),
	}
}

func (m *SettlementMetrics) RecordSettlement(serviceID uint, entries int, distributed float64) {
	label := strconv.FormatUint(uint64(serviceID), 10)
	m.SettlementsTotal.WithLabelValues(label).Inc()
	m.LedgerEntriesTotal.WithLabelValues(label).Add(float64(entries))
	m.DistributedTotal.WithLabelValues(label).Add(distributed)
}

func (m *SettlementMetrics) RecordUnconfigured(serviceID uint) {
	m.UnconfiguredTotal.WithLabelValues(strconv.FormatUint(uint64(serviceID), 10)).Inc()
}

func (m *SettlementMetrics) RecordSettlementDuration(d time.Duration) {
	m.SettlementDuration.Observe(d.Seconds())
}

func (m *SettlementMetrics) RecordError(stage string) {
	m.SettlementErrorsTotal.WithLabelValues(stage).Inc()
}
