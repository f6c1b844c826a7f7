package commission

import "time"

// MetricsCollector receives settlement telemetry. The prometheus-backed
// implementation lives in internal/metrics.
type MetricsCollector interface {
	RecordSettlement(serviceID uint, entries int, distributed float64)
	RecordUnconfigured(serviceID uint)
	RecordSettlementDuration(d time.Duration)
	RecordError(stage string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordSettlement(uint, int, float64)    {}
func (n *NoopMetricsCollector) RecordUnconfigured(uint)                {}
func (n *NoopMetricsCollector) RecordSettlementDuration(time.Duration) {}
func (n *NoopMetricsCollector) RecordError(string)                     {}
