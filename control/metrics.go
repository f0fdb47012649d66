// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics collector for resource-ownership monitoring.
// Exposes counters in a thread-safe map with dynamic registration and
// implements the api.Debug probe contract.

package control

import (
	"sync"
	"time"

	"github.com/momentics/hioload-rc/api"
)

// Ensure compile-time interface compliance.
var _ api.Debug = (*MetricsRegistry)(nil)

// MetricsRegistry holds mutable metrics and registered debug probes.
type MetricsRegistry struct {
	mu      sync.RWMutex
	metrics map[string]any
	probes  map[string]func() any
	updated time.Time
}

// NewMetricsRegistry creates an empty registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		metrics: make(map[string]any),
		probes:  make(map[string]func() any),
	}
}

// Set sets or updates a metric key.
func (mr *MetricsRegistry) Set(key string, value any) {
	mr.mu.Lock()
	mr.metrics[key] = value
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// GetSnapshot returns the latest metrics.
func (mr *MetricsRegistry) GetSnapshot() map[string]any {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	out := make(map[string]any, len(mr.metrics))
	for k, v := range mr.metrics {
		out[k] = v
	}
	return out
}

// RegisterProbe inserts a named debug hook, evaluated on DumpState.
func (mr *MetricsRegistry) RegisterProbe(name string, fn func() any) {
	mr.mu.Lock()
	mr.probes[name] = fn
	mr.mu.Unlock()
}

// DumpState merges stored metrics with live probe output.
func (mr *MetricsRegistry) DumpState() map[string]any {
	mr.mu.RLock()
	probes := make(map[string]func() any, len(mr.probes))
	for k, fn := range mr.probes {
		probes[k] = fn
	}
	out := make(map[string]any, len(mr.metrics)+len(probes))
	for k, v := range mr.metrics {
		out[k] = v
	}
	mr.mu.RUnlock()

	for k, fn := range probes {
		out[k] = fn()
	}
	return out
}

// LastUpdated reports when a metric was last written.
func (mr *MetricsRegistry) LastUpdated() time.Time {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	return mr.updated
}
