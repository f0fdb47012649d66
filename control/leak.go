// control/leak.go
// Author: momentics <momentics@gmail.com>
//
// Live-resource leak tracking. A tracker holds one label per block that
// should eventually be released; whatever is still in the set at check
// time is a leak. Meant for tests and shutdown paths, not the hot path.

package control

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/momentics/hioload-rc/api"
)

// LeakTracker records which labeled resources are still alive.
type LeakTracker struct {
	live mapset.Set[string]
}

// NewLeakTracker creates an empty tracker.
func NewLeakTracker() *LeakTracker {
	return &LeakTracker{live: mapset.NewSet[string]()}
}

// Track marks the labeled resource live. Typically called where the
// owning handle is created.
func (lt *LeakTracker) Track(label string) {
	lt.live.Add(label)
}

// Done marks the labeled resource released. Typically called from the
// resource's deleter or finalizer.
func (lt *LeakTracker) Done(label string) {
	lt.live.Remove(label)
}

// Count reports how many tracked resources are still live.
func (lt *LeakTracker) Count() int {
	return lt.live.Cardinality()
}

// Live returns the labels of all still-live resources.
func (lt *LeakTracker) Live() []string {
	return lt.live.ToSlice()
}

// Check returns nil when nothing is live, or a structured error naming
// the leaked labels.
func (lt *LeakTracker) Check() error {
	leaked := lt.live.ToSlice()
	if len(leaked) == 0 {
		return nil
	}
	return api.NewError(api.ErrCodeInternal, "leaked resources").
		WithContext("count", len(leaked)).
		WithContext("labels", leaked)
}

// Probe adapts the tracker for MetricsRegistry.RegisterProbe.
func (lt *LeakTracker) Probe() func() any {
	return func() any { return lt.Live() }
}
