// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime observability for hioload-rc consumers: a metrics registry
// with dynamic debug probes, and a live-block leak tracker for tests
// and long-running services. Nothing here sits on the handle hot path;
// core packages stay instrumentation-free.
package control
