// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package fake

import "sync/atomic"

// Ledger tallies object lifecycle events across a test. It is shared
// by every Accountant constructed against it and is safe for
// concurrent use.
type Ledger struct {
	constructed atomic.Int64
	finalized   atomic.Int64
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger { return &Ledger{} }

// Constructed reports how many accountants were built.
func (l *Ledger) Constructed() int64 { return l.constructed.Load() }

// Finalized reports how many accountants were torn down.
func (l *Ledger) Finalized() int64 { return l.finalized.Load() }

// Outstanding reports constructed minus finalized.
func (l *Ledger) Outstanding() int64 { return l.constructed.Load() - l.finalized.Load() }

// Accountant is a payload fixture that reports its construction and
// teardown to a shared Ledger. Its Finalize method makes it eligible
// for in-place finalization.
type Accountant struct {
	ID     int
	ledger *Ledger
}

// NewAccountant records a construction against ledger.
func NewAccountant(ledger *Ledger, id int) Accountant {
	ledger.constructed.Add(1)
	return Accountant{ID: id, ledger: ledger}
}

// Finalize records the teardown. Calling it on a zero Accountant is a
// no-op, so double finalization of zeroed storage stays visible as a
// count mismatch rather than a crash.
func (a *Accountant) Finalize() {
	if a.ledger == nil {
		return
	}
	a.ledger.finalized.Add(1)
	a.ledger = nil
}
