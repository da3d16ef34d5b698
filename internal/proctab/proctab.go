// Package proctab models the external process-table and scheduler
// collaborator (spec section 1): process states, the resident-set
// counter, and the locked iteration the victim selector scans.
// Grounded on accnt.Accnt_t's locked-struct accounting style and the
// state set pageswap.c checks directly on xv6's ptable.
package proctab

import (
	"sync"

	"swapkern/internal/addrspace"
)

// State is a process's scheduling state.
type State int

const (
	Unused State = iota
	Embryo
	Sleeping
	Runnable
	Running
	Zombie
)

//go:generate stringer -type=State

// eligible reports whether a process in this state may be chosen as an
// eviction victim, per spec section 4.D.
func (s State) eligible() bool {
	return s == Running || s == Runnable || s == Sleeping
}

// Process is one process's swap-relevant state: identity, scheduling
// state, address space, and resident-set counter.
type Process struct {
	PID   int
	State State
	// RSS is the count of this process's leaf entries currently
	// PRESENT=1 in physical memory (spec section 3). Swap-out
	// decrements it, swap-in increments it; the external allocation
	// and page-fault paths that bring pages in also mutate it.
	RSS int
	AS  *addrspace.AddressSpace
}

// Table is the external process-table collaborator: a locked
// collection of processes the victim selector scans in index order.
// Grounded on the ptable.lock around ptable.proc in pageswap.c.
type Table struct {
	mu    sync.Mutex
	procs []*Process
}

// New creates an empty process table.
func New() *Table {
	return &Table{}
}

// Add registers a process with the table. Processes are kept in the
// order added; the victim selector's pid tie-break does not depend on
// table order, only on the Process.PID field.
func (t *Table) Add(p *Process) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.procs = append(t.procs, p)
}

// Remove drops a process from the table, e.g. after teardown completes.
func (t *Table) Remove(pid int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, p := range t.procs {
		if p.PID == pid {
			t.procs = append(t.procs[:i], t.procs[i+1:]...)
			return
		}
	}
}

// Lock acquires the process-table lock. Callers must release it with
// Unlock; held only across the scan in spec section 4.D, never across
// block I/O (spec section 5's lock-ordering rule).
func (t *Table) Lock() {
	t.mu.Lock()
}

// Unlock releases the process-table lock.
func (t *Table) Unlock() {
	t.mu.Unlock()
}

// ForEach invokes fn for every registered process, in table order.
// Callers must hold the lock.
func (t *Table) ForEach(fn func(*Process)) {
	for _, p := range t.procs {
		fn(p)
	}
}

// Eligible reports whether p may be chosen as an eviction victim.
func Eligible(p *Process) bool {
	return p.State.eligible() && p.PID >= 1
}
