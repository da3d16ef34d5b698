package swap

import (
	"swapkern/internal/addrspace"
	"swapkern/internal/mem"
	"swapkern/internal/proctab"
)

// SelectVictimProcess is component D's process-selection step: under
// the process-table lock, pick the eligible process with the largest
// RSS, breaking ties by smallest PID. Returns ok=false if no process
// is eligible. Grounded on pageswap.c's find_victim_proc.
func SelectVictimProcess(table *proctab.Table) (*proctab.Process, bool) {
	table.Lock()
	defer table.Unlock()

	var victim *proctab.Process
	table.ForEach(func(p *proctab.Process) {
		if !proctab.Eligible(p) {
			return
		}
		switch {
		case victim == nil:
			victim = p
		case p.RSS > victim.RSS:
			victim = p
		case p.RSS == victim.RSS && p.PID < victim.PID:
			victim = p
		}
	})
	if victim == nil {
		return nil, false
	}
	return victim, true
}

// SelectVictimPage is component D's page-selection step, the classical
// second-chance/clock approximation localized to one process: first
// pass looks for a present, not-recently-accessed leaf; if none is
// found, a reset pass clears every present leaf's accessed bit and a
// second pass retries. Returns ok=false only if the process has no
// present leaves at all. Grounded on pageswap.c's find_victim_page.
func SelectVictimPage(as addrspace.Walker) (uintptr, bool) {
	pgsize := uintptr(mem.PGSIZE)
	size := as.VirtualSize()

	if va, ok := scanForVictim(as, size, pgsize); ok {
		return va, true
	}

	for va := uintptr(0); va < size; va += pgsize {
		pte, ok := as.WalkNoAlloc(va)
		if ok && mem.Present(*pte) {
			*pte = mem.ClearAccessed(*pte)
		}
	}

	return scanForVictim(as, size, pgsize)
}

func scanForVictim(as addrspace.Walker, size, pgsize uintptr) (uintptr, bool) {
	for va := uintptr(0); va < size; va += pgsize {
		pte, ok := as.WalkNoAlloc(va)
		if ok && mem.Present(*pte) && !mem.Accessed(*pte) {
			return va, true
		}
	}
	return 0, false
}
