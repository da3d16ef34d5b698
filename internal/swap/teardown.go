package swap

import (
	"swapkern/internal/mem"
	"swapkern/internal/proctab"
)

// ReleaseAllSwap is component G, called by the process-exit path
// before an address space is dismantled: it walks every virtual page
// within p's size and returns any swapped slot it finds to the slot
// table, silently skipping unmapped addresses. Grounded on
// vm.Uvmfree's "release everything before the pmap itself goes away"
// ordering.
func (s *Subsystem) ReleaseAllSwap(p *proctab.Process) {
	pgsize := uintptr(mem.PGSIZE)
	size := p.AS.VirtualSize()
	for va := uintptr(0); va < size; va += pgsize {
		pte, ok := p.AS.WalkNoAlloc(va)
		if !ok {
			continue
		}
		slot, wasSwapped := mem.DecodeSwapped(*pte)
		if !wasSwapped {
			continue
		}
		s.Slots.Release(int(slot))
	}
}
