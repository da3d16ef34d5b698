package swap

import (
	"fmt"

	"swapkern/internal/mem"
	"swapkern/internal/proctab"
)

// eviction carries a victim through the two halves SwapOut is split
// into: prepareSwapOut (steps 1-3, 5, 6, 8 below) commits the victim's
// fate to the process table and address space synchronously, and
// finishSwapOut (step 4, 7) moves the actual bytes. Only the latter is
// ever dispatched to CheckPressure's worker pool.
type eviction struct {
	pid   int
	va    uintptr
	slot  int
	frame mem.Pa_t
	page  *mem.Bytepg_t
}

// SwapOut is component E's eviction path. Precondition: the leaf at va
// has PRESENT=1; violating this is a caller bug outside the section 7
// error taxonomy and panics directly, mirroring the teacher's bare
// "XXXPANIC" assertions for contract violations its own callers must
// never trigger. Used directly by any caller that wants one fully
// synchronous eviction; CheckPressure instead calls prepareSwapOut and
// finishSwapOut separately so it can overlap the I/O of a whole batch.
func (s *Subsystem) SwapOut(p *proctab.Process, va uintptr) error {
	ev, err := s.prepareSwapOut(p, va)
	if err != nil {
		return err
	}
	s.finishSwapOut(ev)
	return nil
}

// prepareSwapOut performs every step of spec section 4.E's swap-out
// that touches the leaf entry, the process table, or slot bookkeeping
// (steps 1-3, 5, 6, 8): it must run synchronously with respect to
// victim selection, since selection re-scans the same leaves and the
// same process's rss. Once prepareSwapOut returns, the leaf is already
// non-present -- no later selection can pick va again -- and p.RSS
// already reflects the eviction, so this must never run concurrently
// with another prepareSwapOut against the same process or address
// space.
func (s *Subsystem) prepareSwapOut(p *proctab.Process, va uintptr) (*eviction, error) {
	pte, ok := p.AS.WalkNoAlloc(va)
	if !ok || !mem.Present(*pte) {
		panic("swap_out: precondition violated: leaf not present at va")
	}

	// 1. resolve the physical frame from the leaf.
	frame := mem.Frame(*pte)

	// 2. allocate a slot; fail if none (soft NoSlot, this eviction is
	// abandoned, leaf and rss untouched).
	slot, ok := s.Slots.Allocate()
	if !ok {
		return nil, newErr(NoSlot, "swap_out: no free slot for pid %d va %#x", p.PID, va)
	}

	// 3. save the leaf's low 12 bits into the slot descriptor.
	s.Slots.SavePerm(slot, mem.Perm(*pte))
	page := s.frames.Dmap(frame)

	// 5. rewrite the leaf via encode_swapped.
	*pte = mem.EncodeSwapped(uint32(slot))

	// 6. invalidate the TLB for the address space.
	p.AS.Invalidate(va)

	// 8. decrement process.rss.
	p.RSS--

	return &eviction{pid: p.PID, va: va, slot: slot, frame: frame, page: page}, nil
}

// finishSwapOut performs the remaining, purely I/O-bound steps of
// spec section 4.E's swap-out (step 4's write_page and step 7's frame
// release, plus telemetry): it reads and writes only ev's own frame
// and slot, the frame allocator, and the disk, none of which is
// shared with another victim's eviction or with the next victim
// selection. Safe to run concurrently with other finishSwapOut calls
// and with the next prepareSwapOut.
func (s *Subsystem) finishSwapOut(ev *eviction) {
	// 4. write_page(slot, frame).
	if err := WritePage(s.disk, ev.slot, ev.page); err != nil {
		// The leaf already points at this slot; a write failure here
		// is not the soft, transient case step 2's NoSlot covers --
		// the backing store itself is broken, which spec section 7
		// has no recovery policy for.
		panic(fmt.Sprintf("swap_out: write_page failed for pid %d slot %d: %v", ev.pid, ev.slot, err))
	}

	// 7. release the physical frame back to the external allocator.
	s.frames.FreeFrame(ev.frame)

	s.record(func(r Recorder) { r.RecordEviction(ev.pid, ev.slot, ev.va, mem.PGSIZE) })
}

// SwapIn is component E's restore path, invoked by the page-fault
// handler on a non-present, swapped leaf. Precondition: PRESENT=0;
// checked implicitly by DecodeSwapped/InvalidSlot below, which also
// cover the leaf-has-no-SWAPPED-bit (NotSwapped) and
// decoded-slot-is-bogus (InvalidSlot) fatal cases of spec section 7.
func (s *Subsystem) SwapIn(p *proctab.Process, va uintptr) error {
	pte, ok := p.AS.WalkNoAlloc(va)
	if !ok {
		panic("swap_in: precondition violated: no leaf at va")
	}

	// 1. decode_swapped -> slot; assert slot is occupied.
	slot, wasSwapped := mem.DecodeSwapped(*pte)
	if !wasSwapped {
		kpanic(NotSwapped, "swap_in: pte at %#x has no SWAPPED bit set", va)
	}
	if slot >= NSWAPSLOTS || !s.Slots.IsOccupied(int(slot)) {
		kpanic(InvalidSlot, "swap_in: decoded invalid or free slot %d", slot)
	}

	// 2. allocate a fresh physical frame; fail with NoFrame upward.
	frame, ok := s.frames.AllocateFrame()
	if !ok {
		return newErr(NoFrame, "swap_in: no free frame for pid %d va %#x", p.PID, va)
	}

	// 3. read_page(slot, frame).
	page := s.frames.Dmap(frame)
	if err := ReadPage(s.disk, int(slot), page); err != nil {
		s.frames.FreeFrame(frame)
		return err
	}

	// 4. rebuild the leaf: physical_address(frame) | permissions | PRESENT.
	perm := s.Slots.LoadPerm(int(slot))
	*pte = mem.BuildPresent(frame, perm)

	// 5. release(slot).
	s.Slots.Release(int(slot))

	// 6. invalidate the TLB for the address space.
	p.AS.Invalidate(va)

	// 7. increment process.rss.
	p.RSS++

	s.record(func(r Recorder) { r.RecordFaultIn(p.PID, int(slot), va, mem.PGSIZE) })
	return nil
}
