package swap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"swapkern/internal/addrspace"
	"swapkern/internal/blockdev"
	"swapkern/internal/mem"
	"swapkern/internal/proctab"
)

func newTestSubsystem(t *testing.T, numFrames int) (*Subsystem, *mem.SimpleFrameAllocator) {
	t.Helper()
	frames := mem.NewSimpleFrameAllocator(0, numFrames)
	dev := blockdev.NewMemDisk(SwapStart + blocksPerPage*(NSWAPSLOTS+1))
	sub := New(Config{Disk: dev, Frames: frames, Concurrency: 1})
	sub.Init()
	return sub, frames
}

func presentProcess(t *testing.T, frames *mem.SimpleFrameAllocator, pid int) (*proctab.Process, mem.Pa_t) {
	t.Helper()
	as := addrspace.New(uintptr(mem.PGSIZE))
	frame, ok := frames.AllocateFrame()
	require.True(t, ok)
	as.Map(0, mem.BuildPresent(frame, mem.PTE_P|mem.PTE_W|mem.PTE_U))
	return &proctab.Process{PID: pid, State: proctab.Runnable, AS: as, RSS: 1}, frame
}

func TestSwapOutRewritesLeafAndDecrementsRSS(t *testing.T) {
	sub, frames := newTestSubsystem(t, 4)
	p, _ := presentProcess(t, frames, 1)

	require.NoError(t, sub.SwapOut(p, 0))

	pte, ok := p.AS.WalkNoAlloc(0)
	require.True(t, ok)
	require.False(t, mem.Present(*pte))
	_, wasSwapped := mem.DecodeSwapped(*pte)
	require.True(t, wasSwapped)
	require.Equal(t, 0, p.RSS)
	require.Equal(t, 4, frames.FreeFrameCount(), "the evicted frame must be returned to the allocator")
	require.Equal(t, 1, p.AS.Shootdowns())
}

func TestSwapInRestoresLeafAndIncrementsRSS(t *testing.T) {
	sub, frames := newTestSubsystem(t, 4)
	p, _ := presentProcess(t, frames, 1)

	require.NoError(t, sub.SwapOut(p, 0))
	require.NoError(t, sub.SwapIn(p, 0))

	pte, ok := p.AS.WalkNoAlloc(0)
	require.True(t, ok)
	require.True(t, mem.Present(*pte))
	require.Equal(t, 1, p.RSS)
	require.Equal(t, mem.PTE_P|mem.PTE_W|mem.PTE_U, mem.Perm(*pte))
}

func TestSwapRoundTripPreservesPageBytes(t *testing.T) {
	sub, frames := newTestSubsystem(t, 8)
	p, frame := presentProcess(t, frames, 1)

	page := frames.Dmap(frame)
	for i := range page {
		page[i] = byte(i % 256)
	}

	require.NoError(t, sub.SwapOut(p, 0))

	// allocate and dirty several other frames between the out and the in,
	// as the round-trip property in spec section 8 scenario 5 requires.
	for i := 0; i < 3; i++ {
		noisy, ok := frames.AllocateFrame()
		require.True(t, ok)
		np := frames.Dmap(noisy)
		for j := range np {
			np[j] = 0xFF
		}
	}

	require.NoError(t, sub.SwapIn(p, 0))

	pte, _ := p.AS.WalkNoAlloc(0)
	got := frames.Dmap(mem.Frame(*pte))
	for i := range got {
		require.Equal(t, byte(i%256), got[i], "byte %d must survive the round trip", i)
	}
}

func TestSwapOutNoFreeSlotIsSoftAndLeavesPTEUnchanged(t *testing.T) {
	sub, frames := newTestSubsystem(t, NSWAPSLOTS+2)
	p, _ := presentProcess(t, frames, 1)

	// exhaust every slot first.
	for i := 0; i < NSWAPSLOTS; i++ {
		_, ok := sub.Slots.Allocate()
		require.True(t, ok)
	}

	before, _ := p.AS.WalkNoAlloc(0)
	beforeVal := *before

	err := sub.SwapOut(p, 0)
	require.Error(t, err)
	var kerr *KernelError
	require.ErrorAs(t, err, &kerr)
	require.Equal(t, NoSlot, kerr.Kind)

	after, _ := p.AS.WalkNoAlloc(0)
	require.Equal(t, beforeVal, *after, "a failed swap_out must leave the target PTE unchanged")
}

func TestSwapInNoFreeFrameIsSoft(t *testing.T) {
	sub, frames := newTestSubsystem(t, 1)
	p, _ := presentProcess(t, frames, 1)
	require.NoError(t, sub.SwapOut(p, 0))

	// the one frame is now free again (returned by swap_out), consume it
	// so swap_in has nothing to allocate.
	_, ok := frames.AllocateFrame()
	require.True(t, ok)

	err := sub.SwapIn(p, 0)
	require.Error(t, err)
	var kerr *KernelError
	require.ErrorAs(t, err, &kerr)
	require.Equal(t, NoFrame, kerr.Kind)
}

func TestSwapInNotSwappedLeafHalts(t *testing.T) {
	sub, frames := newTestSubsystem(t, 2)
	p, _ := presentProcess(t, frames, 1)
	require.Panics(t, func() { _ = sub.SwapIn(p, 0) })
}

func TestSwapInInvalidSlotHalts(t *testing.T) {
	sub, _ := newTestSubsystem(t, 2)
	as := addrspace.New(uintptr(mem.PGSIZE))
	as.Map(0, mem.EncodeSwapped(uint32(NSWAPSLOTS+5)))
	p := &proctab.Process{PID: 1, State: proctab.Runnable, AS: as}

	require.Panics(t, func() { _ = sub.SwapIn(p, 0) })
}
