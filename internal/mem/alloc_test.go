package mem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimpleFrameAllocatorExhaustion(t *testing.T) {
	a := NewSimpleFrameAllocator(0, 4)
	require.Equal(t, 4, a.FreeFrameCount())

	seen := map[Pa_t]bool{}
	for i := 0; i < 4; i++ {
		pa, ok := a.AllocateFrame()
		require.True(t, ok)
		require.False(t, seen[pa], "frame returned twice")
		seen[pa] = true
	}

	_, ok := a.AllocateFrame()
	require.False(t, ok, "allocator must report exhaustion once all frames are taken")
	require.Equal(t, 0, a.FreeFrameCount())
}

func TestSimpleFrameAllocatorFreeThenReallocate(t *testing.T) {
	a := NewSimpleFrameAllocator(0, 2)
	pa1, _ := a.AllocateFrame()
	_, _ = a.AllocateFrame()
	a.FreeFrame(pa1)
	require.Equal(t, 1, a.FreeFrameCount())

	pa3, ok := a.AllocateFrame()
	require.True(t, ok)
	require.Equal(t, pa1, pa3)
}

func TestSimpleFrameAllocatorDoubleFreePanics(t *testing.T) {
	a := NewSimpleFrameAllocator(0, 1)
	pa, _ := a.AllocateFrame()
	a.FreeFrame(pa)
	require.Panics(t, func() { a.FreeFrame(pa) })
}

func TestDmapReturnsStableDistinctPages(t *testing.T) {
	a := NewSimpleFrameAllocator(0, 2)
	pa1, _ := a.AllocateFrame()
	pa2, _ := a.AllocateFrame()

	p1 := a.Dmap(pa1)
	p2 := a.Dmap(pa2)
	p1[0] = 0xAB
	require.NotEqual(t, p1[0], p2[0])
	require.Equal(t, byte(0xAB), a.Dmap(pa1)[0], "Dmap must return the same backing page across calls")
}
