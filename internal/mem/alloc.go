package mem

import "sync"

// SimpleFrameAllocator is a bitmap-based FrameAllocator over a fixed
// arena of pages, used by cmd/swapsim and by tests. It is grounded on
// mem.Physmem_t's locked free-list allocator, simplified from a
// per-CPU free list down to one mutex, which also covers the swap
// subsystem's worker goroutines freeing frames concurrently.
type SimpleFrameAllocator struct {
	mu      sync.Mutex
	base    Pa_t
	free    []bool // free[i] true means frame i is available
	freeLen int
	pages   []Bytepg_t // backing storage, indexed like free
}

// NewSimpleFrameAllocator creates an allocator managing npages frames
// starting at base, all initially free.
func NewSimpleFrameAllocator(base Pa_t, npages int) *SimpleFrameAllocator {
	f := &SimpleFrameAllocator{
		base:  base,
		free:  make([]bool, npages),
		pages: make([]Bytepg_t, npages),
	}
	for i := range f.free {
		f.free[i] = true
	}
	f.freeLen = npages
	return f
}

// AllocateFrame implements FrameAllocator.
func (f *SimpleFrameAllocator) AllocateFrame() (Pa_t, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, isFree := range f.free {
		if isFree {
			f.free[i] = false
			f.freeLen--
			f.pages[i] = Bytepg_t{}
			return f.base + Pa_t(i*PGSIZE), true
		}
	}
	return 0, false
}

// FreeFrame implements FrameAllocator.
func (f *SimpleFrameAllocator) FreeFrame(pa Pa_t) {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx := int((pa - f.base) / Pa_t(PGSIZE))
	if idx < 0 || idx >= len(f.free) {
		panic("FreeFrame: out of range frame")
	}
	if f.free[idx] {
		panic("FreeFrame: double free")
	}
	f.free[idx] = true
	f.freeLen++
}

// FreeFrameCount implements FrameAllocator.
func (f *SimpleFrameAllocator) FreeFrameCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.freeLen
}

// Dmap returns the direct-mapped page backing pa, mirroring
// mem.Physmem_t.Dmap's role of turning a physical address into an
// accessible page pointer without a real MMU.
func (f *SimpleFrameAllocator) Dmap(pa Pa_t) *Bytepg_t {
	idx := int((pa - f.base) / Pa_t(PGSIZE))
	if idx < 0 || idx >= len(f.pages) {
		panic("Dmap: out of range frame")
	}
	return &f.pages[idx]
}
