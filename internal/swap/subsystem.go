// Package swap implements the demand-paging swap subsystem: the slot
// allocator, clock-approximation victim selector, swap-out/swap-in
// mechanism, adaptive pressure controller, and process teardown hook.
// It reaches the frame allocator, the disk and the page-table walker
// through the interfaces in internal/mem, internal/blockdev and
// internal/addrspace, and the process table through internal/proctab's
// Table and Process types; a Process carries its concrete
// *addrspace.AddressSpace, which swap-out, swap-in and teardown walk
// directly. It implements none of these collaborators, preserving the
// "core uses but does not implement them" boundary of spec section 1.
package swap

import (
	"swapkern/internal/blockdev"
	"swapkern/internal/mem"
)

// Tunables, all from spec section 6.
const (
	initialThreshold = 100
	initialBatch     = 2
	alphaPercent     = 25
	betaPercent      = 10
	batchLimit       = 100
)

// Recorder receives eviction/fault-in/pressure-event telemetry. It is
// optional (nil-safe) and never consulted by the core algorithms --
// swap_out, swap_in, check_pressure and release_all_swap behave
// identically whether or not a Recorder is attached, per spec section
// 4.H's expansion of the core/ambient boundary.
type Recorder interface {
	RecordEviction(pid, slot int, va uintptr, bytes int)
	RecordFaultIn(pid, slot int, va uintptr, bytes int)
	RecordPressure(threshold, batch, freeFrames int)
}

// Config configures a Subsystem at construction time.
type Config struct {
	Disk     blockdev.Device
	Frames   mem.FrameAllocator
	Logger   Logger
	Recorder Recorder
	// Concurrency bounds how many evictions' disk transfers one
	// check_pressure batch may have in flight at once. Selection and
	// the leaf/rss bookkeeping that follows each selection are always
	// synchronous regardless of this value -- only the write_page
	// call and its frame release ever run on the worker pool -- so
	// every value reproduces the same victim trajectory; it affects
	// wall-clock overlap only. See SPEC_FULL.md section 5 for the
	// wider discussion.
	Concurrency int
}

// Subsystem bundles the slot table and pressure-controller state with
// its external collaborators. The zero value is not usable; construct
// with New.
type Subsystem struct {
	Slots    *SlotTable
	disk     blockdev.Device
	frames   mem.FrameAllocator
	logger   Logger
	recorder Recorder

	pressure pressureState
	conc     int
}

// New constructs a Subsystem. Init must still be called once at boot.
func New(cfg Config) *Subsystem {
	logger := cfg.Logger
	if logger == nil {
		logger = DefaultLogger()
	}
	conc := cfg.Concurrency
	if conc <= 0 {
		conc = 1
	}
	return &Subsystem{
		Slots:  NewSlotTable(logger),
		disk:   cfg.Disk,
		frames: cfg.Frames,
		logger: logger,
		recorder: cfg.Recorder,
		pressure: pressureState{
			threshold: initialThreshold,
			batch:     initialBatch,
		},
		conc: conc,
	}
}

// Init performs one-time boot initialization (spec section 4.A / 6).
func (s *Subsystem) Init() {
	s.Slots.Init()
}

// Threshold returns the pressure controller's current low-water mark.
func (s *Subsystem) Threshold() int {
	s.pressure.mu.Lock()
	defer s.pressure.mu.Unlock()
	return s.pressure.threshold
}

// Batch returns the pressure controller's current per-event eviction
// count.
func (s *Subsystem) Batch() int {
	s.pressure.mu.Lock()
	defer s.pressure.mu.Unlock()
	return s.pressure.batch
}

// SetRecorder attaches or replaces the subsystem's telemetry sink
// after construction, for callers (like cmd/swapsim's serve command)
// that need the slot table to exist before they can build a recorder
// that reports on it.
func (s *Subsystem) SetRecorder(r Recorder) {
	s.recorder = r
}

func (s *Subsystem) record(fn func(Recorder)) {
	if s.recorder != nil {
		fn(s.recorder)
	}
}
