package main

import (
	"swapkern/internal/addrspace"
	"swapkern/internal/blockdev"
	"swapkern/internal/mem"
	"swapkern/internal/proctab"
	"swapkern/internal/swap"
)

// tunables holds the command-line settings. numFrames (zero or less
// means 1024), diskPath (empty means an in-memory disk) and concurrency
// (zero or less means 1) shape the harness; numSlots and swapStart are
// informational only, and threshold, batch, alphaPct, betaPct and
// batchLimit are not read -- the subsystem uses its compiled constants.
type tunables struct {
	numSlots    int
	swapStart   int
	threshold   int
	batch       int
	alphaPct    int
	betaPct     int
	batchLimit  int
	numFrames   int
	diskPath    string
	concurrency int
}

// harness bundles one fully-wired simulation: a memory-backed or
// mmap-backed disk, a frame allocator, a process table, and the swap
// subsystem under test.
type harness struct {
	sub    *swap.Subsystem
	frames *mem.SimpleFrameAllocator
	disk   blockdev.Device
	procs  *proctab.Table
}

func newHarness(t tunables, rec swap.Recorder) (*harness, func(), error) {
	numFrames := t.numFrames
	if numFrames <= 0 {
		numFrames = 1024
	}

	var disk blockdev.Device
	closeFn := func() {}
	if t.diskPath != "" {
		d, err := blockdev.OpenMmapDisk(t.diskPath, 16384)
		if err != nil {
			return nil, nil, err
		}
		disk = d
		closeFn = func() { d.Close() }
	} else {
		disk = blockdev.NewMemDisk(16384)
	}

	frames := mem.NewSimpleFrameAllocator(mem.Pa_t(0), numFrames)

	cfg := swap.Config{
		Disk:        disk,
		Frames:      frames,
		Recorder:    rec,
		Concurrency: t.concurrency,
	}
	sub := swap.New(cfg)
	sub.Init()

	return &harness{
		sub:    sub,
		frames: frames,
		disk:   disk,
		procs:  proctab.New(),
	}, closeFn, nil
}

// newProcess allocates a fresh address space of the given page count
// and registers a process for it, used by the scenario runner.
func newProcess(table *proctab.Table, pid, pages int) *proctab.Process {
	as := addrspace.New(uintptr(pages) * mem.PGSIZE)
	p := &proctab.Process{PID: pid, State: proctab.Runnable, AS: as}
	table.Add(p)
	return p
}
