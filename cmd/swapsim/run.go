package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"swapkern/internal/mem"
	"swapkern/internal/proctab"
	"swapkern/internal/profiling"
	"swapkern/internal/swap"
)

func newRunCmd() *cobra.Command {
	var (
		t          tunables
		scenario   int
		profileOut string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one of the spec's concrete end-to-end scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(scenario, t, profileOut)
		},
	}

	fs := cmd.Flags()
	bindTunables(fs, &t)
	fs.IntVar(&scenario, "scenario", 1, "scenario number to run (1-6)")
	fs.StringVar(&profileOut, "profile-out", "", "if set, write a pprof profile of eviction/fault-in traffic here")

	return cmd
}

func bindTunables(fs *pflag.FlagSet, t *tunables) {
	fs.IntVar(&t.numSlots, "nswapslots", swap.NSWAPSLOTS, "number of swap slots (informational; compiled constant)")
	fs.IntVar(&t.swapStart, "swap-start", swap.SwapStart, "first backing-store block reserved for swap (informational)")
	fs.IntVar(&t.numFrames, "frames", 1024, "number of simulated physical frames")
	fs.StringVar(&t.diskPath, "disk", "", "mmap-backed disk image path (default: in-memory disk)")
	fs.IntVar(&t.concurrency, "concurrency", 1, "max concurrent evictions per pressure event")
}

func runScenario(n int, t tunables, profileOut string) error {
	var rec swap.Recorder
	var prof *profiling.Recorder
	if profileOut != "" {
		prof = profiling.New()
		rec = prof
	}

	h, closeFn, err := newHarness(t, rec)
	if err != nil {
		return err
	}
	defer closeFn()

	switch n {
	case 1:
		runInitScenario(h)
	case 2:
		runFirstPressureScenario(h)
	case 3:
		runAdaptiveGrowthScenario(h)
	case 4:
		runSlotExhaustionScenario(h)
	case 5:
		runRoundTripScenario(h)
	case 6:
		runTieBreakScenario(h)
	default:
		return fmt.Errorf("unknown scenario %d (expected 1-6)", n)
	}

	if prof != nil {
		f, err := os.Create(profileOut)
		if err != nil {
			return err
		}
		defer f.Close()
		return prof.Flush(f)
	}
	return nil
}

func runInitScenario(h *harness) {
	fmt.Printf("free frames at boot: %d\n", h.frames.FreeFrameCount())
	fmt.Printf("free slots at boot: %d\n", h.sub.Slots.FreeCount())
	if err := h.sub.CheckPressure(h.procs); err != nil {
		fmt.Printf("check_pressure error: %v\n", err)
	}
	fmt.Printf("threshold after no-op check: %d\n", h.sub.Threshold())
}

func runFirstPressureScenario(h *harness) {
	p1 := newProcess(h.procs, 1, 10)
	p2 := newProcess(h.procs, 2, 20)
	faultInAll(h, p1)
	faultInAll(h, p2)

	// drain free frames down to 50 so the check sees pressure.
	for h.frames.FreeFrameCount() > 50 {
		if _, ok := h.frames.AllocateFrame(); !ok {
			break
		}
	}

	if err := h.sub.CheckPressure(h.procs); err != nil {
		fmt.Printf("check_pressure error: %v\n", err)
	}
	fmt.Printf("after first pressure event: threshold=%d batch=%d p1.rss=%d p2.rss=%d\n",
		h.sub.Threshold(), h.sub.Batch(), p1.RSS, p2.RSS)
}

func runAdaptiveGrowthScenario(h *harness) {
	p := newProcess(h.procs, 1, 64)
	faultInAll(h, p)
	for i := 0; i < 5; i++ {
		// keep free frames under the current threshold for every check.
		for h.frames.FreeFrameCount() >= h.sub.Threshold() {
			if _, ok := h.frames.AllocateFrame(); !ok {
				break
			}
		}
		if err := h.sub.CheckPressure(h.procs); err != nil {
			fmt.Printf("check_pressure error: %v\n", err)
		}
		fmt.Printf("iteration %d: threshold=%d batch=%d\n", i+1, h.sub.Threshold(), h.sub.Batch())
	}
}

func runSlotExhaustionScenario(h *harness) {
	p := newProcess(h.procs, 1, swap.NSWAPSLOTS+1)
	faultInAll(h, p)
	successes := 0
	for i := 0; i < swap.NSWAPSLOTS+1; i++ {
		va := uintptr(i) * mem.PGSIZE
		if err := h.sub.SwapOut(p, va); err != nil {
			fmt.Printf("swap_out %d failed as expected: %v\n", i, err)
			continue
		}
		successes++
	}
	fmt.Printf("successful evictions: %d (slots=%d)\n", successes, swap.NSWAPSLOTS)
}

func runRoundTripScenario(h *harness) {
	p := newProcess(h.procs, 1, 1)
	faultInAll(h, p)
	pte, _ := p.AS.WalkNoAlloc(0)
	frame := mem.Frame(*pte)
	page := h.frames.Dmap(frame)
	for i := range page {
		page[i] = byte(i % 256)
	}

	if err := h.sub.SwapOut(p, 0); err != nil {
		fmt.Printf("swap_out failed: %v\n", err)
		return
	}
	if err := h.sub.SwapIn(p, 0); err != nil {
		fmt.Printf("swap_in failed: %v\n", err)
		return
	}

	pte, _ = p.AS.WalkNoAlloc(0)
	page = h.frames.Dmap(mem.Frame(*pte))
	ok := true
	for i := range page {
		if page[i] != byte(i%256) {
			ok = false
			break
		}
	}
	fmt.Printf("round-trip byte-identical: %v\n", ok)
}

func runTieBreakScenario(h *harness) {
	p7 := newProcess(h.procs, 7, 1)
	p12 := newProcess(h.procs, 12, 1)
	faultInAll(h, p7)
	faultInAll(h, p12)
	p7.RSS, p12.RSS = 5, 5

	victim, ok := swap.SelectVictimProcess(h.procs)
	if !ok {
		fmt.Println("no eligible victim found")
		return
	}
	fmt.Printf("victim pid=%d (expect pid=7)\n", victim.PID)
}

// faultInAll allocates and maps a present leaf for every page of p's
// address space, the scenario runner's stand-in for a real page-fault
// path bringing pages in for the first time.
func faultInAll(h *harness, p *proctab.Process) {
	pages := int(p.AS.VirtualSize() / mem.PGSIZE)
	for i := 0; i < pages; i++ {
		frame, ok := h.frames.AllocateFrame()
		if !ok {
			return
		}
		va := uintptr(i) * mem.PGSIZE
		p.AS.Map(va, mem.BuildPresent(frame, mem.PTE_P|mem.PTE_W|mem.PTE_U))
		p.RSS++
	}
}
