package swap

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"swapkern/internal/proctab"
)

// pressureState holds the adaptive pressure-controller's two pieces of
// state, each updated only by CheckPressure under its own lock.
type pressureState struct {
	mu        sync.Mutex
	threshold int
	batch     int
}

// CheckPressure is component F. It polls the free-frame count; if it
// has dropped below threshold, it evicts up to batch pages (picking a
// fresh victim process and page each time, stopping early if either
// selection comes up empty) and then updates threshold and batch by
// the geometric factors of spec section 4.F.
//
// Victim selection, slot allocation, the leaf rewrite and the rss
// update (prepareSwapOut) all run synchronously in this loop, one
// victim at a time -- they mutate the shared process table and
// address space that the next iteration's selection reads, so they
// must never run concurrently with each other or with selection
// itself. Only the disk transfer and frame release that follow
// (finishSwapOut) touch nothing but that one victim's own frame and
// slot, so those alone are handed to a worker pool bounded by
// Config.Concurrency, letting distinct victims' block I/O overlap.
// Concurrency controls only that overlap; it never changes which
// victims are chosen or their order, so the trajectory of evictions is
// identical for any Concurrency value.
func (s *Subsystem) CheckPressure(table *proctab.Table) error {
	free := s.frames.FreeFrameCount()

	s.pressure.mu.Lock()
	threshold := s.pressure.threshold
	batch := s.pressure.batch
	s.pressure.mu.Unlock()

	if free >= threshold {
		return nil
	}

	s.logger.Printf("swap: pressure event, threshold=%s batch=%s", formatCount(threshold), formatCount(batch))
	s.record(func(r Recorder) { r.RecordPressure(threshold, batch, free) })

	sem := semaphore.NewWeighted(int64(s.conc))
	g, ctx := errgroup.WithContext(context.Background())

	for i := 0; i < batch; i++ {
		victim, ok := SelectVictimProcess(table)
		if !ok {
			break
		}
		va, ok := SelectVictimPage(victim.AS)
		if !ok {
			break
		}
		ev, err := s.prepareSwapOut(victim, va)
		if err != nil {
			// NoSlot is a soft failure (spec section 4.E step 2): this
			// one eviction is simply skipped, the event continues with
			// the next victim.
			continue
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		e := ev
		g.Go(func() error {
			defer sem.Release(1)
			s.finishSwapOut(e)
			return nil
		})
	}
	_ = g.Wait()

	s.pressure.mu.Lock()
	s.pressure.threshold = atLeast(threshold*(100-betaPercent)/100, 1)
	newBatch := atLeast(batch*(100+alphaPercent)/100, 1)
	if newBatch > batchLimit {
		newBatch = batchLimit
	}
	s.pressure.batch = newBatch
	s.pressure.mu.Unlock()

	return nil
}

// atLeast returns v, floored at lo.
func atLeast(v, lo int) int {
	if v < lo {
		return lo
	}
	return v
}
