// Package profiling builds a pprof sample profile of eviction and
// fault-in activity, repurposing google/pprof/profile (the teacher's
// own dependency, pulled in for its kernel's heap-profiling command)
// as a record of swap traffic instead of allocation traffic.
package profiling

import (
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/google/pprof/profile"
)

// bytesOutType and bytesInType name the profile's two sample types,
// bytes evicted and bytes faulted in, both measured in unit.
const (
	bytesOutType = "bytes_out"
	bytesInType  = "bytes_in"
	unit         = "bytes"
)

// event is one recorded eviction or fault-in, kept until Flush turns
// the accumulated events into a profile.Profile.
type event struct {
	pid       int
	slot      int
	bytesOut  int64
	bytesIn   int64
}

// Recorder implements swap.Recorder, accumulating eviction and
// fault-in events in memory and rendering them into a pprof profile
// on Flush. Safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events map[[2]int]*event // keyed by (pid, slot)
	order  [][2]int
}

// New constructs an empty Recorder.
func New() *Recorder {
	return &Recorder{events: make(map[[2]int]*event)}
}

func (r *Recorder) entry(pid, slot int) *event {
	key := [2]int{pid, slot}
	e, ok := r.events[key]
	if !ok {
		e = &event{pid: pid, slot: slot}
		r.events[key] = e
		r.order = append(r.order, key)
	}
	return e
}

// RecordEviction implements swap.Recorder.
func (r *Recorder) RecordEviction(pid, slot int, va uintptr, bytes int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entry(pid, slot).bytesOut += int64(bytes)
}

// RecordFaultIn implements swap.Recorder.
func (r *Recorder) RecordFaultIn(pid, slot int, va uintptr, bytes int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entry(pid, slot).bytesIn += int64(bytes)
}

// RecordPressure implements swap.Recorder. Pressure events have no
// natural pprof sample; profiling only tracks page movement.
func (r *Recorder) RecordPressure(threshold, batch, freeFrames int) {}

// Flush renders the accumulated events into a pprof profile and
// writes it, gzip-encoded, to w.
func (r *Recorder) Flush(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prof := &profile.Profile{
		TimeNanos: time.Now().UnixNano(),
		SampleType: []*profile.ValueType{
			{Type: bytesOutType, Unit: unit},
			{Type: bytesInType, Unit: unit},
		},
	}

	pidFn := &profile.Function{ID: 1, Name: "swap.process"}
	slotFn := &profile.Function{ID: 2, Name: "swap.slot"}
	prof.Function = []*profile.Function{pidFn, slotFn}

	var locID uint64 = 1
	newLocation := func(fn *profile.Function) *profile.Location {
		locID++
		loc := &profile.Location{
			ID: locID,
			Line: []profile.Line{{
				Function: fn,
			}},
		}
		prof.Location = append(prof.Location, loc)
		return loc
	}

	for _, key := range r.order {
		e := r.events[key]
		pidLoc := newLocation(pidFn)
		slotLoc := newLocation(slotFn)
		sample := &profile.Sample{
			Location: []*profile.Location{slotLoc, pidLoc},
			Value:    []int64{e.bytesOut, e.bytesIn},
			Label: map[string][]string{
				"pid":  {strconv.Itoa(e.pid)},
				"slot": {strconv.Itoa(e.slot)},
			},
		}
		prof.Sample = append(prof.Sample, sample)
	}

	if err := prof.CheckValid(); err != nil {
		return err
	}
	return prof.Write(w)
}
