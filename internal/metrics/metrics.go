// Package metrics provides a swap.Recorder backed by Prometheus
// client metrics, the way talyz-systemd_exporter registers its
// collectors against a dedicated registry instead of the global one.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector implements swap.Recorder. Construct with New and register
// it with a prometheus.Registerer of the caller's choosing.
type Collector struct {
	evictions      *prometheus.CounterVec
	faultIns       *prometheus.CounterVec
	pressureEvents prometheus.Counter
	slotsFree      prometheus.GaugeFunc
	threshold      prometheus.Gauge
	batch          prometheus.Gauge
	bytesEvicted   prometheus.Counter
	bytesFaultedIn prometheus.Counter
}

// New constructs a Collector. freeSlots is polled lazily each scrape,
// the way a GaugeFunc defers to live state instead of being pushed.
func New(freeSlots func() int) *Collector {
	c := &Collector{
		evictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swap",
			Name:      "evictions_total",
			Help:      "Pages evicted from a resident frame to a swap slot, labeled by pid.",
		}, []string{"pid"}),
		faultIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swap",
			Name:      "fault_ins_total",
			Help:      "Pages restored from a swap slot on a page fault, labeled by pid.",
		}, []string{"pid"}),
		pressureEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swap",
			Name:      "pressure_events_total",
			Help:      "Times the free-frame count dropped below the pressure threshold.",
		}),
		threshold: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "swap",
			Name:      "pressure_threshold",
			Help:      "Current low-water mark on free frames that triggers eviction.",
		}),
		batch: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "swap",
			Name:      "pressure_batch",
			Help:      "Current number of pages evicted per pressure event.",
		}),
		bytesEvicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swap",
			Name:      "evicted_bytes_total",
			Help:      "Total bytes moved out to swap slots.",
		}),
		bytesFaultedIn: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swap",
			Name:      "faulted_in_bytes_total",
			Help:      "Total bytes restored from swap slots.",
		}),
	}
	c.slotsFree = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "swap",
		Name:      "slots_free",
		Help:      "Free swap slots remaining in the slot table.",
	}, func() float64 { return float64(freeSlots()) })
	return c
}

// MustRegister registers every collector against reg.
func (c *Collector) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(
		c.evictions, c.faultIns, c.pressureEvents,
		c.threshold, c.batch, c.slotsFree,
		c.bytesEvicted, c.bytesFaultedIn,
	)
}

// RecordEviction implements swap.Recorder.
func (c *Collector) RecordEviction(pid, slot int, va uintptr, bytes int) {
	c.evictions.WithLabelValues(strconv.Itoa(pid)).Inc()
	c.bytesEvicted.Add(float64(bytes))
}

// RecordFaultIn implements swap.Recorder.
func (c *Collector) RecordFaultIn(pid, slot int, va uintptr, bytes int) {
	c.faultIns.WithLabelValues(strconv.Itoa(pid)).Inc()
	c.bytesFaultedIn.Add(float64(bytes))
}

// RecordPressure implements swap.Recorder.
func (c *Collector) RecordPressure(threshold, batch, freeFrames int) {
	c.pressureEvents.Inc()
	c.threshold.Set(float64(threshold))
	c.batch.Set(float64(batch))
}
