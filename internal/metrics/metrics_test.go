package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecordEvictionIncrementsCounters(t *testing.T) {
	c := New(func() int { return 17 })
	reg := prometheus.NewRegistry()
	c.MustRegister(reg)

	c.RecordEviction(1, 0, 0, 4096)
	c.RecordEviction(2, 1, 0, 4096)

	require.Equal(t, float64(1), testutil.ToFloat64(c.evictions.WithLabelValues("1")))
	require.Equal(t, float64(1), testutil.ToFloat64(c.evictions.WithLabelValues("2")))
	require.Equal(t, float64(8192), testutil.ToFloat64(c.bytesEvicted))
}

func TestRecordFaultInIncrementsCounters(t *testing.T) {
	c := New(func() int { return 0 })
	c.RecordFaultIn(1, 0, 0, 4096)
	require.Equal(t, float64(1), testutil.ToFloat64(c.faultIns.WithLabelValues("1")))
	require.Equal(t, float64(4096), testutil.ToFloat64(c.bytesFaultedIn))
}

func TestRecordPressureSetsGauges(t *testing.T) {
	c := New(func() int { return 0 })
	c.RecordPressure(90, 2, 50)

	require.Equal(t, float64(90), testutil.ToFloat64(c.threshold))
	require.Equal(t, float64(2), testutil.ToFloat64(c.batch))
	require.Equal(t, float64(1), testutil.ToFloat64(c.pressureEvents))
}

func TestSlotsFreeGaugeFuncReflectsCallback(t *testing.T) {
	free := 800
	c := New(func() int { return free })
	reg := prometheus.NewRegistry()
	c.MustRegister(reg)

	require.Equal(t, float64(800), testutil.ToFloat64(c.slotsFree))

	free = 750
	require.Equal(t, float64(750), testutil.ToFloat64(c.slotsFree), "GaugeFunc must re-poll the callback on every collect")
}
