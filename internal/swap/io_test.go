package swap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"swapkern/internal/blockdev"
	"swapkern/internal/mem"
)

func TestWritePageThenReadPageRoundTrips(t *testing.T) {
	dev := blockdev.NewMemDisk(SwapStart + blocksPerPage*4)
	var out mem.Bytepg_t
	for i := range out {
		out[i] = byte(i % 256)
	}

	require.NoError(t, WritePage(dev, 2, &out))

	var in mem.Bytepg_t
	require.NoError(t, ReadPage(dev, 2, &in))
	require.Equal(t, out, in)
}

func TestWritePageUsesDistinctSlotRegions(t *testing.T) {
	dev := blockdev.NewMemDisk(SwapStart + blocksPerPage*4)
	var a, b mem.Bytepg_t
	for i := range a {
		a[i] = 0xAA
		b[i] = 0xBB
	}
	require.NoError(t, WritePage(dev, 0, &a))
	require.NoError(t, WritePage(dev, 1, &b))

	var gotA, gotB mem.Bytepg_t
	require.NoError(t, ReadPage(dev, 0, &gotA))
	require.NoError(t, ReadPage(dev, 1, &gotB))
	require.Equal(t, a, gotA)
	require.Equal(t, b, gotB)
}

func TestWritePagePropagatesOutOfRange(t *testing.T) {
	dev := blockdev.NewMemDisk(SwapStart)
	var page mem.Bytepg_t
	err := WritePage(dev, 0, &page)
	require.Error(t, err)
}
