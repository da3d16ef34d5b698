package mem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeSwappedRoundTrip(t *testing.T) {
	for _, slot := range []uint32{0, 1, 7, 799, 1<<20 - 1} {
		pte := EncodeSwapped(slot)
		require.False(t, Present(pte))
		got, wasSwapped := DecodeSwapped(pte)
		require.True(t, wasSwapped)
		require.Equal(t, slot, got)
	}
}

func TestDecodeSwappedRejectsNonSwappedLeaf(t *testing.T) {
	pte := BuildPresent(0x1000, PTE_P|PTE_W)
	_, wasSwapped := DecodeSwapped(pte)
	require.False(t, wasSwapped)
}

func TestBuildPresentRoundTripsFrameAndPerm(t *testing.T) {
	frame := Pa_t(0x4000)
	perm := PTE_P | PTE_W | PTE_U
	pte := BuildPresent(frame, perm)
	require.True(t, Present(pte))
	require.Equal(t, frame, Frame(pte))
	require.Equal(t, perm&PTE_PERM, Perm(pte))
}

func TestClearAccessed(t *testing.T) {
	pte := BuildPresent(0x2000, PTE_P|PTE_A)
	require.True(t, Accessed(pte))
	cleared := ClearAccessed(pte)
	require.False(t, Accessed(cleared))
	require.True(t, Present(cleared), "clearing the accessed bit must not disturb PRESENT")
}
