package swap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"swapkern/internal/addrspace"
	"swapkern/internal/mem"
	"swapkern/internal/proctab"
)

func TestSelectVictimProcessPicksLargestRSS(t *testing.T) {
	table := proctab.New()
	table.Add(&proctab.Process{PID: 1, State: proctab.Runnable, RSS: 10})
	table.Add(&proctab.Process{PID: 2, State: proctab.Runnable, RSS: 20})

	victim, ok := SelectVictimProcess(table)
	require.True(t, ok)
	require.Equal(t, 2, victim.PID)
}

func TestSelectVictimProcessTieBreaksOnSmallestPID(t *testing.T) {
	table := proctab.New()
	table.Add(&proctab.Process{PID: 12, State: proctab.Runnable, RSS: 5})
	table.Add(&proctab.Process{PID: 7, State: proctab.Runnable, RSS: 5})

	victim, ok := SelectVictimProcess(table)
	require.True(t, ok)
	require.Equal(t, 7, victim.PID, "scenario 6: equal rss must tie-break to the smaller pid")
}

func TestSelectVictimProcessSkipsIneligibleStates(t *testing.T) {
	table := proctab.New()
	table.Add(&proctab.Process{PID: 1, State: proctab.Zombie, RSS: 1000})
	table.Add(&proctab.Process{PID: 2, State: proctab.Runnable, RSS: 1})

	victim, ok := SelectVictimProcess(table)
	require.True(t, ok)
	require.Equal(t, 2, victim.PID)
}

func TestSelectVictimProcessNoneEligible(t *testing.T) {
	table := proctab.New()
	table.Add(&proctab.Process{PID: 1, State: proctab.Zombie})
	_, ok := SelectVictimProcess(table)
	require.False(t, ok)
}

func TestSelectVictimPageFirstPassFindsUnaccessedLeaf(t *testing.T) {
	as := addrspace.New(2 * uintptr(mem.PGSIZE))
	as.Map(0, mem.BuildPresent(0x1000, mem.PTE_P|mem.PTE_A))
	as.Map(uintptr(mem.PGSIZE), mem.BuildPresent(0x2000, mem.PTE_P))

	va, ok := SelectVictimPage(as)
	require.True(t, ok)
	require.Equal(t, uintptr(mem.PGSIZE), va)
}

func TestSelectVictimPageResetPassClearsAccessedThenRetries(t *testing.T) {
	as := addrspace.New(2 * uintptr(mem.PGSIZE))
	as.Map(0, mem.BuildPresent(0x1000, mem.PTE_P|mem.PTE_A))
	as.Map(uintptr(mem.PGSIZE), mem.BuildPresent(0x2000, mem.PTE_P|mem.PTE_A))

	va, ok := SelectVictimPage(as)
	require.True(t, ok, "second pass must find a victim after clearing accessed bits")
	require.Equal(t, uintptr(0), va, "scan order picks the first leaf once accessed bits are cleared")

	pte, _ := as.WalkNoAlloc(uintptr(mem.PGSIZE))
	require.False(t, mem.Accessed(*pte), "the reset pass clears the accessed bit on every present leaf, not just the chosen victim")
}

func TestSelectVictimPageNoPresentLeavesFails(t *testing.T) {
	as := addrspace.New(uintptr(mem.PGSIZE))
	_, ok := SelectVictimPage(as)
	require.False(t, ok)
}
