package proctab

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEligibleStates(t *testing.T) {
	cases := []struct {
		state State
		want  bool
	}{
		{Unused, false},
		{Embryo, false},
		{Sleeping, true},
		{Runnable, true},
		{Running, true},
		{Zombie, false},
	}
	for _, c := range cases {
		p := &Process{PID: 1, State: c.state}
		require.Equal(t, c.want, Eligible(p), "state %v", c.state)
	}
}

func TestEligibleRejectsNonPositivePID(t *testing.T) {
	p := &Process{PID: 0, State: Runnable}
	require.False(t, Eligible(p))
}

func TestTableAddRemoveForEach(t *testing.T) {
	table := New()
	table.Add(&Process{PID: 1, State: Runnable})
	table.Add(&Process{PID: 2, State: Runnable})

	var pids []int
	table.Lock()
	table.ForEach(func(p *Process) { pids = append(pids, p.PID) })
	table.Unlock()
	require.ElementsMatch(t, []int{1, 2}, pids)

	table.Remove(1)
	pids = nil
	table.Lock()
	table.ForEach(func(p *Process) { pids = append(pids, p.PID) })
	table.Unlock()
	require.Equal(t, []int{2}, pids)
}

func TestStateStringer(t *testing.T) {
	require.Equal(t, "Runnable", Runnable.String())
	require.Equal(t, "Zombie", Zombie.String())
}
