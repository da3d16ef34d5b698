package swap

import (
	"sync"

	"swapkern/internal/mem"
)

// NSWAPSLOTS is the fixed number of backing-store slots (spec section
// 3 / section 6).
const NSWAPSLOTS = 800

// SlotDescriptor is one entry of the slot table: the permission
// snapshot captured at swap-out and the slot's availability.
type SlotDescriptor struct {
	Permissions mem.PTE
	Free        bool
}

// SlotTable is component A: a bounded, lock-protected pool of
// NSWAPSLOTS descriptors, allocated first-fit in index order.
// Grounded on mem.Physmem_t's single-lock free-list bookkeeping,
// simplified to a linear scan since NSWAPSLOTS is small and spec
// section 4.A specifies first-fit-by-scan explicitly.
type SlotTable struct {
	mu     sync.Mutex
	slots  [NSWAPSLOTS]SlotDescriptor
	logger Logger
}

// NewSlotTable constructs a SlotTable. Init must still be called once
// at boot before any other operation, per spec section 4.A.
func NewSlotTable(logger Logger) *SlotTable {
	if logger == nil {
		logger = DefaultLogger()
	}
	return &SlotTable{logger: logger}
}

// Init marks every slot free and emits one informational line. Must be
// called once during boot before any other SlotTable operation.
func (t *SlotTable) Init() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.slots {
		t.slots[i] = SlotDescriptor{Free: true}
	}
	t.logger.Printf("swap: initialized %s slots", formatCount(NSWAPSLOTS))
}

// Allocate claims the first free slot in index order, returning
// ok=false if the table is full (spec section 4.A; soft NoSlot error
// surfaced by callers in outin.go).
func (t *SlotTable) Allocate() (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.slots {
		if t.slots[i].Free {
			t.slots[i].Free = false
			return i, true
		}
	}
	return 0, false
}

// Release returns slot i to the pool and zeroes its permission
// snapshot. Releasing an out-of-range index is a programming error
// and halts the system (spec section 4.A).
func (t *SlotTable) Release(i int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if i < 0 || i >= NSWAPSLOTS {
		kpanic(ReleaseOutOfRange, "swap: release out-of-range slot %d", i)
	}
	t.slots[i].Free = true
	t.slots[i].Permissions = 0
}

// SavePerm stashes the low permission bits of an evicted leaf into
// slot i's descriptor.
func (t *SlotTable) SavePerm(i int, bits mem.PTE) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.slots[i].Permissions = bits
}

// LoadPerm returns the permission bits previously saved into slot i.
func (t *SlotTable) LoadPerm(i int) mem.PTE {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.slots[i].Permissions
}

// IsOccupied reports whether slot i is currently in use. Used by
// swap-in to assert the decoded slot is valid before trusting its
// saved permissions (spec section 4.E step 1).
func (t *SlotTable) IsOccupied(i int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if i < 0 || i >= NSWAPSLOTS {
		return false
	}
	return !t.slots[i].Free
}

// FreeCount reports how many slots are currently free.
func (t *SlotTable) FreeCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, s := range t.slots {
		if s.Free {
			n++
		}
	}
	return n
}
