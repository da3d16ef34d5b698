// Package addrspace models a process's page table: the minimal
// surface the external page-table walker collaborator exposes to the
// swap subsystem (spec section 6's walk_pagetable, never allocating),
// plus a concrete in-memory implementation used by the simulator and
// tests. It is grounded on vm.Vm_t's Page_insert/Page_remove/Tlbshoot,
// whose pmap mutations are serialized per-process by the caller rather
// than by this type.
package addrspace

import "swapkern/internal/mem"

// Walker is the external page-table-walker collaborator. WalkNoAlloc
// resolves va to the address of its leaf entry without allocating any
// intermediate page-table levels, returning ok=false if no leaf exists
// at va (e.g. an unmapped guard region).
type Walker interface {
	WalkNoAlloc(va uintptr) (pte *mem.PTE, ok bool)
	// VirtualSize returns the size of the address space, i.e. the
	// exclusive upper bound a full-address-space walk should stop at.
	// Addresses below it need not be mapped.
	VirtualSize() uintptr
	// Invalidate flushes any cached translation for the page at va.
	// The simplest correct action -- reloading the address space root
	// register -- is modeled here as a no-op hook plus a counter,
	// since this repo has no real TLB to invalidate; see spec section 9's
	// open question on cross-CPU shootdown.
	Invalidate(va uintptr)
}

// AddressSpace is a concrete, single-process page table backed by a
// map from page-aligned virtual address to leaf entry. It is the
// address-space type proctab.Process carries, so internal/swap reaches
// it through Process.AS (SelectVictimPage alone takes the Walker
// interface). cmd/swapsim and the tests build their address spaces
// with it.
type AddressSpace struct {
	entries     map[uintptr]*mem.PTE // keyed by page-aligned va
	size        uintptr
	shootdowns  int
}

// New creates an empty address space spanning [0, size) in PGSIZE
// increments. size is rounded up to a page boundary.
func New(size uintptr) *AddressSpace {
	pgsize := uintptr(mem.PGSIZE)
	rounded := (size + pgsize - 1) &^ (pgsize - 1)
	return &AddressSpace{
		entries: make(map[uintptr]*mem.PTE),
		size:    rounded,
	}
}

// WalkNoAlloc implements Walker.
func (as *AddressSpace) WalkNoAlloc(va uintptr) (*mem.PTE, bool) {
	page := va &^ (uintptr(mem.PGSIZE) - 1)
	pte, ok := as.entries[page]
	return pte, ok
}

// VirtualSize implements Walker.
func (as *AddressSpace) VirtualSize() uintptr {
	return as.size
}

// Invalidate implements Walker.
func (as *AddressSpace) Invalidate(va uintptr) {
	as.shootdowns++
}

// Shootdowns reports how many times Invalidate was called, useful for
// asserting that swap-out/swap-in always flush the address they touch.
func (as *AddressSpace) Shootdowns() int {
	return as.shootdowns
}

// Map installs a leaf entry at va, creating it if absent. Tests and
// the simulator use this to set up present pages before exercising the
// swap subsystem; production page-table installation is the page-fault
// handler's job (external to this repo, per spec section 1).
func (as *AddressSpace) Map(va uintptr, pte mem.PTE) {
	page := va &^ (uintptr(mem.PGSIZE) - 1)
	if page >= as.size {
		as.size = page + uintptr(mem.PGSIZE)
	}
	p := pte
	as.entries[page] = &p
}

// Unmap removes any leaf entry at va.
func (as *AddressSpace) Unmap(va uintptr) {
	page := va &^ (uintptr(mem.PGSIZE) - 1)
	delete(as.entries, page)
}
