package mem

// EncodeSwapped rewrites a present leaf entry into its swapped-out
// encoding: the PRESENT bit is cleared, the SWAPPED bit is set, and
// slot occupies the frame-number field. It takes only the slot, so no
// permission bit of the evicted entry survives in the result -- the
// caller is responsible for stashing them in the slot descriptor
// before calling this.
func EncodeSwapped(slot uint32) PTE {
	return PTE(slot)<<PTE_FRAMESHIFT | PTE_SWAPPED
}

// DecodeSwapped extracts the slot index from a leaf entry. wasSwapped
// is false if the entry does not carry the SWAPPED bit, in which case
// slot is meaningless.
func DecodeSwapped(pte PTE) (slot uint32, wasSwapped bool) {
	if pte&PTE_SWAPPED == 0 {
		return 0, false
	}
	return uint32(pte >> PTE_FRAMESHIFT), true
}

// Present reports whether pte's PRESENT bit is set.
func Present(pte PTE) bool {
	return pte&PTE_P != 0
}

// Accessed reports whether pte's ACCESSED bit is set.
func Accessed(pte PTE) bool {
	return pte&PTE_A != 0
}

// ClearAccessed returns pte with its ACCESSED bit cleared.
func ClearAccessed(pte PTE) PTE {
	return pte &^ PTE_A
}

// Frame extracts the physical frame number from a present leaf entry.
func Frame(pte PTE) Pa_t {
	return Pa_t(pte>>PTE_FRAMESHIFT) << PGSHIFT
}

// BuildPresent composes a present leaf entry from a physical frame and
// a permission snapshot (the low 12 bits saved by swap-out).
func BuildPresent(frame Pa_t, perm PTE) PTE {
	return PTE(frame>>PGSHIFT)<<PTE_FRAMESHIFT | (perm & PTE_PERM) | PTE_P
}

// Perm extracts the low permission bits of a present leaf entry, the
// same bits EncodeSwapped asks the caller to stash before eviction.
func Perm(pte PTE) PTE {
	return pte & PTE_PERM
}
