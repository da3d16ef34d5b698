package blockdev

import "sync"

// MemDisk is a []byte-backed Device used by tests: it never touches
// the filesystem, so round-trip tests run fast and deterministically.
type MemDisk struct {
	mu     sync.Mutex
	blocks [][BlockSize]byte
}

// NewMemDisk allocates a MemDisk with numBlocks addressable blocks.
func NewMemDisk(numBlocks int) *MemDisk {
	return &MemDisk{blocks: make([][BlockSize]byte, numBlocks)}
}

// ReadBlock implements Device.
func (d *MemDisk) ReadBlock(blockno int) (*Buf, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if blockno < 0 || blockno >= len(d.blocks) {
		return nil, &ErrOutOfRange{Block: blockno, NumBlocks: len(d.blocks)}
	}
	b := &Buf{Block: blockno}
	b.Data = d.blocks[blockno]
	return b, nil
}

// WriteBlock implements Device.
func (d *MemDisk) WriteBlock(buf *Buf) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if buf.Block < 0 || buf.Block >= len(d.blocks) {
		return &ErrOutOfRange{Block: buf.Block, NumBlocks: len(d.blocks)}
	}
	d.blocks[buf.Block] = buf.Data
	return nil
}

// ReleaseBlock implements Device. MemDisk holds no per-block locks, so
// there is nothing to release.
func (d *MemDisk) ReleaseBlock(buf *Buf) {}
