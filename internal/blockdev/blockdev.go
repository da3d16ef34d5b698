// Package blockdev models the external buffered block-device
// collaborator (spec section 1): locate a block, read it into a
// buffer, write a buffer back, release it. Grounded on fs.Disk_i and
// fs.Bdev_block_t's fetch/copy/write-back/release lifecycle, simplified
// to the synchronous subset the swap subsystem needs (it never issues
// the async writes or log-aware block types fs.Bdev_block_t supports).
package blockdev

import "fmt"

// BlockSize is the size in bytes of one device block, matching
// fs.BSIZE's 512-byte unit (8 of which make up one 4 KiB page).
const BlockSize = 512

// Buf is one in-flight block buffer, the unit read_block/write_block
// operate on.
type Buf struct {
	Block int
	Data  [BlockSize]byte
}

// Device is the external block-device collaborator.
type Device interface {
	// ReadBlock fetches blockno into a freshly buffered Buf.
	ReadBlock(blockno int) (*Buf, error)
	// WriteBlock writes buf's contents back to its block number.
	WriteBlock(buf *Buf) error
	// ReleaseBlock returns buf to the device's buffer pool. The swap
	// subsystem assumes the block layer serializes concurrent access to
	// the same block (spec section 4.B); Release is where a real
	// implementation would drop that per-block lock.
	ReleaseBlock(buf *Buf)
}

// ErrOutOfRange is returned when a block number falls outside the
// device's addressable region.
type ErrOutOfRange struct {
	Block, NumBlocks int
}

func (e *ErrOutOfRange) Error() string {
	return fmt.Sprintf("block %d out of range (device has %d blocks)", e.Block, e.NumBlocks)
}
