package blockdev

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

// MmapDisk is a Device backed by a real file, memory-mapped with
// golang.org/x/sys/unix so reads and writes are plain slice copies
// rather than per-block syscalls. cmd/swapsim uses this as the
// simulator's "disk" when --disk is given (its default is a MemDisk),
// so the swap region genuinely persists to a file
// on the host for the lifetime of one run, the way the teacher's AHCI
// driver backs fs.Disk_i with a real device.
type MmapDisk struct {
	mu         sync.Mutex
	f          *os.File
	data       []byte
	numBlocks  int
}

// OpenMmapDisk creates path if it does not exist, resizes it to hold
// exactly numBlocks blocks (keeping any existing contents within that
// size) and maps it into the process's address space.
func OpenMmapDisk(path string, numBlocks int) (*MmapDisk, error) {
	size := int64(numBlocks) * BlockSize
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open disk image: %w", err)
	}
	if err := f.Truncate(size); err != nil {
		f.Close()
		return nil, fmt.Errorf("size disk image: %w", err)
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap disk image: %w", err)
	}
	return &MmapDisk{f: f, data: data, numBlocks: numBlocks}, nil
}

// Close unmaps and closes the backing file.
func (d *MmapDisk) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := unix.Munmap(d.data); err != nil {
		return err
	}
	return d.f.Close()
}

func (d *MmapDisk) bounds(blockno int) ([]byte, error) {
	if blockno < 0 || blockno >= d.numBlocks {
		return nil, &ErrOutOfRange{Block: blockno, NumBlocks: d.numBlocks}
	}
	off := blockno * BlockSize
	return d.data[off : off+BlockSize], nil
}

// ReadBlock implements Device.
func (d *MmapDisk) ReadBlock(blockno int) (*Buf, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	region, err := d.bounds(blockno)
	if err != nil {
		return nil, err
	}
	b := &Buf{Block: blockno}
	copy(b.Data[:], region)
	return b, nil
}

// WriteBlock implements Device.
func (d *MmapDisk) WriteBlock(buf *Buf) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	region, err := d.bounds(buf.Block)
	if err != nil {
		return err
	}
	copy(region, buf.Data[:])
	return nil
}

// ReleaseBlock implements Device. The mmap region needs no per-block
// unlock; a future port serializing real concurrent DMA would take
// one here (see spec section 5's lock-ordering rule).
func (d *MmapDisk) ReleaseBlock(buf *Buf) {}
