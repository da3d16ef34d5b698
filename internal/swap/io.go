package swap

import (
	"swapkern/internal/blockdev"
	"swapkern/internal/mem"
)

// SwapStart is the first device block of the swap region, immediately
// after the boot block and superblock (spec section 3).
const SwapStart = 2

// blocksPerPage is the number of BlockSize device blocks one page
// occupies: 4096 / 512 = 8.
const blocksPerPage = mem.PGSIZE / blockdev.BlockSize

// blockFor returns the first device block of slot's 8-block region.
func blockFor(slot int) int {
	return SwapStart + slot*blocksPerPage
}

// WritePage is component B: it transfers exactly one 4 KiB page from
// page into the 8 consecutive device blocks belonging to slot. Each
// block is fetched through the buffered block layer, copied into, and
// written back -- grounded on fs.Bdev_block_t.Write's fetch/copy/write
// sequence (MkBlock, New_page, Write).
func WritePage(dev blockdev.Device, slot int, page *mem.Bytepg_t) error {
	blockno := blockFor(slot)
	for i := 0; i < blocksPerPage; i++ {
		buf, err := dev.ReadBlock(blockno + i)
		if err != nil {
			return err
		}
		copy(buf.Data[:], page[i*blockdev.BlockSize:(i+1)*blockdev.BlockSize])
		if err := dev.WriteBlock(buf); err != nil {
			dev.ReleaseBlock(buf)
			return err
		}
		dev.ReleaseBlock(buf)
	}
	return nil
}

// ReadPage is component B's inverse: it copies slot's 8 device blocks
// back into page.
func ReadPage(dev blockdev.Device, slot int, page *mem.Bytepg_t) error {
	blockno := blockFor(slot)
	for i := 0; i < blocksPerPage; i++ {
		buf, err := dev.ReadBlock(blockno + i)
		if err != nil {
			return err
		}
		copy(page[i*blockdev.BlockSize:(i+1)*blockdev.BlockSize], buf.Data[:])
		dev.ReleaseBlock(buf)
	}
	return nil
}
