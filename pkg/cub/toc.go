package cub

import (
	"fmt"
	"io"
)

// tocRecordSize is the on-disk size of one descriptor: six 32-bit words,
// of which only the first three carry data.
const tocRecordSize = 6 * 4

// BlockDescriptor is one table-of-contents entry locating a payload block.
// A Length of zero means the block is absent.
type BlockDescriptor struct {
	Kind   BlockType
	Offset uint32
	Length uint32
}

// ReadTOC re-validates the header and decodes the table of contents into
// dst, preserving file order. It returns the number of descriptors
// decoded. If dst cannot hold every entry the call fails with ErrOverflow
// before writing anything; on any other error the contents of dst are
// undefined and must not be used.
func ReadTOC(r io.ReadSeeker, dst []BlockDescriptor) (int, error) {
	hdr, _, err := checkFile(r)
	if err != nil {
		return 0, err
	}
	count := int(hdr.blockCount)
	if len(dst) < count {
		return 0, ErrOverflow
	}
	if _, err := r.Seek(int64(hdr.tocOffset), io.SeekStart); err != nil {
		return 0, fmt.Errorf("seek table of contents: %w", err)
	}

	order := fileByteOrder(hdr.endianTag)
	var raw [tocRecordSize]byte
	for i := 0; i < count; i++ {
		if _, err := io.ReadFull(r, raw[:]); err != nil {
			return 0, fmt.Errorf("read descriptor %d: %w", i, err)
		}
		dst[i] = BlockDescriptor{
			Kind:   BlockType(order.Uint32(raw[0:4])),
			Offset: order.Uint32(raw[4:8]),
			Length: order.Uint32(raw[8:12]),
		}
	}
	return count, nil
}

// TOC reads the full table of contents, sized to the block count the
// header declares.
func TOC(r io.ReadSeeker) ([]BlockDescriptor, error) {
	_, count, err := Check(r)
	if err != nil {
		return nil, err
	}
	toc := make([]BlockDescriptor, count)
	if _, err := ReadTOC(r, toc); err != nil {
		return nil, err
	}
	return toc, nil
}
