package cub

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"
)

const headerSize = 6 * 4

// fileHeader holds the decoded words of the fixed header that follows the
// magic tag. Words 1, 4 and 5 are reserved and not retained.
type fileHeader struct {
	endianTag  uint32
	blockCount uint32
	tocOffset  uint32
}

// hostEndianTag returns the endian tag a Cub file written on this host
// would carry. The host order is probed once from the byte layout of a
// known integer, so the same binary behaves on either architecture.
var hostEndianTag = sync.OnceValue(func() uint32 {
	var b [2]byte
	binary.NativeEndian.PutUint16(b[:], 1)
	if b[0] == 1 {
		return littleEndianTag
	}
	return bigEndianTag
})

func fileByteOrder(tag uint32) binary.ByteOrder {
	if tag == bigEndianTag {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// checkFile seeks to the start of r, validates the magic tag and the fixed
// header, and reports whether multi-byte fields are stored in the opposite
// of host order.
func checkFile(r io.ReadSeeker) (hdr fileHeader, swap bool, err error) {
	if _, err = r.Seek(0, io.SeekStart); err != nil {
		return hdr, false, fmt.Errorf("seek header: %w", err)
	}

	var magic [len(MagicCube)]byte
	if _, err = io.ReadFull(r, magic[:]); err != nil {
		return hdr, false, fmt.Errorf("read magic: %w", err)
	}
	if string(magic[:]) != MagicCube {
		return hdr, false, ErrInvalidFormat
	}

	var raw [headerSize]byte
	if _, err = io.ReadFull(r, raw[:]); err != nil {
		return hdr, false, fmt.Errorf("read header: %w", err)
	}

	// The tag patterns survive 4-byte reversal, so either order decodes
	// word 0 correctly.
	hdr.endianTag = binary.LittleEndian.Uint32(raw[0:4])
	if hdr.endianTag != bigEndianTag && hdr.endianTag != littleEndianTag {
		return hdr, false, ErrCorruptFile
	}

	order := fileByteOrder(hdr.endianTag)
	hdr.blockCount = order.Uint32(raw[8:12])
	hdr.tocOffset = order.Uint32(raw[12:16])
	return hdr, hdr.endianTag != hostEndianTag(), nil
}

// Check validates the magic tag and fixed header of a Cub file. It reports
// whether integer fields need byte swapping on this host and how many
// blocks the table of contents declares. The read cursor position after
// the call is unspecified.
func Check(r io.ReadSeeker) (swap bool, count int, err error) {
	hdr, swap, err := checkFile(r)
	if err != nil {
		return false, 0, err
	}
	return swap, int(hdr.blockCount), nil
}
