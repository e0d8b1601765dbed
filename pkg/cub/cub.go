// Package cub reads Cub container files, the archive format written by the
// CUBIT meshing application.
//
// A Cub file is a 4-byte magic tag, a fixed six-word header, a table of
// contents of typed block descriptors, and the raw block payloads. The
// package validates the container, decodes the table of contents and
// streams individual payloads to a caller-supplied writer, byte-swapping
// integer fields when the file's recorded byte order differs from the
// host's. Every operation re-derives header and table state from the
// reader it is given; nothing is cached between calls.
package cub

import "strings"

// MagicCube is the tag at the start of every Cub file. It is plain ASCII
// and never byte-swapped.
const MagicCube = "CUBE"

// Endian tags recorded in header word 0. Both patterns read identically in
// either byte order, so the tag can be decoded before the order is known.
const (
	bigEndianTag    uint32 = 0xFFFFFFFF
	littleEndianTag uint32 = 0x00000000
)

// BlockType identifies the payload stored in one table-of-contents block.
type BlockType uint32

const (
	BlockGeneric BlockType = iota
	BlockACIS
	BlockMesh
	BlockFacet
	BlockFreeMesh
	BlockGranite
	BlockAssembly
)

var blockTypeNames = [...]string{
	"?",
	"ACIS",
	"MESH",
	"FACET",
	"FREE MESH",
	"GRANITE",
	"ASSEMBLY",
}

// String returns the display name for the block type. Values outside the
// known range render as the generic "?" placeholder.
func (t BlockType) String() string {
	if int(t) < len(blockTypeNames) {
		return blockTypeNames[t]
	}
	return blockTypeNames[BlockGeneric]
}

// ParseBlockType maps a display name back to its BlockType. Matching is
// case-insensitive and accepts '-' or '_' in place of spaces. The generic
// "?" name is not parseable; it stands for every unknown value.
func ParseBlockType(s string) (BlockType, bool) {
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	for i := BlockACIS; i <= BlockAssembly; i++ {
		if strings.EqualFold(s, blockTypeNames[i]) {
			return i, true
		}
	}
	return BlockGeneric, false
}
