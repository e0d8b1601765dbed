package cub

import (
	"fmt"
	"io"
)

// copyChunkSize bounds the scratch buffer used when streaming a payload.
const copyChunkSize = 1024

// copyBlock streams exactly length bytes of r starting at offset into w.
// The payload is copied verbatim; a source that runs dry before length is
// exhausted is reported as an I/O failure.
func copyBlock(r io.ReadSeeker, offset, length uint32, w io.Writer) error {
	if _, err := r.Seek(int64(offset), io.SeekStart); err != nil {
		return fmt.Errorf("seek block payload: %w", err)
	}

	var buf [copyChunkSize]byte
	remaining := int64(length)
	for remaining > 0 {
		chunk := buf[:]
		if remaining < int64(len(chunk)) {
			chunk = chunk[:remaining]
		}
		n, err := r.Read(chunk)
		if n == 0 {
			if err == nil || err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return fmt.Errorf("read block payload: %w", err)
		}
		if _, err := w.Write(chunk[:n]); err != nil {
			return fmt.Errorf("write block payload: %w", err)
		}
		remaining -= int64(n)
	}
	return nil
}

// extractionTOC reads the full table of contents for a lookup, treating an
// empty table as corruption.
func extractionTOC(r io.ReadSeeker) ([]BlockDescriptor, error) {
	toc, err := TOC(r)
	if err != nil {
		return nil, err
	}
	if len(toc) == 0 {
		return nil, ErrCorruptFile
	}
	return toc, nil
}

// ExtractByIndex streams the payload of the block at the given table
// position into w. An index outside the table, or a descriptor with zero
// length, yields ErrNotFound.
func ExtractByIndex(r io.ReadSeeker, index int, w io.Writer) error {
	toc, err := extractionTOC(r)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(toc) || toc[index].Length == 0 {
		return ErrNotFound
	}
	return copyBlock(r, toc[index].Offset, toc[index].Length, w)
}

// ExtractByType streams the payload of the first block of the given kind,
// in table order. Blocks of the same kind after the first are not
// reachable through this lookup. No match, or a first match with zero
// length, yields ErrNotFound.
func ExtractByType(r io.ReadSeeker, kind BlockType, w io.Writer) error {
	toc, err := extractionTOC(r)
	if err != nil {
		return err
	}
	for i := range toc {
		if toc[i].Kind != kind {
			continue
		}
		if toc[i].Length == 0 {
			return ErrNotFound
		}
		return copyBlock(r, toc[i].Offset, toc[i].Length, w)
	}
	return ErrNotFound
}
