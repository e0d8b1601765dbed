package cub

import (
	"errors"
	"fmt"
	"io"
)

// List writes a human-readable rendering of the table of contents to w.
// Failures are reported as formatted text on w rather than returned, and a
// partial table is never written.
func List(r io.ReadSeeker, w io.Writer) {
	_, count, err := Check(r)
	if err != nil {
		fmt.Fprintln(w, errorText(err))
		return
	}
	if count == 0 {
		fmt.Fprintln(w, "Table of contents is empty")
		return
	}

	toc := make([]BlockDescriptor, count)
	if _, err := ReadTOC(r, toc); err != nil {
		fmt.Fprintln(w, errorText(err))
		return
	}

	fmt.Fprintln(w, "Idx  Type Name  Type      Offset      Length")
	fmt.Fprintln(w, "---  ---------  ----  ----------  ----------")
	for i, d := range toc {
		fmt.Fprintf(w, "%3d  %9s  %4d  %10d  %10d\n",
			i, d.Kind, uint32(d.Kind), d.Offset, d.Length)
	}
}

// errorText renders an error for listing output: the short class name for
// structural errors, the underlying detail for I/O failures.
func errorText(err error) string {
	switch {
	case errors.Is(err, ErrInvalidFormat):
		return "INVALID FILE"
	case errors.Is(err, ErrCorruptFile):
		return "CORRUPT FILE"
	case errors.Is(err, ErrOverflow):
		return "OVERFLOW"
	case errors.Is(err, ErrNotFound):
		return "NOT FOUND"
	default:
		return err.Error()
	}
}
