package api

import (
	"bytes"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// openSource returns a read-seekable view of the file at path. It prefers
// an mmap-backed reader so the repeated header and table reads the
// stateless core performs stay cheap, and falls back to the plain file
// handle when the mapping is unavailable.
func openSource(path string) (io.ReadSeeker, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}

	size := stat.Size()
	if size > 0 && size <= int64(int(^uint(0)>>1)) {
		data, err := unix.Mmap(
			int(f.Fd()),
			0,
			int(size),
			unix.PROT_READ,
			unix.MAP_SHARED,
		)
		if err == nil {
			_ = f.Close()
			return bytes.NewReader(data), func() error { return unix.Munmap(data) }, nil
		}
	}

	return f, f.Close, nil
}
