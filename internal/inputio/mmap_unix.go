//go:build unix || darwin || linux || freebsd || openbsd || netbsd

package inputio

import (
	"bytes"
	"os"

	"golang.org/x/sys/unix"
)

// mmapThreshold is the file size above which ReadInts prefers a
// memory-mapped read over a buffered one.
const mmapThreshold = 8 << 20 // 8 MiB

// readMmap maps f read-only and parses it in place. The bool return is
// false when mmap itself failed, signaling the caller to fall back to a
// buffered read instead of treating it as a parse error.
func readMmap(f *os.File, size int64) ([]int32, bool, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return nil, false, nil
	}
	defer unix.Munmap(data)

	ints, err := parse(bytes.NewReader(data))
	return ints, true, err
}
