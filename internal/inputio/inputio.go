// Package inputio reads the integer files the benchmark driver's
// --insert/--search/--delete flags point at: one base-10 signed 32-bit
// integer per token, whitespace-separated, with '#' starting a
// line comment.
package inputio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/DataDog/zstd"
)

// ReadInts reads every integer token out of the file at path. A ".zst"
// suffix selects transparent zstd decompression; anything else is read
// as plain text, using a memory-mapped fast path for large files.
func ReadInts(path string) ([]int32, error) {
	if strings.HasSuffix(path, ".zst") {
		return readCompressed(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("inputio: open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("inputio: stat %s: %w", path, err)
	}

	if info.Size() >= mmapThreshold {
		if ints, ok, err := readMmap(f, info.Size()); ok {
			return ints, err
		}
		// Fall through to the buffered reader if mmap isn't available.
	}

	return parse(f)
}

func readCompressed(path string) ([]int32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("inputio: open %s: %w", path, err)
	}
	defer f.Close()

	r := zstd.NewReader(f)
	defer r.Close()

	return parse(r)
}

// parse reads one line at a time, strips anything from '#' to end of
// line, and tokenizes the rest on whitespace.
func parse(r io.Reader) ([]int32, error) {
	var out []int32
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	for sc.Scan() {
		line := sc.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		for _, tok := range strings.Fields(line) {
			v, err := parseInt(tok)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("inputio: scan: %w", err)
	}
	return out, nil
}

func parseInt(tok string) (int32, error) {
	v, err := strconv.ParseInt(tok, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("inputio: invalid integer %q: %w", tok, err)
	}
	return int32(v), nil
}
