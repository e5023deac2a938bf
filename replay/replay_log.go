// Package replay reads the bzip2-compressed ASCII log-replay fixtures used
// for golden-master regression of the RSP sibling core: fixed-width
// records of 1468 ASCII bytes per line. The container format and line
// width are fixed by the harness contract; the per-line field layout is
// not documented, so this reader exposes validated raw lines rather than
// guessing a structured decode (see DESIGN.md Open Questions). It is a
// standalone package; cmd/n64replay imports it without the core.
package replay

import (
	"bufio"
	"compress/bzip2"
	"fmt"
	"io"
)

// LineWidth is the fixed ASCII record width of a log-replay line.
const LineWidth = 1468

// Reader decodes a bzip2-compressed log-replay stream into fixed-width
// ASCII lines.
type Reader struct {
	scanner *bufio.Scanner
	lineNum int
}

// NewReader wraps r, a bzip2-compressed stream, for line-at-a-time replay.
func NewReader(r io.Reader) *Reader {
	bz := bzip2.NewReader(r)
	sc := bufio.NewScanner(bz)
	sc.Buffer(make([]byte, 0, LineWidth+64), LineWidth+64)
	return &Reader{scanner: sc}
}

// Next returns the next validated line, or io.EOF once the stream is
// exhausted. A line whose length does not match LineWidth is a malformed
// fixture and returned as an error rather than silently accepted.
func (r *Reader) Next() (string, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	r.lineNum++
	line := r.scanner.Text()
	if len(line) != LineWidth {
		return "", fmt.Errorf("replay: line %d is %d bytes, want %d", r.lineNum, len(line), LineWidth)
	}
	return line, nil
}

// ReadAll drains the reader, returning every validated line in order.
func ReadAll(r io.Reader) ([]string, error) {
	rd := NewReader(r)
	var lines []string
	for {
		line, err := rd.Next()
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return lines, err
		}
		lines = append(lines, line)
	}
}
