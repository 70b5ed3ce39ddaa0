package recordio

import (
	"bufio"
	"io"
	"strings"
)

// maxLineSize bounds a single input line.
const maxLineSize = 16 * 1024 * 1024

// Reader reads delimiter-separated lines one at a time.
type Reader struct {
	scanner   *bufio.Scanner
	delimiter string
	line      int
}

// NewReader creates a Reader over r splitting on delimiter.
// No quoting or escaping is supported.
func NewReader(r io.Reader, delimiter string) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Reader{scanner: scanner, delimiter: delimiter}
}

// Next returns the fields of the next non-blank line and its 1-based line number.
// It returns io.EOF once the input is exhausted.
func (r *Reader) Next() ([]string, int, error) {
	for r.scanner.Scan() {
		r.line++
		text := strings.TrimSuffix(r.scanner.Text(), "\r")
		if text == "" {
			continue
		}
		return SplitLine(text, r.delimiter), r.line, nil
	}
	if err := r.scanner.Err(); err != nil {
		return nil, r.line, err
	}
	return nil, r.line, io.EOF
}

// Line returns the number of lines consumed so far.
func (r *Reader) Line() int {
	return r.line
}

// SplitLine splits a line on delimiter, keeping empty trailing fields.
func SplitLine(line, delimiter string) []string {
	return strings.Split(line, delimiter)
}
