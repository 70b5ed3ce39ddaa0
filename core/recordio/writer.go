package recordio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Writer writes one delimiter-joined line per record.
type Writer struct {
	w         *bufio.Writer
	delimiter string
	count     int
}

// NewWriter creates a buffered Writer over w.
func NewWriter(w io.Writer, delimiter string) *Writer {
	return &Writer{w: bufio.NewWriter(w), delimiter: delimiter}
}

// Write writes fields joined by the delimiter followed by a newline.
func (w *Writer) Write(fields []string) error {
	if _, err := w.w.WriteString(strings.Join(fields, w.delimiter)); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	w.count++
	return nil
}

// Count returns the number of lines written.
func (w *Writer) Count() int {
	return w.count
}

// Flush flushes buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// AtomicFile writes to a temporary file next to the destination and renames it
// into place on Commit. Readers never observe a half-written destination.
type AtomicFile struct {
	*Writer
	file *os.File
	path string
	done bool
}

// CreateAtomic opens a temporary file in the directory of path.
func CreateAtomic(path, delimiter string) (*AtomicFile, error) {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	return &AtomicFile{
		Writer: NewWriter(f, delimiter),
		file:   f,
		path:   path,
	}, nil
}

// Commit flushes, syncs and renames the temporary file onto the destination.
func (a *AtomicFile) Commit() error {
	if a.done {
		return fmt.Errorf("atomic file %s already closed", a.path)
	}
	a.done = true

	if err := a.Writer.Flush(); err != nil {
		a.cleanup()
		return fmt.Errorf("failed to flush %s: %w", a.path, err)
	}
	if err := a.file.Sync(); err != nil {
		a.cleanup()
		return fmt.Errorf("failed to sync %s: %w", a.path, err)
	}
	if err := a.file.Close(); err != nil {
		_ = os.Remove(a.file.Name())
		return fmt.Errorf("failed to close %s: %w", a.path, err)
	}
	if err := os.Rename(a.file.Name(), a.path); err != nil {
		_ = os.Remove(a.file.Name())
		return fmt.Errorf("failed to move output into %s: %w", a.path, err)
	}
	return nil
}

// Abort discards the temporary file. It is a no-op after Commit.
func (a *AtomicFile) Abort() {
	if a.done {
		return
	}
	a.done = true
	a.cleanup()
}

func (a *AtomicFile) cleanup() {
	_ = a.file.Close()
	_ = os.Remove(a.file.Name())
}
