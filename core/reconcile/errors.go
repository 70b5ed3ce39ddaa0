package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceRead wraps any failure to read an input source.
	ErrSourceRead = errors.New("source read failed")

	// ErrInvalidOptions is returned when engine or partition options are unusable.
	ErrInvalidOptions = errors.New("invalid reconcile options")
)

// MalformedRecordError reports a record whose field count differs from the
// first record of the same source.
type MalformedRecordError struct {
	Side     Side
	Source   string
	Line     int
	Expected int
	Actual   int
}

func (e *MalformedRecordError) Error() string {
	source := e.Source
	if source == "" {
		source = "source " + e.Side.String()
	}
	return fmt.Sprintf("malformed record in %s at line %d: expected %d fields, got %d",
		source, e.Line, e.Expected, e.Actual)
}

// DuplicateKeyWarning records a key seen more than once within one chunk.
// The later record replaced the earlier one.
type DuplicateKeyWarning struct {
	Side       Side
	ChunkIndex int
	Key        string
	Line       int
}

func (w DuplicateKeyWarning) String() string {
	return fmt.Sprintf("duplicate key %q in source %s chunk %d (line %d wins)", w.Key, w.Side, w.ChunkIndex, w.Line)
}
