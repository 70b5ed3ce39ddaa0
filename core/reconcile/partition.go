package reconcile

import (
	"context"
	"errors"
	"fmt"
	"io"

	"record-reconciler/core/recordio"
)

// FieldPolicy decides what happens to records whose field count differs from
// the first record of the same source.
type FieldPolicy string

const (
	// FieldPolicyStrict rejects the record with a MalformedRecordError.
	FieldPolicyStrict FieldPolicy = "strict"
	// FieldPolicyPad pads short records with absent fields and truncates long ones.
	FieldPolicyPad FieldPolicy = "pad"
)

const (
	// ctxCheckInterval is how many lines are read between context checks.
	ctxCheckInterval = 1024
	// chunkPrealloc caps the capacity reserved for a chunk before it fills.
	chunkPrealloc = 4096
)

// PartitionOptions controls how a source is split into chunks.
type PartitionOptions struct {
	// ChunkSize is the maximum number of records per chunk.
	ChunkSize int

	// Delimiter separates fields on a line.
	Delimiter string

	// FieldPolicy handles records of unexpected width.
	FieldPolicy FieldPolicy

	// Source names the input in error messages (usually its location).
	Source string
}

func (o PartitionOptions) withDefaults() PartitionOptions {
	if o.ChunkSize == 0 {
		o.ChunkSize = DefaultChunkSize
	}
	if o.Delimiter == "" {
		o.Delimiter = DefaultDelimiter
	}
	if o.FieldPolicy == "" {
		o.FieldPolicy = FieldPolicyStrict
	}
	return o
}

// Validate checks the options after defaults are applied.
func (o PartitionOptions) Validate() error {
	o = o.withDefaults()
	if o.ChunkSize < 1 || o.ChunkSize > MaxChunkSize {
		return fmt.Errorf("%w: chunk size must be between 1 and %d, got %d", ErrInvalidOptions, MaxChunkSize, o.ChunkSize)
	}
	switch o.FieldPolicy {
	case FieldPolicyStrict, FieldPolicyPad:
	default:
		return fmt.Errorf("%w: unknown field policy %q", ErrInvalidOptions, o.FieldPolicy)
	}
	return nil
}

// Partition reads every line of r and splits the records into chunks of at
// most opts.ChunkSize, preserving input order. The final chunk may be short.
// Any read error aborts partitioning.
func Partition(ctx context.Context, side Side, r io.Reader, opts PartitionOptions) ([]Chunk, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	reader := recordio.NewReader(r, opts.Delimiter)
	chunks := make([]Chunk, 0)
	current := make([]Record, 0, min(opts.ChunkSize, chunkPrealloc))
	expected := 0
	read := 0

	for {
		if read%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		values, line, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: after line %d: %w", ErrSourceRead, sourceName(side, opts.Source), reader.Line(), err)
		}
		read++

		if expected == 0 {
			expected = len(values)
		}
		if len(values) != expected {
			if opts.FieldPolicy == FieldPolicyStrict {
				return nil, &MalformedRecordError{
					Side:     side,
					Source:   opts.Source,
					Line:     line,
					Expected: expected,
					Actual:   len(values),
				}
			}
			values = fitWidth(values, expected)
		}

		record := NewRecord(values...)
		record.Line = line
		current = append(current, record)

		if len(current) >= opts.ChunkSize {
			chunks = append(chunks, Chunk{Index: len(chunks), Records: current})
			current = make([]Record, 0, min(opts.ChunkSize, chunkPrealloc))
		}
	}

	if len(current) > 0 {
		chunks = append(chunks, Chunk{Index: len(chunks), Records: current})
	}

	return chunks, nil
}

// PartitionRecords splits in-memory records into chunks of at most size.
func PartitionRecords(records []Record, size int) []Chunk {
	if size < 1 {
		size = DefaultChunkSize
	}
	chunks := make([]Chunk, 0, (len(records)+size-1)/size)
	for start := 0; start < len(records); start += size {
		end := min(start+size, len(records))
		chunks = append(chunks, Chunk{Index: len(chunks), Records: records[start:end]})
	}
	return chunks
}

// fitWidth pads with empty (absent) values or truncates to width.
func fitWidth(values []string, width int) []string {
	if len(values) > width {
		return values[:width]
	}
	padded := make([]string, width)
	copy(padded, values)
	return padded
}

func sourceName(side Side, source string) string {
	if source != "" {
		return source
	}
	return "source " + side.String()
}
