package reconcile

import "time"

// Side identifies which input a record came from.
type Side int

const (
	// SideA is the first input file ("file 1").
	SideA Side = iota
	// SideB is the second input file ("file 2").
	SideB
)

// String returns the short label used in logs and errors.
func (s Side) String() string {
	if s == SideA {
		return "A"
	}
	return "B"
}

const (
	// MarkerMissingA annotates a value that is missing from file 1.
	MarkerMissingA = "(f1)"
	// MarkerMissingB annotates a value that is missing from file 2.
	MarkerMissingB = "(f2)"
)

const (
	// DefaultChunkSize is the number of records held by one chunk.
	DefaultChunkSize = 1000
	// MaxChunkSize is the largest accepted chunk size.
	MaxChunkSize = 1_000_000
	// DefaultWorkers is the number of chunk pairs matched concurrently.
	DefaultWorkers = 4
	// DefaultDelimiter separates fields on a line.
	DefaultDelimiter = ","
)

// Field is a single value field. An empty field on the input line is absent.
type Field struct {
	Value   string
	Present bool
}

// Value builds a present field.
func Value(v string) Field {
	return Field{Value: v, Present: true}
}

// Missing builds an absent field.
func Missing() Field {
	return Field{}
}

// Record is one parsed input line. Fields[0] is the key.
type Record struct {
	// Fields holds the key followed by the value fields.
	Fields []Field

	// Line is the 1-based line number in the source, 0 when built in memory.
	Line int
}

// NewRecord builds a record from raw strings, treating "" as absent.
// The key is always present.
func NewRecord(values ...string) Record {
	fields := make([]Field, len(values))
	for i, v := range values {
		if i == 0 || v != "" {
			fields[i] = Value(v)
		}
	}
	return Record{Fields: fields}
}

// Key returns the join key of the record.
func (r Record) Key() string {
	if len(r.Fields) == 0 {
		return ""
	}
	return r.Fields[0].Value
}

// Width returns the number of fields including the key.
func (r Record) Width() int {
	return len(r.Fields)
}

// Field returns the field at index i, or an absent field when out of range.
func (r Record) Field(i int) Field {
	if i < 0 || i >= len(r.Fields) {
		return Missing()
	}
	return r.Fields[i]
}

// Chunk is a positional slice of one source's records.
type Chunk struct {
	// Index is the position of the chunk in its source.
	Index int

	// Records are kept in input order.
	Records []Record
}

// Len returns the number of records in the chunk.
func (c Chunk) Len() int {
	return len(c.Records)
}

// ChunkPair couples chunk i of A with chunk i of B.
type ChunkPair struct {
	Index int
	A     Chunk
	B     Chunk
}

// ReconciledRecord is one output row: key first, every value field resolved.
type ReconciledRecord []string

// Key returns the key of the reconciled record.
func (r ReconciledRecord) Key() string {
	if len(r) == 0 {
		return ""
	}
	return r[0]
}

// ChunkResult is the output of matching one chunk pair.
type ChunkResult struct {
	// Records are the reconciled rows of the pair.
	Records []ReconciledRecord

	// Matched counts keys present on both sides.
	Matched int

	// OnlyA counts keys present only in A's chunk.
	OnlyA int

	// OnlyB counts keys present only in B's chunk.
	OnlyB int

	// Conflicts counts value fields present on both sides with different values.
	// A's value was kept for each of them.
	Conflicts int

	// DuplicatesA lists keys that occurred more than once in A's chunk.
	DuplicatesA []DuplicateKeyWarning

	// DuplicatesB lists keys that occurred more than once in B's chunk.
	DuplicatesB []DuplicateKeyWarning
}

// Summary aggregates counters for a whole reconciliation.
type Summary struct {
	// Pairs is the number of chunk pairs that were matched.
	Pairs int `json:"pairs"`

	// ChunksA is the number of chunks produced for source A.
	ChunksA int `json:"chunks_a"`

	// ChunksB is the number of chunks produced for source B.
	ChunksB int `json:"chunks_b"`

	// RecordsA is the number of records read from source A.
	RecordsA int `json:"records_a"`

	// RecordsB is the number of records read from source B.
	RecordsB int `json:"records_b"`

	// Output is the number of reconciled records produced.
	Output int `json:"output"`

	// Matched counts keys merged from both sides.
	Matched int `json:"matched"`

	// OnlyA counts keys emitted with "(f2)" markers.
	OnlyA int `json:"only_a"`

	// OnlyB counts keys emitted with "(f1)" markers.
	OnlyB int `json:"only_b"`

	// Conflicts counts value fields where A's value overrode a different B value.
	Conflicts int `json:"conflicts"`

	// DuplicateKeysA counts last-write-wins overwrites in source A.
	DuplicateKeysA int `json:"duplicate_keys_a"`

	// DuplicateKeysB counts last-write-wins overwrites in source B.
	DuplicateKeysB int `json:"duplicate_keys_b"`

	// DroppedChunksA counts chunks of A beyond B's chunk count (positional pairing only).
	DroppedChunksA int `json:"dropped_chunks_a"`

	// DroppedChunksB counts chunks of B beyond A's chunk count (positional pairing only).
	DroppedChunksB int `json:"dropped_chunks_b"`

	// DroppedRecordsA counts records in DroppedChunksA.
	DroppedRecordsA int `json:"dropped_records_a"`

	// DroppedRecordsB counts records in DroppedChunksB.
	DroppedRecordsB int `json:"dropped_records_b"`

	// Duration is the wall time of the reconciliation.
	Duration time.Duration `json:"duration"`
}

// Result is the ordered output of a reconciliation plus its summary.
type Result struct {
	Records []ReconciledRecord
	Summary Summary
}
