package reconcile

import (
	"context"
	"fmt"
	"hash/fnv"
	"io"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Pairing selects how chunks of A and B are paired for matching.
type Pairing string

const (
	// PairingPositional pairs chunk i of A with chunk i of B. A key that lands
	// in different chunk indices on each side is never matched, and chunks
	// beyond the shorter side are dropped.
	PairingPositional Pairing = "positional"

	// PairingHash regroups both sides by a hash of the key so that equal keys
	// always meet in the same pair. Nothing is dropped.
	PairingHash Pairing = "hash"
)

// maxLoggedDuplicates bounds per-key duplicate warnings in the log.
const maxLoggedDuplicates = 10

// Options configures an Engine.
type Options struct {
	// ChunkSize is the number of records per chunk.
	ChunkSize int

	// Workers is the number of chunk pairs matched concurrently.
	Workers int

	// Delimiter separates fields on a line.
	Delimiter string

	// FieldPolicy handles records of unexpected width.
	FieldPolicy FieldPolicy

	// Pairing selects positional or hash pairing.
	Pairing Pairing

	// Timeout bounds a whole reconciliation. Zero means no timeout.
	Timeout time.Duration

	// SourceA and SourceB name the inputs in errors and logs.
	SourceA string
	SourceB string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		ChunkSize:   DefaultChunkSize,
		Workers:     DefaultWorkers,
		Delimiter:   DefaultDelimiter,
		FieldPolicy: FieldPolicyStrict,
		Pairing:     PairingPositional,
	}
}

// WithDefaults fills zero fields with DefaultOptions.
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.ChunkSize == 0 {
		o.ChunkSize = d.ChunkSize
	}
	if o.Workers == 0 {
		o.Workers = d.Workers
	}
	if o.Delimiter == "" {
		o.Delimiter = d.Delimiter
	}
	if o.FieldPolicy == "" {
		o.FieldPolicy = d.FieldPolicy
	}
	if o.Pairing == "" {
		o.Pairing = d.Pairing
	}
	return o
}

// Validate checks the options after defaults are applied.
func (o Options) Validate() error {
	o = o.WithDefaults()
	if o.Workers < 1 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidOptions, o.Workers)
	}
	if o.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalidOptions)
	}
	switch o.Pairing {
	case PairingPositional, PairingHash:
	default:
		return fmt.Errorf("%w: unknown pairing %q", ErrInvalidOptions, o.Pairing)
	}
	return o.partitionOptions(SideA).Validate()
}

// CacheKey returns a key identifying results produced with these options.
// Callers sharing a key share one build, so the timeout is part of it.
func (o Options) CacheKey() string {
	o = o.WithDefaults()
	return o.SourceA + "|" + o.SourceB + "|" + strconv.Itoa(o.ChunkSize) + "|" +
		o.Delimiter + "|" + string(o.FieldPolicy) + "|" + string(o.Pairing) + "|" +
		o.Timeout.String()
}

func (o Options) partitionOptions(side Side) PartitionOptions {
	source := o.SourceA
	if side == SideB {
		source = o.SourceB
	}
	return PartitionOptions{
		ChunkSize:   o.ChunkSize,
		Delimiter:   o.Delimiter,
		FieldPolicy: o.FieldPolicy,
		Source:      source,
	}
}

// ChunkObserver is notified after each chunk pair has been matched.
// Implementations must be safe for concurrent use.
type ChunkObserver interface {
	ObserveChunk(pairIndex int, result ChunkResult, elapsed time.Duration)
}

// Engine partitions two sources, matches chunk pairs on a bounded worker pool
// and concatenates the results in pair order.
type Engine struct {
	opts     Options
	logger   *zap.Logger
	observer ChunkObserver
}

// NewEngine validates opts and creates an Engine. A nil logger disables logging.
func NewEngine(opts Options, logger *zap.Logger) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{opts: opts.WithDefaults(), logger: logger}, nil
}

// WithObserver sets an observer called after every matched chunk pair.
func (e *Engine) WithObserver(o ChunkObserver) *Engine {
	e.observer = o
	return e
}

// Options returns the effective options of the engine.
func (e *Engine) Options() Options {
	return e.opts
}

// Reconcile partitions a and b independently and reconciles them.
// The first error from either side or any chunk pair aborts the whole run.
func (e *Engine) Reconcile(ctx context.Context, a, b io.Reader) (*Result, error) {
	start := time.Now()
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	var chunksA, chunksB []Chunk
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		chunksA, err = Partition(gctx, SideA, a, e.opts.partitionOptions(SideA))
		return err
	})
	g.Go(func() error {
		var err error
		chunksB, err = Partition(gctx, SideB, b, e.opts.partitionOptions(SideB))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result, err := e.reconcileChunks(ctx, chunksA, chunksB)
	if err != nil {
		return nil, err
	}
	result.Summary.Duration = time.Since(start)
	return result, nil
}

// ReconcileChunks reconciles already partitioned sources.
func (e *Engine) ReconcileChunks(ctx context.Context, chunksA, chunksB []Chunk) (*Result, error) {
	start := time.Now()
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	result, err := e.reconcileChunks(ctx, chunksA, chunksB)
	if err != nil {
		return nil, err
	}
	result.Summary.Duration = time.Since(start)
	return result, nil
}

func (e *Engine) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.opts.Timeout > 0 {
		return context.WithTimeout(ctx, e.opts.Timeout)
	}
	return context.WithCancel(ctx)
}

func (e *Engine) reconcileChunks(ctx context.Context, chunksA, chunksB []Chunk) (*Result, error) {
	summary := Summary{
		ChunksA:  len(chunksA),
		ChunksB:  len(chunksB),
		RecordsA: countRecords(chunksA),
		RecordsB: countRecords(chunksB),
	}

	var pairs []ChunkPair
	if e.opts.Pairing == PairingHash {
		pairs = pairByHash(chunksA, chunksB)
	} else {
		pairs = pairByPosition(chunksA, chunksB, &summary)
		if summary.DroppedChunksA > 0 || summary.DroppedChunksB > 0 {
			e.logger.Warn("Unpaired chunks dropped",
				zap.Int("dropped_chunks_a", summary.DroppedChunksA),
				zap.Int("dropped_records_a", summary.DroppedRecordsA),
				zap.Int("dropped_chunks_b", summary.DroppedChunksB),
				zap.Int("dropped_records_b", summary.DroppedRecordsB),
			)
		}
	}
	summary.Pairs = len(pairs)

	// One slot per pair, written once by its task.
	slots := make([]ChunkResult, len(pairs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)
	for i, pair := range pairs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			started := time.Now()
			res, err := MatchChunks(gctx, pair.A, pair.B)
			if err != nil {
				return fmt.Errorf("chunk pair %d: %w", pair.Index, err)
			}
			slots[i] = res
			if e.observer != nil {
				e.observer.ObserveChunk(pair.Index, res, time.Since(started))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for i := range slots {
		total += len(slots[i].Records)
	}
	records := make([]ReconciledRecord, 0, total)
	logged := 0
	for i := range slots {
		res := &slots[i]
		records = append(records, res.Records...)
		summary.Matched += res.Matched
		summary.OnlyA += res.OnlyA
		summary.OnlyB += res.OnlyB
		summary.Conflicts += res.Conflicts
		summary.DuplicateKeysA += len(res.DuplicatesA)
		summary.DuplicateKeysB += len(res.DuplicatesB)
		for _, dups := range [][]DuplicateKeyWarning{res.DuplicatesA, res.DuplicatesB} {
			for _, d := range dups {
				if logged >= maxLoggedDuplicates {
					break
				}
				e.logger.Warn("Duplicate key, keeping last record", zap.Stringer("warning", d))
				logged++
			}
		}
	}
	summary.Output = len(records)

	return &Result{Records: records, Summary: summary}, nil
}

func pairByPosition(chunksA, chunksB []Chunk, summary *Summary) []ChunkPair {
	n := min(len(chunksA), len(chunksB))
	pairs := make([]ChunkPair, n)
	for i := 0; i < n; i++ {
		pairs[i] = ChunkPair{Index: i, A: chunksA[i], B: chunksB[i]}
	}

	for _, c := range chunksA[n:] {
		summary.DroppedChunksA++
		summary.DroppedRecordsA += c.Len()
	}
	for _, c := range chunksB[n:] {
		summary.DroppedChunksB++
		summary.DroppedRecordsB += c.Len()
	}
	return pairs
}

// pairByHash regroups records of both sides into max(len(A), len(B)) buckets
// by key hash. Records keep their relative input order inside a bucket.
func pairByHash(chunksA, chunksB []Chunk) []ChunkPair {
	n := max(len(chunksA), len(chunksB))
	if n == 0 {
		return nil
	}
	pairs := make([]ChunkPair, n)
	for i := range pairs {
		pairs[i] = ChunkPair{Index: i, A: Chunk{Index: i}, B: Chunk{Index: i}}
	}
	for _, c := range chunksA {
		for _, rec := range c.Records {
			p := &pairs[bucketOf(rec.Key(), n)]
			p.A.Records = append(p.A.Records, rec)
		}
	}
	for _, c := range chunksB {
		for _, rec := range c.Records {
			p := &pairs[bucketOf(rec.Key(), n)]
			p.B.Records = append(p.B.Records, rec)
		}
	}
	return pairs
}

func bucketOf(key string, n int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(n))
}

func countRecords(chunks []Chunk) int {
	n := 0
	for _, c := range chunks {
		n += c.Len()
	}
	return n
}
