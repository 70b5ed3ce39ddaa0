// Package reconcile merges two key-value record sources into one reconciled
// record sequence.
//
// Records are matched by their leading key field. Matched records are merged
// field by field with source A winning conflicts; fields missing on one side
// are annotated with a provenance marker ("(f1)" missing from file 1,
// "(f2)" missing from file 2). Records present on one side only are kept and
// their missing fields are replaced by the marker.
//
// # Architecture
//
// The reconcile system consists of four components:
//
// 1. Partitioner: splits each source into fixed-size chunks, preserving input
// order. Field-count mismatches are rejected or padded per FieldPolicy.
//
// 2. MergePolicy: MergeRecords and MarkMissing, pure field-level rules.
//
// 3. ChunkMatcher: MatchChunks indexes one chunk of each side by key and
// emits one reconciled record per distinct key of the pair.
//
// 4. Engine: pairs chunks, runs MatchChunks on a bounded errgroup, waits for
// every pair and concatenates the results in pair index order.
//
// # Pairing caveat
//
// With the default positional pairing, chunk i of A only meets chunk i of B.
// A key stored at different chunk indices on each side is reported twice as
// one-sided, and chunks beyond the shorter side are dropped (counted in the
// Summary). PairingHash regroups records by key hash so that every key meets
// its counterpart.
//
// # Determinism
//
// Output order depends only on pair index and input order, never on worker
// scheduling, so identical inputs always produce identical output.
//
// # Usage Example
//
//	engine, err := reconcile.NewEngine(reconcile.DefaultOptions(), logger)
//	if err != nil {
//	    return err
//	}
//	result, err := engine.Reconcile(ctx, fileA, fileB)
//	for _, rec := range result.Records {
//	    fmt.Println(strings.Join(rec, ","))
//	}
package reconcile
