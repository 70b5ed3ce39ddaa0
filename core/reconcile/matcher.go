package reconcile

import "context"

// MatchChunks reconciles one chunk pair by key.
//
// Keys of A are visited in first-appearance order: a key also present in B is
// merged and removed from B's index, otherwise it is marked "(f2)". Keys left
// in B's index are then marked "(f1)" in B's first-appearance order. Within a
// chunk a repeated key keeps its last record (last write wins) and is reported
// as a DuplicateKeyWarning.
//
// Both indices are owned by the call, so concurrent calls share no state.
func MatchChunks(ctx context.Context, a, b Chunk) (ChunkResult, error) {
	indexA, orderA, dupA := indexChunk(SideA, a)
	indexB, orderB, dupB := indexChunk(SideB, b)

	result := ChunkResult{
		Records:     make([]ReconciledRecord, 0, len(orderA)+len(orderB)),
		DuplicatesA: dupA,
		DuplicatesB: dupB,
	}

	for i, key := range orderA {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return ChunkResult{}, err
			}
		}

		recA := indexA[key]
		if recB, ok := indexB[key]; ok {
			delete(indexB, key)
			result.Records = append(result.Records, MergeRecords(key, recA, recB))
			result.Matched++
			result.Conflicts += Conflicts(recA, recB)
			continue
		}
		result.Records = append(result.Records, MarkMissing(recA, MarkerMissingB))
		result.OnlyA++
	}

	for _, key := range orderB {
		recB, ok := indexB[key]
		if !ok {
			continue
		}
		result.Records = append(result.Records, MarkMissing(recB, MarkerMissingA))
		result.OnlyB++
	}

	return result, nil
}

// indexChunk builds key -> record (last write wins) plus the first-appearance
// order of keys.
func indexChunk(side Side, c Chunk) (map[string]Record, []string, []DuplicateKeyWarning) {
	index := make(map[string]Record, len(c.Records))
	order := make([]string, 0, len(c.Records))
	var duplicates []DuplicateKeyWarning

	for _, rec := range c.Records {
		key := rec.Key()
		if _, seen := index[key]; seen {
			duplicates = append(duplicates, DuplicateKeyWarning{
				Side:       side,
				ChunkIndex: c.Index,
				Key:        key,
				Line:       rec.Line,
			})
		} else {
			order = append(order, key)
		}
		index[key] = rec
	}
	return index, order, duplicates
}
