package reconcile

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chunkOf(index int, records ...Record) Chunk {
	return Chunk{Index: index, Records: records}
}

// TestMatchChunks_DisjointKeys tests that disjoint keys are all kept with markers.
func TestMatchChunks_DisjointKeys(t *testing.T) {
	a := chunkOf(0, NewRecord("a1", "x", ""), NewRecord("a2", "", "y"))
	b := chunkOf(0, NewRecord("b1", "", "z"), NewRecord("b2", "w", ""), NewRecord("b3", "v", "u"))

	res, err := MatchChunks(context.Background(), a, b)
	require.NoError(t, err)

	assert.Len(t, res.Records, 5)
	assert.Equal(t, 0, res.Matched)
	assert.Equal(t, 2, res.OnlyA)
	assert.Equal(t, 3, res.OnlyB)

	assert.Equal(t, ReconciledRecord{"a1", "x", "(f2)"}, res.Records[0])
	assert.Equal(t, ReconciledRecord{"a2", "(f2)", "y"}, res.Records[1])
	assert.Equal(t, ReconciledRecord{"b1", "(f1)", "z"}, res.Records[2])
	assert.Equal(t, ReconciledRecord{"b2", "w", "(f1)"}, res.Records[3])
	assert.Equal(t, ReconciledRecord{"b3", "v", "u"}, res.Records[4])
}

// TestMatchChunks_IdenticalKeys tests that identical key sets merge one-to-one with A winning.
func TestMatchChunks_IdenticalKeys(t *testing.T) {
	var recsA, recsB []Record
	for i := 0; i < 50; i++ {
		key := fmt.Sprintf("k%02d", i)
		recsA = append(recsA, NewRecord(key, "a"+key, "shared"))
		recsB = append(recsB, NewRecord(key, "b"+key, "shared"))
	}

	res, err := MatchChunks(context.Background(), chunkOf(0, recsA...), chunkOf(0, recsB...))
	require.NoError(t, err)

	assert.Len(t, res.Records, 50)
	assert.Equal(t, 50, res.Matched)
	assert.Equal(t, 50, res.Conflicts)
	for i, rec := range res.Records {
		key := fmt.Sprintf("k%02d", i)
		assert.Equal(t, ReconciledRecord{key, "a" + key, "shared"}, rec)
	}
}

func TestMatchChunks_MixedKeys(t *testing.T) {
	a := chunkOf(0, NewRecord("k1", "a", ""), NewRecord("k2", "x", ""))
	b := chunkOf(0, NewRecord("k2", "y", "z"), NewRecord("k3", "", "q"))

	res, err := MatchChunks(context.Background(), a, b)
	require.NoError(t, err)

	assert.Equal(t, []ReconciledRecord{
		{"k1", "a", "(f2)"},
		{"k2", "x", "z(f1)"},
		{"k3", "(f1)", "q"},
	}, res.Records)
	assert.Equal(t, 1, res.Matched)
	assert.Equal(t, 1, res.OnlyA)
	assert.Equal(t, 1, res.OnlyB)
}

// TestMatchChunks_DuplicateKeys tests last-write-wins and duplicate reporting.
func TestMatchChunks_DuplicateKeys(t *testing.T) {
	first := NewRecord("k1", "old", "")
	first.Line = 1
	second := NewRecord("k1", "new", "")
	second.Line = 2
	a := chunkOf(3, first, second)
	b := chunkOf(3, NewRecord("k1", "b", "z"), NewRecord("k1", "b2", "z2"))

	res, err := MatchChunks(context.Background(), a, b)
	require.NoError(t, err)

	require.Len(t, res.Records, 1)
	assert.Equal(t, ReconciledRecord{"k1", "new", "z2(f1)"}, res.Records[0])

	require.Len(t, res.DuplicatesA, 1)
	assert.Equal(t, DuplicateKeyWarning{Side: SideA, ChunkIndex: 3, Key: "k1", Line: 2}, res.DuplicatesA[0])
	assert.Len(t, res.DuplicatesB, 1)
}

func TestMatchChunks_EmptyChunks(t *testing.T) {
	res, err := MatchChunks(context.Background(), Chunk{}, Chunk{})
	require.NoError(t, err)
	assert.Empty(t, res.Records)

	res, err = MatchChunks(context.Background(), chunkOf(0, NewRecord("k1", "a")), Chunk{})
	require.NoError(t, err)
	assert.Equal(t, []ReconciledRecord{{"k1", "a"}}, res.Records)
}

func TestMatchChunks_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := MatchChunks(ctx, chunkOf(0, NewRecord("k1", "a")), Chunk{})
	assert.ErrorIs(t, err, context.Canceled)
}
