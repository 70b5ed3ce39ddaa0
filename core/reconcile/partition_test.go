package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linesOf(n int, format string) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, format+"\n", i)
	}
	return sb.String()
}

func TestPartition_ChunkBoundaries(t *testing.T) {
	tests := []struct {
		name      string
		lines     int
		chunkSize int
		wantSizes []int
	}{
		{"Empty input", 0, 3, []int{}},
		{"Single short chunk", 2, 3, []int{2}},
		{"Exact multiple", 6, 3, []int{3, 3}},
		{"Remainder chunk", 7, 3, []int{3, 3, 1}},
		{"Default size", 2500, 0, []int{1000, 1000, 500}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := linesOf(tt.lines, "k%d,v")
			chunks, err := Partition(context.Background(), SideA, strings.NewReader(input), PartitionOptions{ChunkSize: tt.chunkSize})
			require.NoError(t, err)

			sizes := make([]int, 0, len(chunks))
			for i, c := range chunks {
				assert.Equal(t, i, c.Index)
				sizes = append(sizes, c.Len())
			}
			assert.Equal(t, tt.wantSizes, sizes)
		})
	}
}

func TestPartition_PreservesOrderAndLines(t *testing.T) {
	input := "k1,a,b\n\nk2,,c\r\nk3,d,\n"

	chunks, err := Partition(context.Background(), SideA, strings.NewReader(input), PartitionOptions{ChunkSize: 2})
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	first := chunks[0].Records
	assert.Equal(t, "k1", first[0].Key())
	assert.Equal(t, 1, first[0].Line)
	assert.Equal(t, "k2", first[1].Key())
	assert.Equal(t, 3, first[1].Line)
	assert.False(t, first[1].Field(1).Present)
	assert.Equal(t, Value("c"), first[1].Field(2))

	last := chunks[1].Records[0]
	assert.Equal(t, "k3", last.Key())
	assert.Equal(t, 4, last.Line)
	assert.False(t, last.Field(2).Present)
}

func TestPartition_Deterministic(t *testing.T) {
	input := linesOf(25, "k%d,v")

	first, err := Partition(context.Background(), SideB, strings.NewReader(input), PartitionOptions{ChunkSize: 4})
	require.NoError(t, err)
	second, err := Partition(context.Background(), SideB, strings.NewReader(input), PartitionOptions{ChunkSize: 4})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPartition_FieldPolicy(t *testing.T) {
	input := "k1,a,b\nk2,c\nk3,d,e,f\n"

	t.Run("Strict rejects", func(t *testing.T) {
		_, err := Partition(context.Background(), SideB, strings.NewReader(input), PartitionOptions{Source: "b.csv"})

		var malformed *MalformedRecordError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, SideB, malformed.Side)
		assert.Equal(t, "b.csv", malformed.Source)
		assert.Equal(t, 2, malformed.Line)
		assert.Equal(t, 3, malformed.Expected)
		assert.Equal(t, 2, malformed.Actual)
		assert.Equal(t, "malformed record in b.csv at line 2: expected 3 fields, got 2", err.Error())
	})

	t.Run("Pad fits width", func(t *testing.T) {
		chunks, err := Partition(context.Background(), SideA, strings.NewReader(input), PartitionOptions{FieldPolicy: FieldPolicyPad})
		require.NoError(t, err)
		require.Len(t, chunks, 1)

		recs := chunks[0].Records
		require.Len(t, recs, 3)
		for _, r := range recs {
			assert.Equal(t, 3, r.Width())
		}
		assert.False(t, recs[1].Field(2).Present)
		assert.Equal(t, "e", recs[2].Field(2).Value)
	})
}

func TestPartition_InvalidOptions(t *testing.T) {
	_, err := Partition(context.Background(), SideA, strings.NewReader("k,v\n"), PartitionOptions{ChunkSize: -1})
	assert.ErrorIs(t, err, ErrInvalidOptions)

	_, err = Partition(context.Background(), SideA, strings.NewReader("k,v\n"), PartitionOptions{FieldPolicy: "loose"})
	assert.ErrorIs(t, err, ErrInvalidOptions)

	_, err = Partition(context.Background(), SideA, strings.NewReader("k,v\n"), PartitionOptions{ChunkSize: 1 << 60})
	assert.ErrorIs(t, err, ErrInvalidOptions)
}

func TestPartition_LargestChunkSize(t *testing.T) {
	chunks, err := Partition(context.Background(), SideA, strings.NewReader("k1,v\nk2,w\n"), PartitionOptions{ChunkSize: MaxChunkSize})
	require.NoError(t, err)

	require.Len(t, chunks, 1)
	assert.Len(t, chunks[0].Records, 2)
	assert.LessOrEqual(t, cap(chunks[0].Records), chunkPrealloc)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestPartition_ReadError(t *testing.T) {
	_, err := Partition(context.Background(), SideA, failingReader{}, PartitionOptions{Source: "a.csv"})

	assert.ErrorIs(t, err, ErrSourceRead)
	assert.Contains(t, err.Error(), "a.csv")
	assert.Contains(t, err.Error(), "disk on fire")
	assert.Contains(t, err.Error(), "after line 0")
}

func TestPartitionRecords(t *testing.T) {
	records := []Record{NewRecord("k1"), NewRecord("k2"), NewRecord("k3")}

	chunks := PartitionRecords(records, 2)

	require.Len(t, chunks, 2)
	assert.Equal(t, []Record{NewRecord("k1"), NewRecord("k2")}, chunks[0].Records)
	assert.Equal(t, 1, chunks[1].Index)
	assert.Empty(t, PartitionRecords(nil, 2))
}
