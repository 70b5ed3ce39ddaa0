package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"record-reconciler/core/reconcile"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_ObserveChunk(t *testing.T) {
	c := NewCollector("test")

	c.ObserveChunk(0, reconcile.ChunkResult{
		Matched:     3,
		OnlyA:       1,
		OnlyB:       2,
		Conflicts:   4,
		DuplicatesA: []reconcile.DuplicateKeyWarning{{Side: reconcile.SideA, Key: "k1"}},
	}, 2*time.Millisecond)
	c.ObserveChunk(1, reconcile.ChunkResult{Matched: 1}, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.ChunksTotal))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.RecordsTotal.WithLabelValues("matched")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.RecordsTotal.WithLabelValues("only_a")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.RecordsTotal.WithLabelValues("only_b")))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.ConflictsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.DuplicateKeys.WithLabelValues("A")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.DuplicateKeys.WithLabelValues("B")))
}

func TestCollector_ObserveRun(t *testing.T) {
	c := NewCollector("test")

	c.ObserveRun(StatusCompleted, &reconcile.Summary{DroppedRecordsB: 5}, time.Second)
	c.ObserveRun(StatusFailed, nil, time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.RunsTotal.WithLabelValues(StatusCompleted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.RunsTotal.WithLabelValues(StatusFailed)))
	assert.Equal(t, 5.0, testutil.ToFloat64(c.DroppedRecords.WithLabelValues("B")))
}

func TestCollector_AsEngineObserver(t *testing.T) {
	c := NewCollector("test")
	engine, err := reconcile.NewEngine(reconcile.Options{ChunkSize: 2, Workers: 2}, nil)
	require.NoError(t, err)
	engine.WithObserver(c)

	a := reconcile.PartitionRecords([]reconcile.Record{
		reconcile.NewRecord("k1", "a"),
		reconcile.NewRecord("k2", "b"),
		reconcile.NewRecord("k3", "c"),
	}, 2)
	b := reconcile.PartitionRecords([]reconcile.Record{
		reconcile.NewRecord("k1", "a"),
		reconcile.NewRecord("k9", "z"),
		reconcile.NewRecord("k3", "x"),
	}, 2)

	_, err = engine.ReconcileChunks(t.Context(), a, b)
	require.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.ChunksTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.RecordsTotal.WithLabelValues("matched")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ConflictsTotal))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector("test")
	c.ObserveRun(StatusCompleted, &reconcile.Summary{}, time.Second)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), "test_runs_total")
	assert.Contains(t, string(body), "test_run_duration_seconds")
}
