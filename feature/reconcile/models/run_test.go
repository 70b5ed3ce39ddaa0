package models

import (
	"errors"
	"testing"
	"time"

	"record-reconciler/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ApplySummary(t *testing.T) {
	var r Run
	r.ApplySummary(reconcile.Summary{
		Pairs: 2, RecordsA: 10, RecordsB: 9, Output: 12,
		Matched: 7, OnlyA: 3, OnlyB: 2, Conflicts: 1,
		DuplicateKeysA: 1, DroppedRecordsB: 4,
	})

	assert.Equal(t, 2, r.Pairs)
	assert.Equal(t, 12, r.Written)
	assert.Equal(t, 7, r.Matched)
	assert.Equal(t, 3, r.OnlyA)
	assert.Equal(t, 2, r.OnlyB)
	assert.Equal(t, 1, r.DuplicateKeysA)
	assert.Equal(t, 4, r.DroppedRecordsB)
}

func TestRun_Finish(t *testing.T) {
	created := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Completed", func(t *testing.T) {
		r := Run{Status: StatusRunning, CreatedAt: created}
		r.Finish(nil, created.Add(1500*time.Millisecond))

		assert.Equal(t, StatusCompleted, r.Status)
		assert.Empty(t, r.Error)
		assert.Equal(t, int64(1500), r.DurationMs)
		require.NotNil(t, r.FinishedAt)
	})

	t.Run("Failed", func(t *testing.T) {
		r := Run{Status: StatusRunning, CreatedAt: created}
		r.Finish(errors.New("boom"), created.Add(time.Second))

		assert.Equal(t, StatusFailed, r.Status)
		assert.Equal(t, "boom", r.Error)
	})
}
