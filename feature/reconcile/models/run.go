package models

import (
	"time"

	"record-reconciler/core/reconcile"
)

// Run statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Run is one reconciliation as stored in the 'reconcile_runs' table.
type Run struct {
	ID          string `gorm:"column:id;primaryKey;size:36" json:"id"`
	InputA      string `gorm:"column:input_a;size:1024" json:"input_a"`
	InputB      string `gorm:"column:input_b;size:1024" json:"input_b"`
	Output      string `gorm:"column:output;size:1024" json:"output"`
	ChunkSize   int    `gorm:"column:chunk_size" json:"chunk_size"`
	Workers     int    `gorm:"column:workers" json:"workers"`
	Pairing     string `gorm:"column:pairing;size:16" json:"pairing"`
	FieldPolicy string `gorm:"column:field_policy;size:16" json:"field_policy"`
	Status      string `gorm:"column:status;size:16;index" json:"status"`
	Error       string `gorm:"column:error;type:text" json:"error,omitempty"`
	Cached      bool   `gorm:"column:cached" json:"cached"`

	Pairs           int   `gorm:"column:pairs" json:"pairs"`
	RecordsA        int   `gorm:"column:records_a" json:"records_a"`
	RecordsB        int   `gorm:"column:records_b" json:"records_b"`
	Written         int   `gorm:"column:written" json:"written"`
	Matched         int   `gorm:"column:matched" json:"matched"`
	OnlyA           int   `gorm:"column:only_a" json:"only_a"`
	OnlyB           int   `gorm:"column:only_b" json:"only_b"`
	Conflicts       int   `gorm:"column:conflicts" json:"conflicts"`
	DuplicateKeysA  int   `gorm:"column:duplicate_keys_a" json:"duplicate_keys_a"`
	DuplicateKeysB  int   `gorm:"column:duplicate_keys_b" json:"duplicate_keys_b"`
	DroppedRecordsA int   `gorm:"column:dropped_records_a" json:"dropped_records_a"`
	DroppedRecordsB int   `gorm:"column:dropped_records_b" json:"dropped_records_b"`
	DurationMs      int64 `gorm:"column:duration_ms" json:"duration_ms"`

	CreatedAt  time.Time  `gorm:"column:created_at;index" json:"created_at"`
	FinishedAt *time.Time `gorm:"column:finished_at" json:"finished_at,omitempty"`
}

// TableName overrides the table name.
func (Run) TableName() string {
	return "reconcile_runs"
}

// ApplySummary copies the counters of a finished reconciliation.
func (r *Run) ApplySummary(s reconcile.Summary) {
	r.Pairs = s.Pairs
	r.RecordsA = s.RecordsA
	r.RecordsB = s.RecordsB
	r.Written = s.Output
	r.Matched = s.Matched
	r.OnlyA = s.OnlyA
	r.OnlyB = s.OnlyB
	r.Conflicts = s.Conflicts
	r.DuplicateKeysA = s.DuplicateKeysA
	r.DuplicateKeysB = s.DuplicateKeysB
	r.DroppedRecordsA = s.DroppedRecordsA
	r.DroppedRecordsB = s.DroppedRecordsB
}

// Finish marks the run as completed or failed.
func (r *Run) Finish(err error, now time.Time) {
	r.FinishedAt = &now
	r.DurationMs = now.Sub(r.CreatedAt).Milliseconds()
	if err != nil {
		r.Status = StatusFailed
		r.Error = err.Error()
		return
	}
	r.Status = StatusCompleted
}
