package reconcile

import (
	"context"
	"errors"
	"fmt"

	"record-reconciler/feature/reconcile/models"

	"gorm.io/gorm"
)

// ErrRunNotFound is returned when no run has the requested id.
var ErrRunNotFound = errors.New("run not found")

// ErrHistoryDisabled is returned by history queries when no database is connected.
var ErrHistoryDisabled = errors.New("run history is not configured")

const (
	defaultListLimit = 20
	maxListLimit     = 500
)

// Store persists runs with GORM.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store. db may be nil, in which case writes are skipped
// and reads return ErrHistoryDisabled.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Enabled reports whether a database is attached.
func (s *Store) Enabled() bool {
	return s != nil && s.db != nil
}

// Migrate creates or updates the runs table.
func (s *Store) Migrate() error {
	if !s.Enabled() {
		return nil
	}
	if err := s.db.AutoMigrate(&models.Run{}); err != nil {
		return fmt.Errorf("failed to migrate reconcile_runs: %w", err)
	}
	return nil
}

// Save inserts or updates a run.
func (s *Store) Save(ctx context.Context, run *models.Run) error {
	if !s.Enabled() {
		return nil
	}
	if err := s.db.WithContext(ctx).Save(run).Error; err != nil {
		return fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}
	return nil
}

// Get returns the run with the given id.
func (s *Store) Get(ctx context.Context, id string) (*models.Run, error) {
	if !s.Enabled() {
		return nil, ErrHistoryDisabled
	}
	var run models.Run
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", id, err)
	}
	return &run, nil
}

// List returns the most recent runs first. limit is clamped to [1, 500];
// zero means 20.
func (s *Store) List(ctx context.Context, limit int) ([]models.Run, error) {
	if !s.Enabled() {
		return nil, ErrHistoryDisabled
	}
	switch {
	case limit <= 0:
		limit = defaultListLimit
	case limit > maxListLimit:
		limit = maxListLimit
	}

	var runs []models.Run
	err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}
