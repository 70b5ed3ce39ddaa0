package reconcile

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	recon "record-reconciler/core/reconcile"
	"record-reconciler/core/source"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	fileA = "k1,a,b\nk2,,d\n"
	fileB = "k1,a,x\nk3,e,f\n"

	wantOutput = "k1,a,b\nk2,(f2),d\nk3,e,f\n"
)

func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func setupStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(setupSQLite(t))
	require.NoError(t, store.Migrate())
	return store
}

func writeInputs(t *testing.T, a, b string) (string, string, string) {
	t.Helper()
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.csv")
	pathB := filepath.Join(dir, "b.csv")
	require.NoError(t, os.WriteFile(pathA, []byte(a), 0o644))
	require.NoError(t, os.WriteFile(pathB, []byte(b), 0o644))
	return pathA, pathB, filepath.Join(dir, "out.csv")
}

type recordedEvent struct {
	name string
	data RunEvent
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingPublisher) Publish(event string, data any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{name: event, data: data.(RunEvent)})
	return nil
}

func (p *recordingPublisher) Close() {}

func (p *recordingPublisher) all() []recordedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]recordedEvent(nil), p.events...)
}

func newTestService(store *Store, publisher *recordingPublisher, cfg recon.Config) *Service {
	if publisher == nil {
		publisher = &recordingPublisher{}
	}
	return NewService(cfg, source.NewResolver(nil, ""), store, nil, publisher, zap.NewNop())
}
