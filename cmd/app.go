package cmd

import (
	"context"
	"fmt"

	"record-reconciler/core/config"
	"record-reconciler/core/database"
	"record-reconciler/core/events"
	"record-reconciler/core/logger"
	"record-reconciler/core/metrics"
	"record-reconciler/core/source"
	"record-reconciler/core/storage"
	"record-reconciler/feature/reconcile"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// application holds the dependencies shared by the commands.
type application struct {
	cfg       *config.Config
	logger    *zap.Logger
	db        *gorm.DB
	storage   storage.Client
	store     *reconcile.Store
	collector *metrics.Collector
	publisher events.Publisher
	service   *reconcile.Service
}

// bootstrap loads the configuration and wires every dependency.
// Database, storage and NATS are optional: failures are logged and the
// corresponding capability is disabled.
func bootstrap() (*application, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	app := &application{cfg: cfg, logger: l}

	if db, err := database.Connect(cfg.Database); err != nil {
		l.Warn("Run history disabled, database connection failed", zap.Error(err))
	} else {
		app.db = db
	}
	app.store = reconcile.NewStore(app.db)
	if err := app.store.Migrate(); err != nil {
		return nil, err
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		l.Warn("Object storage disabled", zap.Error(err))
	} else {
		app.storage = client
	}

	publisher, err := events.New(cfg.Events, l)
	if err != nil {
		l.Warn("Event publishing disabled", zap.Error(err))
		publisher = events.Noop{}
	}
	app.publisher = publisher

	app.collector = metrics.NewCollector(cfg.Metrics.Namespace)

	resolver := source.NewResolver(app.storage, cfg.Storage.Bucket)
	app.service = reconcile.NewService(cfg.Reconcile, resolver, app.store, app.collector, app.publisher, l)

	return app, nil
}

// checkBucket warns when the default bucket is unreachable.
func (a *application) checkBucket(ctx context.Context) {
	if a.storage == nil {
		return
	}
	exists, err := a.storage.BucketExists(ctx, a.cfg.Storage.Bucket)
	switch {
	case err != nil:
		a.logger.Warn("Object storage unreachable", zap.String("bucket", a.cfg.Storage.Bucket), zap.Error(err))
	case !exists:
		a.logger.Warn("Default bucket does not exist", zap.String("bucket", a.cfg.Storage.Bucket))
	}
}

// Close releases connections.
func (a *application) Close() {
	a.publisher.Close()
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = a.logger.Sync()
}
