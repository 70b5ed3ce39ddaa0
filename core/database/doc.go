// Package database handles database connections for the run history.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) that builds
// sqlite, MySQL or PostgreSQL connections from the application's configuration.
//
// # Connect
//
// Connect builds the driver specific DSN, opens the connection, sizes the
// pool and pings the server within the configured timeout. sqlite uses a
// single connection; an in-memory name maps to a shared-cache memory
// database, which the tests rely on.
//
// The history is optional. Commands that only reconcile files keep working
// when Connect fails; they log a warning and skip persistence.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logger.Warn("Run history disabled", zap.Error(err))
//	}
package database
