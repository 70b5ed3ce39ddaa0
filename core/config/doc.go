// Package config provides configuration management for the record reconciler.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file. Defaults live next to each setting in the
// `default` struct tag of the owning package's Config.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Reconcile: chunk size, workers, timeout, delimiter, field policy, pairing, default locations
//   - Server: HTTP server settings (port, API key, timeouts)
//   - Database: run history connection (sqlite, mysql, postgres)
//   - Storage: S3/MinIO credentials and default bucket
//   - Events: NATS URL, token and subject prefix
//   - Metrics: Prometheus endpoint
//   - Log: Logging level and format
//
// Nested keys map to environment variables by replacing dots with
// underscores, e.g. reconcile.chunk_size is RECONCILE_CHUNK_SIZE.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Reconcile.ChunkSize)
package config
