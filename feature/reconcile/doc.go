// Package reconcile is the user-facing reconciliation feature.
//
// It combines the core engine with the infrastructure around it:
//
//   - Service resolves locations (local paths or s3:// objects), runs the
//     engine through a result cache, writes the output atomically, records
//     the run in the history store, reports metrics and publishes a NATS
//     event on completion or failure.
//   - Store persists runs in the 'reconcile_runs' table with GORM. Without a
//     database the service still runs; only history queries fail.
//   - Handler exposes POST /reconcile, GET /reconcile/runs and
//     GET /reconcile/runs/:id.
//
// The same Service backs the HTTP API and the "reconcile files" command.
package reconcile
