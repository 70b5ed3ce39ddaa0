// Package source resolves record file locations.
//
// A location is either a local path or an object in the configured storage,
// written as "s3://bucket/key" ("s3:///key" uses the default bucket). Inputs
// are opened as streams; outputs are created as Sinks that publish nothing
// until Commit, so a failed reconciliation never leaves a partial file.
package source
