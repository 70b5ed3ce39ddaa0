// Package events publishes reconciliation lifecycle events to NATS.
//
// A run emits "<prefix>.run.completed" with its summary or "<prefix>.run.failed"
// with the error. When events.url is empty New returns Noop, so callers never
// need to check whether NATS is configured.
package events
