// Package models defines the persisted reconciliation run.
package models
