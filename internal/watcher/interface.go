// Package watcher re-runs the pipeline when media lands in the input folders.
package watcher

import "context"

// Watcher defines the interface for file system monitoring
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// TriggerFunc runs one pipeline pass. Calls never overlap.
type TriggerFunc func(ctx context.Context) error

// Filter reports whether a file name is relevant input.
type Filter func(name string) bool
