// Package snapshot resolves snapshot roots and point-in-time instances.
package snapshot

import "time"

// Instance represents a single selected point-in-time tree. It is resolved
// once per run and read-only thereafter.
type Instance struct {
	ID        string
	Path      string
	Timestamp time.Time
}

// Chooser selects one entry from an ordered list of options. The CLI binds
// it to stdin prompts; tests supply a scripted implementation.
type Chooser interface {
	Choose(title string, options []string) (int, error)
}
