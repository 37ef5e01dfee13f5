// Package config manages clawctl's persisted launcher settings.
package config

import "context"

// Store is the durable key/value settings store. Mutations stay in memory
// until Save flushes them; the process controller is the only writer of
// the gateway port during a conflict auto-resolution, the settings surface
// the only writer during explicit user edits.
type Store interface {
	ProjectPath() string
	GatewayPort() int
	SetGatewayPort(port int)
	LogFilePath() string
	LogLevel() string
	ThemePreference() string
	AutoStart() bool
	Save() error
	Path() string
}

// Watcher observes the settings file for external edits.
type Watcher interface {
	// Watch delivers a reloaded view after every external change until the
	// context is cancelled or Stop is called.
	Watch(ctx context.Context, onChange func()) error
	Stop() error
}
