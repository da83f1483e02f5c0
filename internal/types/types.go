// Package types holds small shared types: exit codes and the fatal
// configuration error that aborts a run before any request is processed.
package types

import (
	"errors"
	"fmt"
)

type ExitCode = int

const (
	ExitOK     ExitCode = 0
	ExitConfig ExitCode = 1
	ExitUsage  ExitCode = 2
)

// ConfigError is fatal for the whole run: missing snapshot root, unspecified
// snapshot id, unreadable file list, cross-filesystem hard-link destination.
type ConfigError struct {
	Setting string
	Reason  string
	Err     error
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("configuration error (%s): %s", e.Setting, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

func NewConfigError(setting, reason string, err error) *ConfigError {
	return &ConfigError{Setting: setting, Reason: reason, Err: err}
}

func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
