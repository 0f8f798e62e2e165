package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	ErrNotFound       = errors.New("not found")
	ErrMissingSession = errors.New("payload has no session")
	ErrMissingToken   = errors.New("no token available")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// SessionError represents an error while handling an inbound session.
type SessionError struct {
	SessionID string
	Op        string // operation that failed
	Err       error  // underlying error
}

func (e *SessionError) Error() string {
	if e.SessionID != "" {
		return fmt.Sprintf("%s: session=%s: %v", e.Op, e.SessionID, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *SessionError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration-related error.
type ConfigError struct {
	ConfigName string
	Field      string
	Err        error
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config %s: field %s: %v", e.ConfigName, e.Field, e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.ConfigName, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// DispatchError represents a failure to launch an outbound session.
type DispatchError struct {
	To      string
	Profile string
	Err     error
}

func (e *DispatchError) Error() string {
	if e.Profile != "" {
		return fmt.Sprintf("dispatch: to=%s profile=%s: %v", e.To, e.Profile, e.Err)
	}
	return fmt.Sprintf("dispatch: to=%s: %v", e.To, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}
