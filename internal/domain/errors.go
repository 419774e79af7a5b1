// Package domain holds sentinel errors shared across the codex services.
package domain

import "errors"

var (
	// ErrEntryNotFound signals a missing codex entry.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrInvalidEntry signals an entry that fails validation.
	ErrInvalidEntry = errors.New("invalid entry")
	// ErrInvalidLayoutMode signals an unsupported graph layout mode.
	ErrInvalidLayoutMode = errors.New("invalid layout mode")
	// ErrOracleNotConfigured signals that no generative provider is wired.
	ErrOracleNotConfigured = errors.New("oracle not configured")
	// ErrOracleProviderError signals a generative provider failure.
	ErrOracleProviderError = errors.New("oracle provider error")
)
