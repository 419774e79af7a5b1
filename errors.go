package codex

import "github.com/ProjectLunareth/Codex/internal/domain"

// Sentinel errors surfaced by Client operations. Match with errors.Is.
var (
	ErrEntryNotFound       = domain.ErrEntryNotFound
	ErrInvalidEntry        = domain.ErrInvalidEntry
	ErrInvalidLayoutMode   = domain.ErrInvalidLayoutMode
	ErrOracleNotConfigured = domain.ErrOracleNotConfigured
	ErrOracleProviderError = domain.ErrOracleProviderError
)
