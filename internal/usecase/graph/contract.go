package graph

import (
	"context"

	"github.com/ProjectLunareth/Codex/internal/domain/entry"
)

// CorpusReader loads the full corpus for graph computation.
type CorpusReader interface {
	Snapshot(ctx context.Context) ([]entry.Entry, error)
}
