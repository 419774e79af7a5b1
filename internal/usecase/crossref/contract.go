package crossref

import (
	"context"

	"github.com/ProjectLunareth/Codex/internal/domain/entry"
)

// CorpusReader loads the full corpus for relatedness scoring. Every request
// takes one snapshot; scoring never goes back to storage mid-computation.
type CorpusReader interface {
	Snapshot(ctx context.Context) ([]entry.Entry, error)
}
