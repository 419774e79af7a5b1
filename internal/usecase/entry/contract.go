package entry

import (
	"context"

	domentry "github.com/ProjectLunareth/Codex/internal/domain/entry"
)

// Repository defines the storage contract for codex entries.
type Repository interface {
	Put(ctx context.Context, e domentry.Entry) error
	Get(ctx context.Context, id string) (domentry.Entry, error)
	List(ctx context.Context) ([]domentry.Entry, error)
	Delete(ctx context.Context, id string) error
}
