package oracle

import (
	"context"

	domoracle "github.com/ProjectLunareth/Codex/internal/domain/oracle"
)

// Provider is the generative backend behind the oracle operations.
type Provider interface {
	Complete(ctx context.Context, query, grounding string) (string, error)
	GenerateImage(ctx context.Context, prompt string) (string, error)
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// ConsultationStore persists answered consultations.
type ConsultationStore interface {
	Save(ctx context.Context, c domoracle.Consultation) error
	List(ctx context.Context) ([]domoracle.Consultation, error)
}
