// Package oracle answers free-form reader questions through a generative
// backend and keeps a record of every consultation. Image and speech
// generation pass through without a record.
package oracle

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ProjectLunareth/Codex/internal/domain"
	domoracle "github.com/ProjectLunareth/Codex/internal/domain/oracle"
)

// Service handles oracle consultations. A nil provider means the oracle is
// not configured; every operation then fails with ErrOracleNotConfigured.
type Service struct {
	provider Provider
	store    ConsultationStore
	now      func() time.Time
}

// New creates an oracle service. provider may be nil when no backend is
// configured.
func New(provider Provider, store ConsultationStore) *Service {
	return &Service{provider: provider, store: store, now: time.Now}
}

// Consult answers a reader question, optionally grounded on supplied text,
// and records the exchange.
func (s *Service) Consult(ctx context.Context, query, grounding string) (domoracle.Consultation, error) {
	if s.provider == nil {
		return domoracle.Consultation{}, domain.ErrOracleNotConfigured
	}

	response, err := s.provider.Complete(ctx, query, grounding)
	if err != nil {
		return domoracle.Consultation{}, fmt.Errorf("oracle completion: %w", err)
	}

	c := domoracle.New(uuid.NewString(), query, grounding, response, s.now().UTC())
	if err := s.store.Save(ctx, c); err != nil {
		return domoracle.Consultation{}, fmt.Errorf("save consultation: %w", err)
	}
	return c, nil
}

// Sigil generates an image for the prompt and returns its URL.
func (s *Service) Sigil(ctx context.Context, prompt string) (string, error) {
	if s.provider == nil {
		return "", domain.ErrOracleNotConfigured
	}
	url, err := s.provider.GenerateImage(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("oracle image: %w", err)
	}
	return url, nil
}

// Echo synthesizes speech audio for the text.
func (s *Service) Echo(ctx context.Context, text string) ([]byte, error) {
	if s.provider == nil {
		return nil, domain.ErrOracleNotConfigured
	}
	audio, err := s.provider.Synthesize(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("oracle speech: %w", err)
	}
	return audio, nil
}

// Consultations returns the recorded consultation history. It works even
// when no provider is configured.
func (s *Service) Consultations(ctx context.Context) ([]domoracle.Consultation, error) {
	return s.store.List(ctx)
}
