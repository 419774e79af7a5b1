// Package oracle persists consultation records as plain key-value JSON
// under codex:oracle:<id>.
package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ProjectLunareth/Codex/internal/db"
	domoracle "github.com/ProjectLunareth/Codex/internal/domain/oracle"
)

const keyPrefix = "codex:oracle:"

// store is the consumer interface for consultation persistence.
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

type consultationDTO struct {
	ID        string    `json:"id"`
	Query     string    `json:"query"`
	Context   string    `json:"context,omitempty"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

// Store implements usecase/oracle.ConsultationStore.
type Store struct {
	kv store
}

// New creates a consultation store.
func New(kv store) *Store {
	return &Store{kv: kv}
}

// Save appends a consultation record.
func (s *Store) Save(ctx context.Context, c domoracle.Consultation) error {
	data, err := json.Marshal(consultationDTO{
		ID:        c.ID(),
		Query:     c.Query(),
		Context:   c.Context(),
		Response:  c.Response(),
		CreatedAt: c.CreatedAt(),
	})
	if err != nil {
		return fmt.Errorf("marshal consultation: %w", err)
	}
	if err := s.kv.Set(ctx, keyPrefix+c.ID(), data); err != nil {
		return fmt.Errorf("store consultation: %w", err)
	}
	return nil
}

// List returns all consultations, newest first.
func (s *Store) List(ctx context.Context) ([]domoracle.Consultation, error) {
	keys, err := s.kv.Scan(ctx, keyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan consultations: %w", err)
	}

	records := make([]domoracle.Consultation, 0, len(keys))
	for _, key := range keys {
		raw, err := s.kv.Get(ctx, key)
		if err != nil {
			if errors.Is(err, db.ErrKeyNotFound) {
				continue
			}
			return nil, fmt.Errorf("load consultation %q: %w", key, err)
		}
		var dto consultationDTO
		if err := json.Unmarshal(raw, &dto); err != nil {
			return nil, fmt.Errorf("unmarshal consultation %q: %w", key, err)
		}
		records = append(records, domoracle.New(
			dto.ID, dto.Query, dto.Context, dto.Response, dto.CreatedAt))
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt().After(records[j].CreatedAt())
	})
	return records, nil
}
