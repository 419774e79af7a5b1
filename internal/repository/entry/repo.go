// Package entry persists codex entries as JSON documents in Redis, one
// document per entry under codex:entry:<id>.
package entry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ProjectLunareth/Codex/internal/db"
	"github.com/ProjectLunareth/Codex/internal/domain"
	domentry "github.com/ProjectLunareth/Codex/internal/domain/entry"
)

const keyPrefix = "codex:entry:"

// store is the consumer interface for entry persistence.
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/entry.Repository.
type Repo struct {
	store store
}

// New creates an entry repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Put stores an entry, replacing any existing document with the same ID.
func (r *Repo) Put(ctx context.Context, e domentry.Entry) error {
	dto := toDTO(&e)
	data, err := json.Marshal(dto)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}
	if err := r.store.JSONSet(ctx, entryKey(e.ID()), "$", data); err != nil {
		return fmt.Errorf("store entry: %w", err)
	}
	return nil
}

// Get retrieves an entry by ID.
func (r *Repo) Get(ctx context.Context, id string) (domentry.Entry, error) {
	raw, err := r.store.JSONGet(ctx, entryKey(id), "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domentry.Entry{}, fmt.Errorf("entry %q: %w", id, domain.ErrEntryNotFound)
		}
		return domentry.Entry{}, fmt.Errorf("load entry: %w", err)
	}
	return decodeOne(raw)
}

// List returns every stored entry sorted by processing time, ties broken by
// ID. The sort makes corpus order stable across calls, which the relatedness
// and graph computations rely on.
func (r *Repo) List(ctx context.Context) ([]domentry.Entry, error) {
	keys, err := r.store.Scan(ctx, keyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan entries: %w", err)
	}

	entries := make([]domentry.Entry, 0, len(keys))
	for _, key := range keys {
		raw, err := r.store.JSONGet(ctx, key, "$")
		if err != nil {
			// Deleted between scan and read.
			if errors.Is(err, db.ErrKeyNotFound) {
				continue
			}
			return nil, fmt.Errorf("load entry %q: %w", key, err)
		}
		e, err := decodeOne(raw)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].ProcessedAt().Equal(entries[j].ProcessedAt()) {
			return entries[i].ProcessedAt().Before(entries[j].ProcessedAt())
		}
		return entries[i].ID() < entries[j].ID()
	})
	return entries, nil
}

// Delete removes an entry by ID.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := entryKey(id)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if !exists {
		return fmt.Errorf("entry %q: %w", id, domain.ErrEntryNotFound)
	}
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

func entryKey(id string) string {
	return keyPrefix + id
}

// decodeOne parses a JSON.GET response. A "$" path query wraps the document
// in a one-element array.
func decodeOne(raw []byte) (domentry.Entry, error) {
	var dto entryDTO
	if strings.HasPrefix(strings.TrimSpace(string(raw)), "[") {
		var dtos []entryDTO
		if err := json.Unmarshal(raw, &dtos); err != nil {
			return domentry.Entry{}, fmt.Errorf("unmarshal entry: %w", err)
		}
		if len(dtos) == 0 {
			return domentry.Entry{}, fmt.Errorf("entry document: %w", domain.ErrEntryNotFound)
		}
		dto = dtos[0]
	} else if err := json.Unmarshal(raw, &dto); err != nil {
		return domentry.Entry{}, fmt.Errorf("unmarshal entry: %w", err)
	}
	return fromDTO(dto), nil
}
