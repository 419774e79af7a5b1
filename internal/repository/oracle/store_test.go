package oracle

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	domoracle "github.com/ProjectLunareth/Codex/internal/domain/oracle"
)

type mockKV struct {
	setFn  func(ctx context.Context, key string, value []byte) error
	getFn  func(ctx context.Context, key string) ([]byte, error)
	scanFn func(ctx context.Context, pattern string) ([]string, error)
}

func (m *mockKV) Set(ctx context.Context, key string, value []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	return nil
}

func (m *mockKV) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, nil
}

func (m *mockKV) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}

func TestSave(t *testing.T) {
	var gotKey string
	var gotValue []byte
	kv := &mockKV{
		setFn: func(_ context.Context, key string, value []byte) error {
			gotKey, gotValue = key, value
			return nil
		},
	}
	s := New(kv)

	c := domoracle.New("c1", "what is the monad", "", "the one",
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	if err := s.Save(context.Background(), c); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if gotKey != "codex:oracle:c1" {
		t.Errorf("key = %q", gotKey)
	}
	var dto consultationDTO
	if err := json.Unmarshal(gotValue, &dto); err != nil {
		t.Fatalf("stored value is not valid JSON: %v", err)
	}
	if dto.Query != "what is the monad" || dto.Response != "the one" {
		t.Errorf("dto = %+v", dto)
	}
}

func TestListNewestFirst(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	docs := map[string][]byte{}
	for id, at := range map[string]time.Time{
		"old": base,
		"new": base.Add(time.Hour),
	} {
		data, _ := json.Marshal(consultationDTO{ID: id, Query: "q", Response: "a", CreatedAt: at})
		docs["codex:oracle:"+id] = data
	}
	kv := &mockKV{
		scanFn: func(_ context.Context, _ string) ([]string, error) {
			return []string{"codex:oracle:old", "codex:oracle:new"}, nil
		},
		getFn: func(_ context.Context, key string) ([]byte, error) {
			return docs[key], nil
		},
	}
	s := New(kv)

	got, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].ID() != "new" || got[1].ID() != "old" {
		t.Fatalf("List order wrong: %+v", got)
	}
}
