package oracle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ProjectLunareth/Codex/internal/domain"
	domoracle "github.com/ProjectLunareth/Codex/internal/domain/oracle"
)

// --- Mocks ---

type mockProvider struct {
	completion    string
	completionErr error
	imageURL      string
	imageErr      error
	audio         []byte
	audioErr      error
}

func (m *mockProvider) Complete(_ context.Context, _, _ string) (string, error) {
	return m.completion, m.completionErr
}
func (m *mockProvider) GenerateImage(_ context.Context, _ string) (string, error) {
	return m.imageURL, m.imageErr
}
func (m *mockProvider) Synthesize(_ context.Context, _ string) ([]byte, error) {
	return m.audio, m.audioErr
}

type mockStore struct {
	saved   []domoracle.Consultation
	saveErr error
	listRes []domoracle.Consultation
	listErr error
}

func (m *mockStore) Save(_ context.Context, c domoracle.Consultation) error {
	m.saved = append(m.saved, c)
	return m.saveErr
}
func (m *mockStore) List(_ context.Context) ([]domoracle.Consultation, error) {
	return m.listRes, m.listErr
}

// --- Tests ---

func TestConsultRecordsExchange(t *testing.T) {
	store := &mockStore{}
	svc := New(&mockProvider{completion: "the answer"}, store)

	c, err := svc.Consult(context.Background(), "what is the monad", "chapter three")
	if err != nil {
		t.Fatalf("Consult: %v", err)
	}
	if c.ID() == "" {
		t.Error("consultation should get an ID")
	}
	if c.Response() != "the answer" {
		t.Errorf("response = %q", c.Response())
	}
	if len(store.saved) != 1 || store.saved[0].Query() != "what is the monad" {
		t.Errorf("saved = %+v, want the consultation recorded", store.saved)
	}
}

func TestConsultProviderError(t *testing.T) {
	wantErr := domain.ErrOracleProviderError
	svc := New(&mockProvider{completionErr: wantErr}, &mockStore{})

	_, err := svc.Consult(context.Background(), "q", "")
	if !errors.Is(err, wantErr) {
		t.Fatalf("Consult err = %v, want ErrOracleProviderError", err)
	}
}

func TestNotConfigured(t *testing.T) {
	svc := New(nil, &mockStore{})

	if _, err := svc.Consult(context.Background(), "q", ""); !errors.Is(err, domain.ErrOracleNotConfigured) {
		t.Errorf("Consult err = %v, want ErrOracleNotConfigured", err)
	}
	if _, err := svc.Sigil(context.Background(), "p"); !errors.Is(err, domain.ErrOracleNotConfigured) {
		t.Errorf("Sigil err = %v, want ErrOracleNotConfigured", err)
	}
	if _, err := svc.Echo(context.Background(), "t"); !errors.Is(err, domain.ErrOracleNotConfigured) {
		t.Errorf("Echo err = %v, want ErrOracleNotConfigured", err)
	}
}

func TestSigil(t *testing.T) {
	svc := New(&mockProvider{imageURL: "https://img.example/sigil.png"}, &mockStore{})
	url, err := svc.Sigil(context.Background(), "a labyrinth seal")
	if err != nil {
		t.Fatalf("Sigil: %v", err)
	}
	if url != "https://img.example/sigil.png" {
		t.Errorf("url = %q", url)
	}
}

func TestEcho(t *testing.T) {
	svc := New(&mockProvider{audio: []byte{0x49, 0x44, 0x33}}, &mockStore{})
	audio, err := svc.Echo(context.Background(), "read this aloud")
	if err != nil {
		t.Fatalf("Echo: %v", err)
	}
	if len(audio) != 3 {
		t.Errorf("audio length = %d, want 3", len(audio))
	}
}

func TestConsultationsWithoutProvider(t *testing.T) {
	store := &mockStore{listRes: []domoracle.Consultation{
		domoracle.New("c1", "q", "", "a", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
	}}
	svc := New(nil, store)

	got, err := svc.Consultations(context.Background())
	if err != nil {
		t.Fatalf("Consultations: %v", err)
	}
	if len(got) != 1 || got[0].ID() != "c1" {
		t.Fatalf("got = %+v, want the stored history", got)
	}
}
