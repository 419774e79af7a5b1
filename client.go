package codex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ProjectLunareth/Codex/internal/db"
	dbRedis "github.com/ProjectLunareth/Codex/internal/db/redis"
	domgraph "github.com/ProjectLunareth/Codex/internal/domain/graph"
	"github.com/ProjectLunareth/Codex/internal/domain/taxonomy"
	entryrepo "github.com/ProjectLunareth/Codex/internal/repository/entry"
	oraclerepo "github.com/ProjectLunareth/Codex/internal/repository/oracle"
	openaitransport "github.com/ProjectLunareth/Codex/internal/transport/openai"
	crossrefuc "github.com/ProjectLunareth/Codex/internal/usecase/crossref"
	entryuc "github.com/ProjectLunareth/Codex/internal/usecase/entry"
	graphuc "github.com/ProjectLunareth/Codex/internal/usecase/graph"
	oracleuc "github.com/ProjectLunareth/Codex/internal/usecase/oracle"
)

const defaultReadinessTimeout = 10 * time.Second

// IngestRequest carries a document into the corpus. An empty ID gets a
// generated UUID; Summary is required.
type IngestRequest struct {
	ID        string
	Filename  string
	Summary   string
	FullText  string
	KeyChunks []string
}

// GraphRequest parameterizes a similarity graph build. Zero values fall
// back to circular mode, DefaultSimilarityThreshold and an 800x600 canvas.
type GraphRequest struct {
	Mode      string
	Threshold float64
	Category  string
	Width     int
	Height    int
}

// GraphResult is a computed graph ready for rendering.
type GraphResult struct {
	Nodes []Node
	Edges []Edge
}

// Client is the codex SDK entry point.
type Client struct {
	store       db.Store
	entrySvc    *entryuc.Service
	crossrefSvc *crossrefuc.Service
	graphSvc    *graphuc.Service
	oracleSvc   *oracleuc.Service
}

// New creates a codex Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		completionModel: defaultCompletionModel,
		imageModel:      defaultImageModel,
		speechModel:     defaultSpeechModel,
		voice:           defaultVoice,
		logger:          zap.NewNop(),
	}
	for _, o := range opts {
		o(cfg)
	}

	if cfg.completionModel == "" {
		cfg.completionModel = defaultCompletionModel
	}
	if cfg.imageModel == "" {
		cfg.imageModel = defaultImageModel
	}
	if cfg.speechModel == "" {
		cfg.speechModel = defaultSpeechModel
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("codex: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
		DB:       cfg.db,
	})
	if err != nil {
		return nil, fmt.Errorf("codex: create redis store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("codex: database not ready: %w", err)
	}

	return wireClient(store, cfg), nil
}

func wireClient(store db.Store, cfg *clientConfig) *Client {
	entrySvc := entryuc.New(entryrepo.New(store))

	var provider oracleuc.Provider
	if cfg.oracleAPIKey != "" {
		provider = openaitransport.NewOracle(&openaitransport.Config{
			APIKey:          cfg.oracleAPIKey,
			BaseURL:         cfg.oracleBaseURL,
			CompletionModel: cfg.completionModel,
			ImageModel:      cfg.imageModel,
			SpeechModel:     cfg.speechModel,
			Voice:           cfg.voice,
			Logger:          cfg.logger,
		})
	}

	return &Client{
		store:       store,
		entrySvc:    entrySvc,
		crossrefSvc: crossrefuc.New(entrySvc),
		graphSvc:    graphuc.New(entrySvc),
		oracleSvc:   oracleuc.New(provider, oraclerepo.New(store)),
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Ingest classifies and stores a document.
func (c *Client) Ingest(ctx context.Context, req IngestRequest) (Entry, error) {
	e, err := c.entrySvc.Ingest(ctx, entryuc.IngestRequest{
		ID:        req.ID,
		Filename:  req.Filename,
		Summary:   req.Summary,
		FullText:  req.FullText,
		KeyChunks: req.KeyChunks,
	})
	if err != nil {
		return Entry{}, err
	}
	return entryFromDomain(&e), nil
}

// Get retrieves one entry by ID.
func (c *Client) Get(ctx context.Context, id string) (Entry, error) {
	e, err := c.entrySvc.Get(ctx, id)
	if err != nil {
		return Entry{}, err
	}
	return entryFromDomain(&e), nil
}

// List returns the whole corpus in stable corpus order.
func (c *Client) List(ctx context.Context) ([]Entry, error) {
	corpus, err := c.entrySvc.List(ctx)
	if err != nil {
		return nil, err
	}
	return entriesFromDomain(corpus), nil
}

// Delete removes an entry by ID.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.entrySvc.Delete(ctx, id)
}

// Search scans the corpus for entries matching the query, best first.
func (c *Client) Search(ctx context.Context, query string) ([]SearchHit, error) {
	hits, err := c.entrySvc.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	out := make([]SearchHit, len(hits))
	for i := range hits {
		out[i] = SearchHit{Entry: entryFromDomain(&hits[i].Entry), Score: hits[i].Score}
	}
	return out, nil
}

// Stats summarizes the stored corpus.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	st, err := c.entrySvc.Stats(ctx)
	if err != nil {
		return Stats{}, err
	}
	byCat := make(map[string]int, len(st.ByCategory))
	for cat, n := range st.ByCategory {
		byCat[string(cat)] = n
	}
	return Stats{TotalEntries: st.TotalEntries, TotalSize: st.TotalSize, ByCategory: byCat}, nil
}

// CrossReferences returns the entries related to the given one, strongest
// signal first in corpus order, at most six.
func (c *Client) CrossReferences(ctx context.Context, id string) ([]Entry, error) {
	related, err := c.crossrefSvc.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return entriesFromDomain(related), nil
}

// Graph builds the similarity graph over the stored corpus.
func (c *Client) Graph(ctx context.Context, req GraphRequest) (GraphResult, error) {
	res, err := c.graphSvc.Build(ctx, graphuc.Request{
		Mode:      domgraph.Mode(req.Mode),
		Threshold: req.Threshold,
		Category:  taxonomy.Category(req.Category),
		Width:     req.Width,
		Height:    req.Height,
	})
	if err != nil {
		return GraphResult{}, err
	}
	return GraphResult{
		Nodes: nodesFromDomain(res.Nodes),
		Edges: edgesFromDomain(res.Edges),
	}, nil
}

// Consult asks the oracle a question, optionally grounded on a passage,
// and records the consultation.
func (c *Client) Consult(ctx context.Context, query, grounding string) (Consultation, error) {
	cons, err := c.oracleSvc.Consult(ctx, query, grounding)
	if err != nil {
		return Consultation{}, err
	}
	return consultationFromDomain(cons), nil
}

// Sigil generates an image for the prompt and returns its URL.
func (c *Client) Sigil(ctx context.Context, prompt string) (string, error) {
	return c.oracleSvc.Sigil(ctx, prompt)
}

// Echo synthesizes the text to MP3 audio.
func (c *Client) Echo(ctx context.Context, text string) ([]byte, error) {
	return c.oracleSvc.Echo(ctx, text)
}

// Consultations lists recorded consultations, newest first.
func (c *Client) Consultations(ctx context.Context) ([]Consultation, error) {
	list, err := c.oracleSvc.Consultations(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Consultation, len(list))
	for i, cons := range list {
		out[i] = consultationFromDomain(cons)
	}
	return out, nil
}
