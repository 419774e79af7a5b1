package chi

import (
	"time"

	domentry "github.com/ProjectLunareth/Codex/internal/domain/entry"
	domoracle "github.com/ProjectLunareth/Codex/internal/domain/oracle"
	entryuc "github.com/ProjectLunareth/Codex/internal/usecase/entry"
	graphuc "github.com/ProjectLunareth/Codex/internal/usecase/graph"
	healthuc "github.com/ProjectLunareth/Codex/internal/usecase/health"
)

// Error codes returned in errorResponse.Code.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeEntryNotFound    = "entry_not_found"
	codeOracleDisabled   = "oracle_not_configured"
	codeOracleError      = "oracle_provider_error"
	codeInternalError    = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ingestRequest struct {
	ID        string   `json:"id,omitempty"`
	Filename  string   `json:"filename"`
	Summary   string   `json:"summary"`
	FullText  string   `json:"full_text"`
	KeyChunks []string `json:"key_chunks,omitempty"`
}

type entryResponse struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	FullText    string    `json:"full_text,omitempty"`
	Size        int       `json:"size"`
	ProcessedAt time.Time `json:"processed_at"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory,omitempty"`
	KeyTerms    []string  `json:"key_terms"`
	KeyChunks   []string  `json:"key_chunks,omitempty"`
}

type entryListResponse struct {
	Entries []entryResponse `json:"entries"`
	Total   int             `json:"total"`
}

type crossRefResponse struct {
	SourceID string          `json:"source_id"`
	Related  []entryResponse `json:"related"`
}

type searchHitResponse struct {
	Entry entryResponse `json:"entry"`
	Score int           `json:"score"`
}

type searchResponse struct {
	Query string              `json:"query"`
	Hits  []searchHitResponse `json:"hits"`
}

type nodeResponse struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

type edgeResponse struct {
	Source     string  `json:"source"`
	Target     string  `json:"target"`
	Similarity float64 `json:"similarity"`
}

type graphResponse struct {
	Mode      string         `json:"mode"`
	Threshold float64        `json:"threshold"`
	Nodes     []nodeResponse `json:"nodes"`
	Edges     []edgeResponse `json:"edges"`
}

type statsResponse struct {
	TotalEntries int            `json:"total_entries"`
	TotalSize    int            `json:"total_size"`
	ByCategory   map[string]int `json:"by_category"`
}

type consultRequest struct {
	Query   string `json:"query"`
	Context string `json:"context,omitempty"`
}

type consultationResponse struct {
	ID        string    `json:"id"`
	Query     string    `json:"query"`
	Context   string    `json:"context,omitempty"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

type sigilRequest struct {
	Prompt string `json:"prompt"`
}

type sigilResponse struct {
	URL string `json:"url"`
}

type echoRequest struct {
	Text string `json:"text"`
}

type healthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

func entryToResponse(e *domentry.Entry, includeFullText bool) entryResponse {
	resp := entryResponse{
		ID:          e.ID(),
		Filename:    e.Filename(),
		Title:       e.Title(),
		Summary:     e.Summary(),
		Size:        e.Size(),
		ProcessedAt: e.ProcessedAt(),
		Category:    string(e.Category()),
		Subcategory: string(e.Subcategory()),
		KeyTerms:    e.KeyTerms(),
		KeyChunks:   e.KeyChunks(),
	}
	if includeFullText {
		resp.FullText = e.FullText()
	}
	return resp
}

func entriesToResponse(entries []domentry.Entry, includeFullText bool) []entryResponse {
	out := make([]entryResponse, len(entries))
	for i := range entries {
		out[i] = entryToResponse(&entries[i], includeFullText)
	}
	return out
}

func graphToResponse(mode string, threshold float64, result graphuc.Result) graphResponse {
	resp := graphResponse{
		Mode:      mode,
		Threshold: threshold,
		Nodes:     make([]nodeResponse, len(result.Nodes)),
		Edges:     make([]edgeResponse, len(result.Edges)),
	}
	for i, n := range result.Nodes {
		resp.Nodes[i] = nodeResponse{
			ID:       n.ID(),
			Title:    n.Title(),
			Category: string(n.Category()),
			X:        n.X(),
			Y:        n.Y(),
		}
	}
	for i, e := range result.Edges {
		resp.Edges[i] = edgeResponse{
			Source:     e.Source(),
			Target:     e.Target(),
			Similarity: e.Similarity(),
		}
	}
	return resp
}

func statsToResponse(s entryuc.Stats) statsResponse {
	byCategory := make(map[string]int, len(s.ByCategory))
	for c, n := range s.ByCategory {
		byCategory[string(c)] = n
	}
	return statsResponse{
		TotalEntries: s.TotalEntries,
		TotalSize:    s.TotalSize,
		ByCategory:   byCategory,
	}
}

func consultationToResponse(c domoracle.Consultation) consultationResponse {
	return consultationResponse{
		ID:        c.ID(),
		Query:     c.Query(),
		Context:   c.Context(),
		Response:  c.Response(),
		CreatedAt: c.CreatedAt(),
	}
}

func healthToResponse(r healthuc.Report, ver string) healthResponse {
	checks := make(map[string]string, len(r.Checks))
	for name, result := range r.Checks {
		checks[name] = string(result)
	}
	return healthResponse{
		Status:  string(r.Status),
		Version: ver,
		Checks:  checks,
	}
}
