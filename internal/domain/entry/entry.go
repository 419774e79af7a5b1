// Package entry defines the codex entry aggregate. An entry is classified
// and its key terms extracted exactly once, at construction; it is immutable
// afterward.
package entry

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ProjectLunareth/Codex/internal/domain"
	"github.com/ProjectLunareth/Codex/internal/domain/lexicon"
	"github.com/ProjectLunareth/Codex/internal/domain/taxonomy"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// MaxTextSize is the maximum full-text size in bytes.
const MaxTextSize = 1 << 20 // 1MB

// Entry is an enriched codex entry (immutable value object).
type Entry struct {
	id          string
	filename    string
	summary     string
	fullText    string
	size        int
	processedAt time.Time
	category    taxonomy.Category
	subcategory taxonomy.Subcategory
	keyTerms    []string
	keyChunks   []string
}

// New validates and creates an Entry, running classification and key-term
// extraction over the combined summary and full text. This happens exactly
// once per entry; storage rehydration goes through Reconstruct.
// ID: ^[a-zA-Z0-9_-]+$, 1-256 chars. Summary: non-empty. Full text: max 1MB.
func New(id, filename, summary, fullText string, keyChunks []string, processedAt time.Time) (Entry, error) {
	if id == "" {
		return Entry{}, fmt.Errorf("entry ID is required: %w", domain.ErrInvalidEntry)
	}
	if len(id) > 256 {
		return Entry{}, fmt.Errorf("entry ID too long (max 256): %w", domain.ErrInvalidEntry)
	}
	if !idRegex.MatchString(id) {
		return Entry{}, fmt.Errorf(
			"entry ID must be alphanumeric with underscores and hyphens: %w", domain.ErrInvalidEntry)
	}
	if summary == "" {
		return Entry{}, fmt.Errorf("summary is required: %w", domain.ErrInvalidEntry)
	}
	if len(fullText) > MaxTextSize {
		return Entry{}, fmt.Errorf("full text too large (max %d bytes): %w", MaxTextSize, domain.ErrInvalidEntry)
	}

	combined := summary + " " + fullText
	category, subcategory := taxonomy.Classify(combined)

	return Entry{
		id:          id,
		filename:    filename,
		summary:     summary,
		fullText:    fullText,
		size:        len(fullText),
		processedAt: processedAt,
		category:    category,
		subcategory: subcategory,
		keyTerms:    lexicon.ExtractKeyTerms(combined),
		keyChunks:   cloneStrings(keyChunks),
	}, nil
}

// Reconstruct creates an Entry without validation or re-classification
// (storage hydration).
func Reconstruct(
	id, filename, summary, fullText string, size int, processedAt time.Time,
	category taxonomy.Category, subcategory taxonomy.Subcategory,
	keyTerms, keyChunks []string,
) Entry {
	return Entry{
		id:          id,
		filename:    filename,
		summary:     summary,
		fullText:    fullText,
		size:        size,
		processedAt: processedAt,
		category:    category,
		subcategory: subcategory,
		keyTerms:    keyTerms,
		keyChunks:   keyChunks,
	}
}

// ID returns the entry identifier.
func (e *Entry) ID() string { return e.id }

// Filename returns the source filename.
func (e *Entry) Filename() string { return e.filename }

// Summary returns the short free-text summary.
func (e *Entry) Summary() string { return e.summary }

// FullText returns the raw full text.
func (e *Entry) FullText() string { return e.fullText }

// Size returns the full-text size in bytes.
func (e *Entry) Size() int { return e.size }

// ProcessedAt returns the ingestion timestamp.
func (e *Entry) ProcessedAt() time.Time { return e.processedAt }

// Category returns the assigned category.
func (e *Entry) Category() taxonomy.Category { return e.category }

// Subcategory returns the assigned subcategory; empty means absent.
func (e *Entry) Subcategory() taxonomy.Subcategory { return e.subcategory }

// KeyTerms returns the extracted key terms (at most lexicon.MaxKeyTerms).
func (e *Entry) KeyTerms() []string { return cloneStrings(e.keyTerms) }

// KeyChunks returns the pre-selected excerpts attached at ingestion.
func (e *Entry) KeyChunks() []string { return cloneStrings(e.keyChunks) }

// Title returns the first line of the summary, conventionally treated as the
// display title.
func (e *Entry) Title() string {
	title, _, _ := strings.Cut(e.summary, "\n")
	return strings.TrimSpace(title)
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	c := make([]string, len(s))
	copy(c, s)
	return c
}
