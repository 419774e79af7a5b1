package entry

import (
	"time"

	domentry "github.com/ProjectLunareth/Codex/internal/domain/entry"
	"github.com/ProjectLunareth/Codex/internal/domain/taxonomy"
)

// entryDTO is the JSON document stored per entry. Derived fields are stored
// alongside the raw fields so reads never reclassify.
type entryDTO struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	Summary     string    `json:"summary"`
	FullText    string    `json:"full_text"`
	Size        int       `json:"size"`
	ProcessedAt time.Time `json:"processed_at"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory,omitempty"`
	KeyTerms    []string  `json:"key_terms"`
	KeyChunks   []string  `json:"key_chunks,omitempty"`
}

func toDTO(e *domentry.Entry) entryDTO {
	return entryDTO{
		ID:          e.ID(),
		Filename:    e.Filename(),
		Summary:     e.Summary(),
		FullText:    e.FullText(),
		Size:        e.Size(),
		ProcessedAt: e.ProcessedAt(),
		Category:    string(e.Category()),
		Subcategory: string(e.Subcategory()),
		KeyTerms:    e.KeyTerms(),
		KeyChunks:   e.KeyChunks(),
	}
}

func fromDTO(d entryDTO) domentry.Entry {
	return domentry.Reconstruct(
		d.ID, d.Filename, d.Summary, d.FullText, d.Size, d.ProcessedAt,
		taxonomy.Category(d.Category), taxonomy.Subcategory(d.Subcategory),
		d.KeyTerms, d.KeyChunks,
	)
}
