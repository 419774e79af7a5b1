// Package oracle holds the consultation record kept for each generative
// query answered on behalf of a reader.
package oracle

import "time"

// Consultation is one answered oracle query. Records are append-only.
type Consultation struct {
	id        string
	query     string
	context   string
	response  string
	createdAt time.Time
}

// New creates a consultation record.
func New(id, query, context, response string, createdAt time.Time) Consultation {
	return Consultation{
		id:        id,
		query:     query,
		context:   context,
		response:  response,
		createdAt: createdAt,
	}
}

// ID returns the consultation identifier.
func (c Consultation) ID() string { return c.id }

// Query returns the reader's question.
func (c Consultation) Query() string { return c.query }

// Context returns the optional grounding text sent with the query.
func (c Consultation) Context() string { return c.context }

// Response returns the generated answer.
func (c Consultation) Response() string { return c.response }

// CreatedAt returns when the consultation was answered.
func (c Consultation) CreatedAt() time.Time { return c.createdAt }
