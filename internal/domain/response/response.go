package response

import (
	"time"

	"github.com/Norte-Development/lexsearch/internal/domain/candidate"
	"github.com/Norte-Development/lexsearch/internal/domain/query"
)

// Entry is one rendered bucket item. Regular entries mirror a candidate;
// info notices are statute-bucket entries flagged IsInfoMessage so that
// renderers treat search hits and notices uniformly.
type Entry struct {
	Kind           candidate.Kind
	ID             string
	Title          string
	Text           string
	Category       string
	Number         string
	Date           time.Time
	Jurisdiction   string
	URL            string
	RelevanceScore *float64
	IsInfoMessage  bool
}

// FromCandidate converts a candidate into a bucket entry, carrying the
// reranker score over when one was assigned.
func FromCandidate(c candidate.Candidate) Entry {
	e := Entry{
		Kind:         c.Kind(),
		ID:           c.ID(),
		Title:        c.Title(),
		Text:         c.Text(),
		Category:     c.Category(),
		Number:       c.Number(),
		Date:         c.Date(),
		Jurisdiction: c.Jurisdiction(),
		URL:          c.SourceURL(),
	}
	if score, ok := c.RelevanceScore(); ok {
		e.RelevanceScore = &score
	}
	return e
}

// NewInfoNotice creates a synthetic statute-bucket entry carrying an
// informational message for the downstream consumer.
func NewInfoNotice(id, text string) Entry {
	return Entry{
		Kind:          candidate.Personal,
		ID:            id,
		Text:          text,
		IsInfoMessage: true,
	}
}

// Response is the assembled search result: two rank-ordered buckets, a
// human-readable summary, and the effective filters applied.
type Response struct {
	Sentencias []Entry
	Normativas []Entry
	Message    string
	Filters    query.Filters
}
