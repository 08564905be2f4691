package candidate

import "time"

// Kind is the discriminant of the candidate union. It is fixed at
// construction and never changes through scoring or reranking.
type Kind string

const (
	// Ruling is a judicial decision ("sentencia").
	Ruling Kind = "sentencia"
	// Statute is a normative document ("normativa").
	Statute Kind = "normativa"
	// Personal is a user-uploaded document ("documento").
	Personal Kind = "documento"
)

// Candidate is a single retrieval hit from any channel. Rulings and
// statutes share the struct; the Kind discriminant decides which fields
// are meaningful. Scoring fields are annotations, not identity: annotating
// always produces a new copy.
type Candidate struct {
	kind         Kind
	id           string
	title        string
	text         string
	category     string
	number       string
	date         time.Time
	jurisdiction string
	sourceURL    string

	vectorScore    float64
	fullTextScore  float64
	relevanceScore float64
	hasRelevance   bool
}

// NewRuling creates a case-law candidate.
func NewRuling(id, title, text string, date time.Time, jurisdiction, pdfURL string) Candidate {
	return Candidate{
		kind:         Ruling,
		id:           id,
		title:        title,
		text:         text,
		date:         date,
		jurisdiction: jurisdiction,
		sourceURL:    pdfURL,
	}
}

// NewStatute creates a normative candidate.
func NewStatute(id, title, text, category, number string, date time.Time, sourceURL string) Candidate {
	return Candidate{
		kind:      Statute,
		id:        id,
		title:     title,
		text:      text,
		category:  category,
		number:    number,
		date:      date,
		sourceURL: sourceURL,
	}
}

// Kind returns the union discriminant.
func (c Candidate) Kind() Kind { return c.kind }

// ID returns the source document identifier.
func (c Candidate) ID() string { return c.id }

// Title returns the document title.
func (c Candidate) Title() string { return c.title }

// Text returns the matched text fragment.
func (c Candidate) Text() string { return c.text }

// Category returns the statute category (statutes only).
func (c Candidate) Category() string { return c.category }

// Number returns the statute number (statutes only).
func (c Candidate) Number() string { return c.number }

// Date returns the document date (sanction or ruling date).
func (c Candidate) Date() time.Time { return c.date }

// Jurisdiction returns the issuing jurisdiction (rulings only).
func (c Candidate) Jurisdiction() string { return c.jurisdiction }

// SourceURL returns the citation URL (PDF URL for rulings).
func (c Candidate) SourceURL() string { return c.sourceURL }

// VectorScore returns the vector channel score, 0 when absent.
func (c Candidate) VectorScore() float64 { return c.vectorScore }

// FullTextScore returns the full-text channel score, 0 when absent.
func (c Candidate) FullTextScore() float64 { return c.fullTextScore }

// TotalScore is the fused score: sum of present channel scores.
func (c Candidate) TotalScore() float64 { return c.vectorScore + c.fullTextScore }

// RelevanceScore returns the cross-encoder score and whether one was assigned.
func (c Candidate) RelevanceScore() (float64, bool) { return c.relevanceScore, c.hasRelevance }

// WithVectorScore returns a copy annotated with the vector channel score.
func (c Candidate) WithVectorScore(s float64) Candidate {
	c.vectorScore = s
	return c
}

// WithFullTextScore returns a copy annotated with the full-text channel score.
func (c Candidate) WithFullTextScore(s float64) Candidate {
	c.fullTextScore = s
	return c
}

// WithRelevanceScore returns a copy annotated with the reranker score.
func (c Candidate) WithRelevanceScore(s float64) Candidate {
	c.relevanceScore = s
	c.hasRelevance = true
	return c
}
