package lexsearch

import (
	"time"

	"github.com/Norte-Development/lexsearch/internal/domain"
	"github.com/Norte-Development/lexsearch/internal/domain/query"
	"github.com/Norte-Development/lexsearch/internal/domain/response"
)

// Filters narrows a document search. The zero value searches every
// corpus with no date or category restriction.
type Filters struct {
	// Categories restricts statute results to the given categories
	// (ley, decreto, resolución, ...).
	Categories []string
	// Jurisdiction filters by jurisdiction code.
	Jurisdiction string
	// Provincia scopes statute search to a province. Requires the
	// provincial entitlement; otherwise the search degrades to national
	// scope and appends an informational notice.
	Provincia string
	// StartDate and EndDate bound the ruling date range (inclusive).
	StartDate *time.Time
	EndDate   *time.Time
	// DocumentTypes selects corpora: sentencias, normativas, personales.
	// Empty means all.
	DocumentTypes []string
	// MaxResults caps each result bucket. Defaults to 20.
	MaxResults int
}

// Result is one search hit. Type is "sentencia", "normativa", or
// "documento" (the latter also carries info notices).
type Result struct {
	Type           string
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

// SearchResponse carries the two rank-ordered buckets and an optional
// guidance message.
type SearchResponse struct {
	Sentencias []Result
	Normativas []Result
	Message    string
}

// NormativeDocument is a fully fetched statute document.
type NormativeDocument struct {
	Content    string
	Title      string
	Category   string
	Number     string
	URL        string
	IsMarkdown bool
}

func filtersToDomain(f *Filters) query.Filters {
	if f == nil {
		return query.Filters{}
	}
	out := query.Filters{
		Jurisdiction: f.Jurisdiction,
		Provincia:    f.Provincia,
		StartDate:    f.StartDate,
		EndDate:      f.EndDate,
		MaxResults:   f.MaxResults,
	}
	for _, c := range f.Categories {
		out.Categories = append(out.Categories, query.Category(c))
	}
	for _, t := range f.DocumentTypes {
		out.DocumentTypes = append(out.DocumentTypes, query.DocumentType(t))
	}
	return out
}

func responseFromDomain(resp response.Response) SearchResponse {
	return SearchResponse{
		Sentencias: resultsFromEntries(resp.Sentencias),
		Normativas: resultsFromEntries(resp.Normativas),
		Message:    resp.Message,
	}
}

func resultsFromEntries(entries []response.Entry) []Result {
	out := make([]Result, len(entries))
	for i, e := range entries {
		out[i] = Result{
			Type:           string(e.Kind),
			ID:             e.ID,
			Title:          e.Title,
			Text:           e.Text,
			Category:       e.Category,
			Number:         e.Number,
			Date:           e.Date,
			Jurisdiction:   e.Jurisdiction,
			URL:            e.URL,
			RelevanceScore: e.RelevanceScore,
			IsInfoMessage:  e.IsInfoMessage,
		}
	}
	return out
}

func normativeFromDomain(doc domain.StatuteDocument) NormativeDocument {
	return NormativeDocument{
		Content:    doc.Content,
		Title:      doc.Title,
		Category:   doc.Category,
		Number:     doc.Number,
		URL:        doc.SourceURL,
		IsMarkdown: doc.Format == domain.FormatStructuredText,
	}
}
