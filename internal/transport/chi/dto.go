package chi

import (
	"fmt"
	"time"

	"github.com/Norte-Development/lexsearch/internal/domain"
	"github.com/Norte-Development/lexsearch/internal/domain/query"
	"github.com/Norte-Development/lexsearch/internal/domain/response"
)

// searchRequest is the POST /v1/search body.
type searchRequest struct {
	Query   string         `json:"query"`
	Filters *searchFilters `json:"filters,omitempty"`
}

type searchFilters struct {
	Categories    []string `json:"categories,omitempty"`
	StartDate     string   `json:"startDate,omitempty"`
	EndDate       string   `json:"endDate,omitempty"`
	Jurisdiction  string   `json:"jurisdiction,omitempty"`
	Provincia     string   `json:"provincia,omitempty"`
	DocumentTypes []string `json:"documentTypes,omitempty"`
	MaxResults    int      `json:"maxResults,omitempty"`
}

// searchResponse mirrors the agent tool result shape: two rank-ordered
// buckets plus a guidance message and the effective filters.
type searchResponse struct {
	Sentencias []resultItem   `json:"sentencias"`
	Normativas []resultItem   `json:"normativas"`
	Message    string         `json:"message,omitempty"`
	Filters    *searchFilters `json:"filters,omitempty"`
}

type resultItem struct {
	Type           string   `json:"type"`
	ID             string   `json:"id,omitempty"`
	Title          string   `json:"title,omitempty"`
	Text           string   `json:"text"`
	Category       string   `json:"category,omitempty"`
	Number         string   `json:"number,omitempty"`
	Date           string   `json:"date,omitempty"`
	Jurisdiction   string   `json:"jurisdiction,omitempty"`
	URL            string   `json:"url,omitempty"`
	RelevanceScore *float64 `json:"relevanceScore,omitempty"`
	IsInfoMessage  bool     `json:"isInfoMessage,omitempty"`
}

// normativeResponse is the GET /v1/normatives/{documentID} body.
type normativeResponse struct {
	Success  bool         `json:"success"`
	Document *documentDTO `json:"document,omitempty"`
	Message  string       `json:"message,omitempty"`
	Error    string       `json:"error,omitempty"`
}

type documentDTO struct {
	Content    string `json:"content"`
	Title      string `json:"title"`
	Category   string `json:"category,omitempty"`
	Number     string `json:"number,omitempty"`
	IsMarkdown bool   `json:"isMarkdown"`
	URL        string `json:"url,omitempty"`
}

// rulingRequest is the POST /v1/rulings/content body.
type rulingRequest struct {
	URL string `json:"url"`
}

type rulingResponse struct {
	Success bool   `json:"success"`
	Content string `json:"content,omitempty"`
	URL     string `json:"url"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func queryFromRequest(req searchRequest) (query.Query, error) {
	var f query.Filters
	if req.Filters != nil {
		for _, c := range req.Filters.Categories {
			f.Categories = append(f.Categories, query.Category(c))
		}
		for _, t := range req.Filters.DocumentTypes {
			f.DocumentTypes = append(f.DocumentTypes, query.DocumentType(t))
		}
		f.Jurisdiction = req.Filters.Jurisdiction
		f.Provincia = req.Filters.Provincia
		f.MaxResults = req.Filters.MaxResults

		start, err := parseDate(req.Filters.StartDate)
		if err != nil {
			return query.Query{}, fmt.Errorf("%w: start date: %s", domain.ErrInvalidQuery, err)
		}
		end, err := parseDate(req.Filters.EndDate)
		if err != nil {
			return query.Query{}, fmt.Errorf("%w: end date: %s", domain.ErrInvalidQuery, err)
		}
		f.StartDate = start
		f.EndDate = end
	}
	return query.New(req.Query, f)
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("expected YYYY-MM-DD, got %q", s)
	}
	return &t, nil
}

func filtersToDTO(f query.Filters) *searchFilters {
	out := &searchFilters{
		Jurisdiction: f.Jurisdiction,
		Provincia:    f.Provincia,
		MaxResults:   f.MaxResults,
	}
	for _, c := range f.Categories {
		out.Categories = append(out.Categories, string(c))
	}
	for _, t := range f.DocumentTypes {
		out.DocumentTypes = append(out.DocumentTypes, string(t))
	}
	if f.StartDate != nil {
		out.StartDate = f.StartDate.Format("2006-01-02")
	}
	if f.EndDate != nil {
		out.EndDate = f.EndDate.Format("2006-01-02")
	}
	return out
}

func searchResponseFromDomain(resp response.Response) searchResponse {
	return searchResponse{
		Sentencias: entriesToDTO(resp.Sentencias),
		Normativas: entriesToDTO(resp.Normativas),
		Message:    resp.Message,
		Filters:    filtersToDTO(resp.Filters),
	}
}

func entriesToDTO(entries []response.Entry) []resultItem {
	items := make([]resultItem, len(entries))
	for i, e := range entries {
		item := resultItem{
			Type:           string(e.Kind),
			ID:             e.ID,
			Title:          e.Title,
			Text:           e.Text,
			Category:       e.Category,
			Number:         e.Number,
			Jurisdiction:   e.Jurisdiction,
			URL:            e.URL,
			RelevanceScore: e.RelevanceScore,
			IsInfoMessage:  e.IsInfoMessage,
		}
		if !e.Date.IsZero() {
			item.Date = e.Date.UTC().Format(time.RFC3339)
		}
		items[i] = item
	}
	return items
}

func documentToDTO(doc domain.StatuteDocument) *documentDTO {
	return &documentDTO{
		Content:    doc.Content,
		Title:      doc.Title,
		Category:   doc.Category,
		Number:     doc.Number,
		IsMarkdown: doc.Format == domain.FormatStructuredText,
		URL:        doc.SourceURL,
	}
}
