package statuteapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Norte-Development/lexsearch/internal/domain"
	"github.com/Norte-Development/lexsearch/internal/domain/candidate"
	"github.com/Norte-Development/lexsearch/internal/domain/query"
)

// dateLayout is the wire format for date filters.
const dateLayout = "2006-01-02"

// Client is a REST client to the external statute search API. The API
// does its own ranking; hits enter reranking without a fusion score.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// Config holds the statute search API settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// NewClient creates a statute search client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type searchRequest struct {
	Query        string   `json:"query"`
	Category     []string `json:"category,omitempty"`
	Jurisdiccion string   `json:"jurisdiccion,omitempty"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
}

type searchResponse struct {
	Results []statuteHit `json:"results"`
}

type statuteHit struct {
	ID         string  `json:"id"`
	Text       string  `json:"text"`
	Category   string  `json:"category"`
	Number     string  `json:"number"`
	DocumentID string  `json:"document_id"`
	Date       string  `json:"date"`
	Score      float64 `json:"score"`
	IDNorma    string  `json:"id_norma"`
	URL        string  `json:"url"`
	Title      string  `json:"title"`
}

// Search queries the statute corpus with optional category, jurisdiction
// and date filters. A response without a results field maps to an empty
// list, not an error.
func (c *Client) Search(
	ctx context.Context,
	text string,
	categories []query.Category,
	jurisdiccion string,
	dateRange *query.DateRange,
) ([]candidate.Candidate, error) {
	reqBody := searchRequest{Query: text, Jurisdiccion: jurisdiccion}
	for _, cat := range categories {
		reqBody.Category = append(reqBody.Category, string(cat))
	}
	if dateRange != nil {
		if dateRange.Start != nil {
			reqBody.StartDate = dateRange.Start.Format(dateLayout)
		}
		if dateRange.End != nil {
			reqBody.EndDate = dateRange.End.Format(dateLayout)
		}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal statute search request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build statute search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: statute search request: %s", domain.ErrUpstreamService, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: statute search API status %d: %s",
			domain.ErrUpstreamService, resp.StatusCode, string(snippet))
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decode statute search response: %s", domain.ErrUpstreamService, err)
	}

	out := make([]candidate.Candidate, 0, len(parsed.Results))
	for _, hit := range parsed.Results {
		id := hit.IDNorma
		if id == "" {
			id = hit.DocumentID
		}
		if id == "" {
			id = hit.ID
		}

		var date time.Time
		if hit.Date != "" {
			if d, err := time.Parse(dateLayout, hit.Date); err == nil {
				date = d
			} else if d, err := time.Parse(time.RFC3339, hit.Date); err == nil {
				date = d
			}
		}

		out = append(out, candidate.NewStatute(
			id, hit.Title, hit.Text, hit.Category, hit.Number, date, hit.URL,
		))
	}
	return out, nil
}
