package cohere

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Norte-Development/lexsearch/internal/domain"
)

const defaultBaseURL = "https://api.cohere.com"

// Client is a minimal REST client to the Cohere rerank endpoint.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// Config holds the reranker client settings.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// NewClient creates a rerank client.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		client:  &http.Client{Timeout: timeout},
	}
}

type rerankRequest struct {
	Model     string           `json:"model"`
	Query     string           `json:"query"`
	Documents []rerankDocument `json:"documents"`
	TopN      int              `json:"top_n"`
}

type rerankDocument struct {
	Text string `json:"text"`
}

type rerankResponse struct {
	Results []struct {
		Index          int     `json:"index"`
		RelevanceScore float64 `json:"relevance_score"`
	} `json:"results"`
}

// Rerank scores documents against the query and returns the top N ordered
// by relevance. Indexes refer to positions in the submitted list.
func (c *Client) Rerank(ctx context.Context, query string, documents []string, topN int) ([]domain.RankedItem, error) {
	docs := make([]rerankDocument, len(documents))
	for i, d := range documents {
		docs[i] = rerankDocument{Text: d}
	}

	body, err := json.Marshal(rerankRequest{
		Model:     c.model,
		Query:     query,
		Documents: docs,
		TopN:      topN,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal rerank request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/v1/rerank", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build rerank request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: rerank request: %s", domain.ErrUpstreamService, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: rerank API status %d: %s",
			domain.ErrUpstreamService, resp.StatusCode, string(snippet))
	}

	var parsed rerankResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decode rerank response: %s", domain.ErrUpstreamService, err)
	}

	items := make([]domain.RankedItem, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		items = append(items, domain.RankedItem{Index: r.Index, RelevanceScore: r.RelevanceScore})
	}
	return items, nil
}
