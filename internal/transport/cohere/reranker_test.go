package cohere

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Norte-Development/lexsearch/internal/domain"
)

func TestRerank(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody rerankRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"results":[
			{"index":2,"relevance_score":0.95},
			{"index":0,"relevance_score":0.41}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, APIKey: "test-key", Model: "rerank-v3.5"})

	items, err := c.Rerank(context.Background(), "divorcio", []string{"doc a", "doc b", "doc c"}, 2)
	if err != nil {
		t.Fatalf("Rerank() error = %v", err)
	}

	if gotPath != "/v1/rerank" {
		t.Errorf("path = %q, want /v1/rerank", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotBody.Model != "rerank-v3.5" || gotBody.Query != "divorcio" || gotBody.TopN != 2 {
		t.Errorf("request = %+v", gotBody)
	}
	if len(gotBody.Documents) != 3 || gotBody.Documents[1].Text != "doc b" {
		t.Errorf("documents = %+v", gotBody.Documents)
	}

	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].Index != 2 || items[0].RelevanceScore != 0.95 {
		t.Errorf("items[0] = %+v", items[0])
	}
	if items[1].Index != 0 || items[1].RelevanceScore != 0.41 {
		t.Errorf("items[1] = %+v", items[1])
	}
}

func TestRerank_UpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid api token"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, APIKey: "bad"})

	_, err := c.Rerank(context.Background(), "q", []string{"doc"}, 1)
	if !errors.Is(err, domain.ErrUpstreamService) {
		t.Fatalf("error = %v, want ErrUpstreamService", err)
	}
}

func TestRerank_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})

	_, err := c.Rerank(context.Background(), "q", []string{"doc"}, 1)
	if !errors.Is(err, domain.ErrUpstreamService) {
		t.Fatalf("error = %v, want ErrUpstreamService", err)
	}
}

func TestRerank_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})

	_, err := c.Rerank(context.Background(), "q", []string{"doc"}, 1)
	if !errors.Is(err, domain.ErrUpstreamService) {
		t.Fatalf("error = %v, want ErrUpstreamService", err)
	}
}
