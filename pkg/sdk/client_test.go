package lexsearch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Norte-Development/lexsearch/internal/domain"
	"github.com/Norte-Development/lexsearch/internal/domain/query"
	"github.com/Norte-Development/lexsearch/internal/domain/response"
	healthuc "github.com/Norte-Development/lexsearch/internal/usecase/health"
)

// --- Mocks ---

type mockSearch struct {
	resp      response.Response
	err       error
	lastQuery query.Query
	called    bool
}

func (m *mockSearch) Search(_ context.Context, q query.Query) (response.Response, error) {
	m.called = true
	m.lastQuery = q
	return m.resp, m.err
}

type mockNormative struct {
	doc     domain.StatuteDocument
	err     error
	lastID  string
	lastJur string
}

func (m *mockNormative) Fetch(_ context.Context, documentID, jurisdiction string) (domain.StatuteDocument, error) {
	m.lastID = documentID
	m.lastJur = jurisdiction
	return m.doc, m.err
}

type mockRuling struct {
	content string
	err     error
	lastURL string
}

func (m *mockRuling) Fetch(_ context.Context, url string) (string, error) {
	m.lastURL = url
	return m.content, m.err
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(_ context.Context) healthuc.Report { return m.report }

func newTestClient(search *mockSearch, norm *mockNormative, ruling *mockRuling, health *mockHealth) *Client {
	return &Client{
		searchSvc:    search,
		normativeSvc: norm,
		rulingSvc:    ruling,
		healthSvc:    health,
	}
}

// --- Tests ---

func TestDocumentSearch(t *testing.T) {
	score := 0.95
	search := &mockSearch{resp: response.Response{
		Sentencias: []response.Entry{{
			Kind:           "sentencia",
			ID:             "fallo-1",
			Title:          "Fallo uno",
			Text:           "texto",
			Jurisdiction:   "nacional",
			RelevanceScore: &score,
		}},
		Message: "Se encontraron 1 resultados relevantes",
	}}
	c := newTestClient(search, &mockNormative{}, &mockRuling{}, &mockHealth{})

	resp, err := c.DocumentSearch(context.Background(), "despido sin causa", nil)
	if err != nil {
		t.Fatalf("DocumentSearch() error = %v", err)
	}
	if !search.called {
		t.Fatal("search use case not called")
	}
	if len(resp.Sentencias) != 1 || resp.Sentencias[0].ID != "fallo-1" {
		t.Fatalf("sentencias = %+v", resp.Sentencias)
	}
	if resp.Sentencias[0].RelevanceScore == nil || *resp.Sentencias[0].RelevanceScore != 0.95 {
		t.Errorf("relevance score = %v", resp.Sentencias[0].RelevanceScore)
	}
	if resp.Message != "Se encontraron 1 resultados relevantes" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestDocumentSearch_FiltersForwarded(t *testing.T) {
	search := &mockSearch{}
	c := newTestClient(search, &mockNormative{}, &mockRuling{}, &mockHealth{})

	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := c.DocumentSearch(context.Background(), "alimentos", &Filters{
		Categories: []string{"ley"},
		Provincia:  "chaco",
		StartDate:  &start,
		MaxResults: 5,
	})
	if err != nil {
		t.Fatalf("DocumentSearch() error = %v", err)
	}

	f := search.lastQuery.Filters()
	if len(f.Categories) != 1 || f.Categories[0] != query.CategoryLey {
		t.Errorf("categories = %v", f.Categories)
	}
	if f.Provincia != "chaco" || f.MaxResults != 5 {
		t.Errorf("filters = %+v", f)
	}
	if f.StartDate == nil || !f.StartDate.Equal(start) {
		t.Errorf("start date = %v", f.StartDate)
	}
}

func TestDocumentSearch_EmptyQuery(t *testing.T) {
	search := &mockSearch{}
	c := newTestClient(search, &mockNormative{}, &mockRuling{}, &mockHealth{})

	_, err := c.DocumentSearch(context.Background(), "   ", nil)
	if !errors.Is(err, ErrInvalidQuery) {
		t.Fatalf("error = %v, want ErrInvalidQuery", err)
	}
	if search.called {
		t.Error("search use case called for invalid query")
	}
}

func TestDocumentSearch_PipelineError(t *testing.T) {
	search := &mockSearch{err: domain.ErrUpstreamService}
	c := newTestClient(search, &mockNormative{}, &mockRuling{}, &mockHealth{})

	_, err := c.DocumentSearch(context.Background(), "despido", nil)
	if !errors.Is(err, ErrUpstreamService) {
		t.Fatalf("error = %v, want ErrUpstreamService", err)
	}
}

func TestGetFullNormative(t *testing.T) {
	norm := &mockNormative{doc: domain.StatuteDocument{
		Content:   "ARTICULO 1.- Texto",
		Title:     "Ley provincial",
		Category:  "Ley",
		Number:    "1234",
		SourceURL: "https://example.com",
		Format:    domain.FormatStructuredText,
	}}
	c := newTestClient(&mockSearch{}, norm, &mockRuling{}, &mockHealth{})

	doc, err := c.GetFullNormative(context.Background(), "doc1", "chaco")
	if err != nil {
		t.Fatalf("GetFullNormative() error = %v", err)
	}
	if norm.lastID != "doc1" || norm.lastJur != "chaco" {
		t.Errorf("forwarded %q/%q", norm.lastID, norm.lastJur)
	}
	if doc.Content != "ARTICULO 1.- Texto" || doc.Number != "1234" {
		t.Errorf("doc = %+v", doc)
	}
	if !doc.IsMarkdown {
		t.Error("structured text document should report IsMarkdown")
	}
}

func TestGetFullNormative_NotFound(t *testing.T) {
	norm := &mockNormative{err: domain.ErrDocumentNotFound}
	c := newTestClient(&mockSearch{}, norm, &mockRuling{}, &mockHealth{})

	_, err := c.GetFullNormative(context.Background(), "missing", "")
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("error = %v, want ErrDocumentNotFound", err)
	}
}

func TestGetSentenciaContent(t *testing.T) {
	ruling := &mockRuling{content: "texto de la sentencia"}
	c := newTestClient(&mockSearch{}, &mockNormative{}, ruling, &mockHealth{})

	content, err := c.GetSentenciaContent(context.Background(), "https://example.com/fallo.pdf")
	if err != nil {
		t.Fatalf("GetSentenciaContent() error = %v", err)
	}
	if content != "texto de la sentencia" {
		t.Errorf("content = %q", content)
	}
	if ruling.lastURL != "https://example.com/fallo.pdf" {
		t.Errorf("url = %q", ruling.lastURL)
	}
}

func TestGetSentenciaContent_Error(t *testing.T) {
	ruling := &mockRuling{err: domain.ErrContentParse}
	c := newTestClient(&mockSearch{}, &mockNormative{}, ruling, &mockHealth{})

	_, err := c.GetSentenciaContent(context.Background(), "https://example.com/fallo.pdf")
	if !errors.Is(err, ErrContentParse) {
		t.Fatalf("error = %v, want ErrContentParse", err)
	}
}

func TestHealth(t *testing.T) {
	health := &mockHealth{report: healthuc.Report{
		Status: healthuc.Degraded,
		Checks: map[string]healthuc.CheckResult{
			"database":  healthuc.CheckError,
			"embedding": healthuc.CheckOK,
		},
	}}
	c := newTestClient(&mockSearch{}, &mockNormative{}, &mockRuling{}, health)

	got := c.Health(context.Background())
	if got.Status != "degraded" {
		t.Errorf("status = %q", got.Status)
	}
	if got.Checks["database"] != "error" || got.Checks["embedding"] != "ok" {
		t.Errorf("checks = %v", got.Checks)
	}
}

func TestNew_RequiresAddress(t *testing.T) {
	if _, err := New(context.Background(), WithStatuteAPI("https://statutes.example.com", "key")); err == nil {
		t.Fatal("expected error without WithRedis")
	}
}

func TestNew_RequiresStatuteAPI(t *testing.T) {
	if _, err := New(context.Background(), WithRedis("localhost:6379", "")); err == nil {
		t.Fatal("expected error without WithStatuteAPI")
	}
}
