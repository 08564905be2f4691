package lexsearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Norte-Development/lexsearch/internal/db"
	dbRedis "github.com/Norte-Development/lexsearch/internal/db/redis"
	"github.com/Norte-Development/lexsearch/internal/domain"
	"github.com/Norte-Development/lexsearch/internal/domain/query"
	"github.com/Norte-Development/lexsearch/internal/domain/response"
	"github.com/Norte-Development/lexsearch/internal/metrics"
	caselawrepo "github.com/Norte-Development/lexsearch/internal/repository/caselaw"
	"github.com/Norte-Development/lexsearch/internal/repository/embcache"
	normativerepo "github.com/Norte-Development/lexsearch/internal/repository/normative"
	"github.com/Norte-Development/lexsearch/internal/transport/cohere"
	openaiEmb "github.com/Norte-Development/lexsearch/internal/transport/openai"
	pdfTransport "github.com/Norte-Development/lexsearch/internal/transport/pdf"
	"github.com/Norte-Development/lexsearch/internal/transport/statuteapi"
	healthuc "github.com/Norte-Development/lexsearch/internal/usecase/health"
	normativeuc "github.com/Norte-Development/lexsearch/internal/usecase/normative"
	rulinguc "github.com/Norte-Development/lexsearch/internal/usecase/ruling"
	searchuc "github.com/Norte-Development/lexsearch/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces for test substitution.
type searchUseCase interface {
	Search(ctx context.Context, q query.Query) (response.Response, error)
}

type normativeUseCase interface {
	Fetch(ctx context.Context, documentID, jurisdiction string) (domain.StatuteDocument, error)
}

type rulingUseCase interface {
	Fetch(ctx context.Context, url string) (string, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the lexsearch SDK entry point.
type Client struct {
	store        db.Store
	searchSvc    searchUseCase
	normativeSvc normativeUseCase
	rulingSvc    rulingUseCase
	healthSvc    healthUseCase
	obs          *observer
}

// New creates a lexsearch Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		keyPrefix:  "lex:",
		embedModel: "text-embedding-3-small",
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("lexsearch: database address required (use WithRedis)")
	}
	if cfg.statuteBaseURL == "" {
		return nil, errors.New("lexsearch: statute API base URL required (use WithStatuteAPI)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("lexsearch: create store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("lexsearch: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}

	return wireClient(store, cfg, obs), nil
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	// Internal services log through zap; the SDK surfaces its own
	// slog-based observer instead.
	internalLog := zap.NewNop()

	var embedder domain.Embedder = openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:   cfg.openAIKey,
		BaseURL:  cfg.openAIBaseURL,
		Model:    cfg.embedModel,
		Provider: "openai",
		Logger:   internalLog,
	})
	if cfg.embedCacheTTL > 0 {
		embedder = embcache.New(
			embedder, store, cfg.keyPrefix, cfg.embedCacheTTL,
			metrics.EmbeddingCacheTotal, internalLog,
		)
	}

	reranker := cohere.NewClient(cohere.Config{
		BaseURL: cfg.cohereBaseURL,
		APIKey:  cfg.cohereKey,
		Model:   cfg.rerankModel,
	})

	statutes := statuteapi.NewClient(statuteapi.Config{
		BaseURL: cfg.statuteBaseURL,
		APIKey:  cfg.statuteKey,
	})

	searchSvc := searchuc.New(
		caselawrepo.New(store, cfg.keyPrefix),
		statutes,
		embedder,
		reranker,
		searchuc.StaticEntitlements{Provincial: cfg.provincial},
		searchuc.Config{
			CandidatePool: cfg.candidatePool,
			ChannelLimit:  cfg.channelLimit,
			FusedLimit:    cfg.fusedLimit,
			RerankCeiling: cfg.rerankCeiling,
		},
		internalLog,
	)
	normativeSvc := normativeuc.New(normativerepo.New(store, cfg.keyPrefix), internalLog)
	rulingSvc := rulinguc.New(
		pdfTransport.NewDownloader(30*time.Second),
		pdfTransport.NewExtractor(),
		internalLog,
	)
	healthSvc := healthuc.New(store, nil)

	return &Client{
		store:        store,
		searchSvc:    searchSvc,
		normativeSvc: normativeSvc,
		rulingSvc:    rulingSvc,
		healthSvc:    healthSvc,
		obs:          obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// DocumentSearch runs the hybrid retrieval pipeline: parallel vector,
// full-text, and statute search, score fusion, and cross-source
// reranking. nil filters searches everything with defaults.
func (c *Client) DocumentSearch(
	ctx context.Context, queryText string, filters *Filters,
) (res SearchResponse, err error) {
	start := time.Now()
	defer func() { c.obs.observe("document_search", start, err) }()

	q, err := query.New(queryText, filtersToDomain(filters))
	if err != nil {
		return SearchResponse{}, fmt.Errorf("document search: %w", err)
	}

	resp, err := c.searchSvc.Search(ctx, q)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("document search: %w", err)
	}
	return responseFromDomain(resp), nil
}

// GetFullNormative fetches the complete text of a statute document.
// Non-national jurisdictions route to the provincial collection first and
// fall back to the national store.
func (c *Client) GetFullNormative(
	ctx context.Context, documentID, jurisdiction string,
) (doc NormativeDocument, err error) {
	start := time.Now()
	defer func() { c.obs.observe("get_full_normative", start, err) }()

	d, err := c.normativeSvc.Fetch(ctx, documentID, jurisdiction)
	if err != nil {
		return NormativeDocument{}, fmt.Errorf("get full normative: %w", err)
	}
	return normativeFromDomain(d), nil
}

// GetSentenciaContent downloads a ruling PDF and extracts its plain text.
func (c *Client) GetSentenciaContent(
	ctx context.Context, url string,
) (content string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("get_sentencia_content", start, err) }()

	content, err = c.rulingSvc.Fetch(ctx, url)
	if err != nil {
		return "", fmt.Errorf("get sentencia content: %w", err)
	}
	return content, nil
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok" or "degraded"
	Checks map[string]string // component -> "ok"/"error"
}

// Health checks the health of all system components.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}
