package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Norte-Development/lexsearch/internal/domain"
	"github.com/Norte-Development/lexsearch/internal/domain/candidate"
	"github.com/Norte-Development/lexsearch/internal/domain/query"
	"github.com/Norte-Development/lexsearch/internal/domain/response"
	"github.com/Norte-Development/lexsearch/internal/metrics"
)

// Config tunes the retrieval pipeline. Zero values take defaults.
type Config struct {
	// CandidatePool is the oversized ANN candidate set, wider than the
	// channel limit to give reranking headroom.
	CandidatePool int
	// ChannelLimit caps each retrieval channel before fusion.
	ChannelLimit int
	// FusedLimit caps the fused case-law list.
	FusedLimit int
	// RerankCeiling caps how many documents are submitted to the reranker.
	RerankCeiling int
}

func (c *Config) applyDefaults() {
	if c.CandidatePool <= 0 {
		c.CandidatePool = 200
	}
	if c.ChannelLimit <= 0 {
		c.ChannelLimit = 50
	}
	if c.FusedLimit <= 0 {
		c.FusedLimit = 50
	}
	if c.RerankCeiling <= 0 {
		c.RerankCeiling = 50
	}
}

// Service orchestrates the retrieval pipeline: parallel multi-channel
// search, case-channel fusion, cross-source reranking, and assembly.
type Service struct {
	cases        CaseRepository
	statutes     StatuteSearcher
	embed        domain.Embedder
	rerank       domain.Reranker
	entitlements Entitlements
	cfg          Config
	logger       *zap.Logger
}

// New creates a search service.
func New(
	cases CaseRepository,
	statutes StatuteSearcher,
	embed domain.Embedder,
	rerank domain.Reranker,
	entitlements Entitlements,
	cfg Config,
	logger *zap.Logger,
) *Service {
	cfg.applyDefaults()
	return &Service{
		cases:        cases,
		statutes:     statutes,
		embed:        embed,
		rerank:       rerank,
		entitlements: entitlements,
		cfg:          cfg,
		logger:       logger,
	}
}

// Search runs the full pipeline for one validated query. The three
// retrieval branches run concurrently and are joined by name; fusion,
// reranking, and assembly are sequential transforms. Only a reranker
// failure is recoverable: it degrades to the fused order. Any retrieval
// channel failure fails the request.
func (s *Service) Search(ctx context.Context, q query.Query) (response.Response, error) {
	filters := q.Filters()

	var dateRange *query.DateRange
	if dr, ok := filters.DateRange(); ok {
		dateRange = &dr
	}

	provincia := filters.Provincia
	restricted := false
	if provincia != "" && provincia != query.JurisdictionNacional &&
		!s.entitlements.AllowsProvincialStatutes(ctx) {
		provincia = ""
		restricted = true
	}

	// Named branches: each writes its own slot, so a result can never
	// land in the wrong bucket.
	var vectorHits, textHits, statuteHits []candidate.Candidate

	g, gctx := errgroup.WithContext(ctx)

	if filters.Includes(query.TypeSentencias) {
		g.Go(func() error {
			defer s.observeChannel("vector", time.Now())
			emb, err := s.embed.Embed(gctx, q.Text())
			if err != nil {
				return fmt.Errorf("vectorize query: %w", err)
			}
			vectorHits, err = s.cases.SearchVector(
				gctx, emb.Embedding, dateRange, s.cfg.CandidatePool, s.cfg.ChannelLimit)
			if err != nil {
				return fmt.Errorf("vector channel: %w", err)
			}
			return nil
		})

		g.Go(func() error {
			defer s.observeChannel("fulltext", time.Now())
			var err error
			textHits, err = s.cases.SearchText(gctx, q.Text(), dateRange, s.cfg.ChannelLimit)
			if err != nil {
				return fmt.Errorf("full-text channel: %w", err)
			}
			return nil
		})
	}

	if filters.Includes(query.TypeNormativas) {
		prov := provincia
		g.Go(func() error {
			defer s.observeChannel("normativas", time.Now())
			var err error
			statuteHits, err = s.statutes.Search(gctx, q.Text(), filters.Categories, prov, dateRange)
			if err != nil {
				return fmt.Errorf("statute channel: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		return response.Response{}, err
	}

	sentencias := fuseChannels(vectorHits, textHits, s.cfg.FusedLimit)
	normativas := statuteHits

	if len(sentencias) > filters.MaxResults {
		sentencias = sentencias[:filters.MaxResults]
	}
	if len(normativas) > filters.MaxResults {
		normativas = normativas[:filters.MaxResults]
	}

	sentencias, normativas, reranked := s.rerankBuckets(ctx, q.Text(), sentencias, normativas)

	metrics.SearchRequestsTotal.WithLabelValues("ok").Inc()
	return assemble(q.Text(), sentencias, normativas, filters, reranked, restricted), nil
}

// rerankBuckets submits the unified candidate list to the cross-encoder
// and rebuilds both buckets in rerank order. Type tagging is never
// altered: each candidate lands back in the bucket its discriminant
// names. Any reranker failure degrades to the pre-rerank buckets.
func (s *Service) rerankBuckets(
	ctx context.Context, queryText string,
	sentencias, normativas []candidate.Candidate,
) (rerankedSent, rerankedNorm []candidate.Candidate, reranked bool) {
	combined := make([]candidate.Candidate, 0, len(sentencias)+len(normativas))
	combined = append(combined, sentencias...)
	combined = append(combined, normativas...)

	if len(combined) == 0 {
		return sentencias, normativas, false
	}

	docs := make([]string, len(combined))
	for i, c := range combined {
		docs[i] = c.Text()
	}

	topN := len(combined)
	if topN > s.cfg.RerankCeiling {
		topN = s.cfg.RerankCeiling
	}

	items, err := s.rerank.Rerank(ctx, queryText, docs, topN)
	if err != nil {
		s.logger.Warn("Reranking failed, serving fused results", zap.Error(err))
		metrics.RerankFallbacksTotal.Inc()
		return sentencias, normativas, false
	}

	rerankedSent = make([]candidate.Candidate, 0, len(sentencias))
	rerankedNorm = make([]candidate.Candidate, 0, len(normativas))
	for _, item := range items {
		if item.Index < 0 || item.Index >= len(combined) {
			continue
		}
		c := combined[item.Index].WithRelevanceScore(item.RelevanceScore)
		switch c.Kind() {
		case candidate.Ruling:
			rerankedSent = append(rerankedSent, c)
		case candidate.Statute:
			rerankedNorm = append(rerankedNorm, c)
		}
	}
	return rerankedSent, rerankedNorm, true
}

func (s *Service) observeChannel(channel string, start time.Time) {
	metrics.SearchChannelDuration.WithLabelValues(channel).Observe(time.Since(start).Seconds())
}
