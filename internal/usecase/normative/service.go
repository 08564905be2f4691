package normative

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Norte-Development/lexsearch/internal/domain"
	"github.com/Norte-Development/lexsearch/internal/domain/query"
)

// Service fetches the full text of a normative document, routing between
// the national store and per-jurisdiction collections.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// New creates a normative document service.
func New(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Fetch resolves a document by id. A provincial jurisdiction routes to
// its own collection first; on any provincial failure the national route
// is tried for the same id before surfacing an error. Both routes are
// read-only and idempotent.
func (s *Service) Fetch(ctx context.Context, documentID, jurisdiction string) (domain.StatuteDocument, error) {
	if documentID == "" {
		return domain.StatuteDocument{}, fmt.Errorf("%w: document id is required", domain.ErrInvalidQuery)
	}

	if jurisdiction != "" && jurisdiction != query.JurisdictionNacional {
		doc, err := s.repo.Provincial(ctx, jurisdiction, documentID)
		if err == nil {
			return doc, nil
		}
		s.logger.Warn("Provincial fetch failed, falling back to national route",
			zap.String("document_id", documentID),
			zap.String("jurisdiction", jurisdiction),
			zap.Error(err),
		)
	}

	return s.fetchNational(ctx, documentID)
}

// fetchNational reads the markup blob and the metadata projection
// concurrently and joins them into one document.
func (s *Service) fetchNational(ctx context.Context, documentID string) (domain.StatuteDocument, error) {
	var (
		markup []byte
		meta   domain.StatuteMeta
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		markup, err = s.repo.Blob(gctx, documentID)
		return err
	})
	g.Go(func() error {
		var err error
		meta, err = s.repo.Metadata(gctx, documentID)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.StatuteDocument{}, fmt.Errorf("fetch national document %s: %w", documentID, err)
	}

	content, err := extractBody(markup)
	if err != nil {
		return domain.StatuteDocument{}, fmt.Errorf("parse markup for %s: %w", documentID, err)
	}

	return domain.StatuteDocument{
		Content:   content,
		Title:     meta.Title,
		Category:  meta.Category,
		Number:    meta.Number,
		SourceURL: meta.URL,
		Format:    domain.FormatMarkup,
	}, nil
}
