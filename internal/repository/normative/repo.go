package normative

import (
	"context"
	"errors"
	"fmt"

	"github.com/Norte-Development/lexsearch/internal/db"
	"github.com/Norte-Development/lexsearch/internal/domain"
)

// store is the consumer interface for normative document reads.
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	HGetAll(ctx context.Context, key string) (map[string]string, error)
}

// Repo reads normative documents: raw national markup blobs, national
// metadata hashes, and per-jurisdiction provincial collections.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a normative document repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

// Blob returns the raw national markup for a document id.
func (r *Repo) Blob(ctx context.Context, documentID string) ([]byte, error) {
	key := fmt.Sprintf("%snorma/%s.html", r.keyPrefix, documentID)
	data, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: markup for %s not found in blob store", domain.ErrDocumentNotFound, documentID)
		}
		return nil, fmt.Errorf("%w: read blob %s: %s", domain.ErrUpstreamService, key, err)
	}
	return data, nil
}

// Metadata returns the national metadata projection for a document id.
// Missing metadata is not an error: the blob alone is enough to serve
// the document.
func (r *Repo) Metadata(ctx context.Context, documentID string) (domain.StatuteMeta, error) {
	key := fmt.Sprintf("%slegalDocuments:%s", r.keyPrefix, documentID)
	fields, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domain.StatuteMeta{}, fmt.Errorf("%w: read metadata %s: %s", domain.ErrUpstreamService, key, err)
	}
	return domain.StatuteMeta{
		Title:    fields["title"],
		Category: fields["category"],
		Number:   fields["number"],
		URL:      fields["url"],
	}, nil
}

// Provincial returns a document from a jurisdiction-named collection.
func (r *Repo) Provincial(ctx context.Context, jurisdiction, documentID string) (domain.StatuteDocument, error) {
	key := fmt.Sprintf("%slegislacion_%s:%s", r.keyPrefix, jurisdiction, documentID)
	fields, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domain.StatuteDocument{}, fmt.Errorf("%w: read provincial %s: %s", domain.ErrUpstreamService, key, err)
	}
	if len(fields) == 0 {
		return domain.StatuteDocument{}, fmt.Errorf(
			"%w: document %s not found in legislacion_%s", domain.ErrDocumentNotFound, documentID, jurisdiction)
	}
	return domain.StatuteDocument{
		Content:   fields["content"],
		Title:     fields["title"],
		Category:  fields["type"],
		Number:    fields["number"],
		SourceURL: fields["url"],
		Format:    domain.FormatStructuredText,
	}, nil
}
