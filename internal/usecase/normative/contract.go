package normative

import (
	"context"

	"github.com/Norte-Development/lexsearch/internal/domain"
)

// Repository provides the three normative document reads: the national
// markup blob, the national metadata projection, and the per-jurisdiction
// provincial collections.
type Repository interface {
	Blob(ctx context.Context, documentID string) ([]byte, error)
	Metadata(ctx context.Context, documentID string) (domain.StatuteMeta, error)
	Provincial(ctx context.Context, jurisdiction, documentID string) (domain.StatuteDocument, error)
}
