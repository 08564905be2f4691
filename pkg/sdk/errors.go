package lexsearch

import "github.com/Norte-Development/lexsearch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidQuery     = domain.ErrInvalidQuery
	ErrUpstreamService  = domain.ErrUpstreamService
	ErrDocumentNotFound = domain.ErrDocumentNotFound
	ErrContentParse     = domain.ErrContentParse
)
