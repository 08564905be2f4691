package ruling

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Source downloads the raw bytes behind a ruling's PDF URL.
type Source interface {
	Download(ctx context.Context, url string) ([]byte, error)
}

// Extractor turns PDF bytes into plain text.
type Extractor interface {
	Extract(data []byte) (string, error)
}

// Service fetches and extracts the full text of a judicial ruling.
type Service struct {
	source    Source
	extractor Extractor
	logger    *zap.Logger
}

// New creates a ruling content service.
func New(source Source, extractor Extractor, logger *zap.Logger) *Service {
	return &Service{source: source, extractor: extractor, logger: logger}
}

// Fetch downloads the PDF at url and returns its extracted plain text.
func (s *Service) Fetch(ctx context.Context, url string) (string, error) {
	data, err := s.source.Download(ctx, url)
	if err != nil {
		return "", fmt.Errorf("download ruling: %w", err)
	}

	text, err := s.extractor.Extract(data)
	if err != nil {
		return "", fmt.Errorf("extract ruling text: %w", err)
	}

	s.logger.Debug("Extracted ruling content",
		zap.String("url", url),
		zap.Int("bytes", len(data)),
		zap.Int("chars", len(text)),
	)
	return text, nil
}
