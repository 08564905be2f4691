package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/Norte-Development/lexsearch/internal/domain"
)

// maxDownloadBytes bounds a single PDF download.
const maxDownloadBytes = 64 << 20

// Downloader fetches PDF bytes over HTTP(S).
type Downloader struct {
	client *http.Client
}

// NewDownloader creates a PDF downloader.
func NewDownloader(timeout time.Duration) *Downloader {
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Downloader{client: &http.Client{Timeout: timeout}}
}

// Download fetches the resource at url. A non-2xx response is an
// upstream error carrying the HTTP status.
func (d *Downloader) Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request for %s: %s", domain.ErrInvalidQuery, url, err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %s", domain.ErrUpstreamService, url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: fetch %s: %s", domain.ErrUpstreamService, url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %s", domain.ErrUpstreamService, url, err)
	}
	return data, nil
}

// Extractor converts PDF bytes into plain text.
type Extractor struct{}

// NewExtractor creates a PDF text extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the concatenated plain text of all pages. Unparsable
// bytes or a document with no text fail with a parse error.
func (e *Extractor) Extract(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: read pdf: %s", domain.ErrContentParse, err)
	}

	var sb strings.Builder
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: extract pdf text: %s", domain.ErrContentParse, err)
	}
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", fmt.Errorf("%w: extract pdf text: %s", domain.ErrContentParse, err)
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("%w: pdf contains no extractable text", domain.ErrContentParse)
	}
	return text, nil
}
