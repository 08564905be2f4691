package pdf

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Norte-Development/lexsearch/internal/domain"
)

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 fake body"))
	}))
	defer srv.Close()

	d := NewDownloader(5 * time.Second)

	data, err := d.Download(context.Background(), srv.URL+"/fallo.pdf")
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if string(data) != "%PDF-1.4 fake body" {
		t.Errorf("Download() = %q", data)
	}
}

func TestDownload_BadURL(t *testing.T) {
	d := NewDownloader(5 * time.Second)

	_, err := d.Download(context.Background(), "://not-a-url")
	if !errors.Is(err, domain.ErrInvalidQuery) {
		t.Fatalf("error = %v, want ErrInvalidQuery", err)
	}
}

func TestDownload_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	d := NewDownloader(5 * time.Second)

	_, err := d.Download(context.Background(), srv.URL+"/missing.pdf")
	if !errors.Is(err, domain.ErrUpstreamService) {
		t.Fatalf("error = %v, want ErrUpstreamService", err)
	}
}

func TestDownload_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	d := NewDownloader(time.Second)

	_, err := d.Download(context.Background(), url)
	if !errors.Is(err, domain.ErrUpstreamService) {
		t.Fatalf("error = %v, want ErrUpstreamService", err)
	}
}

func TestExtract_NotAPDF(t *testing.T) {
	e := NewExtractor()

	_, err := e.Extract([]byte("this is plain text, not a pdf"))
	if !errors.Is(err, domain.ErrContentParse) {
		t.Fatalf("error = %v, want ErrContentParse", err)
	}
}

func TestExtract_Empty(t *testing.T) {
	e := NewExtractor()

	_, err := e.Extract(nil)
	if !errors.Is(err, domain.ErrContentParse) {
		t.Fatalf("error = %v, want ErrContentParse", err)
	}
}
