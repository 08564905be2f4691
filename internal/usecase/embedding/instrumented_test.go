package embedding

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Norte-Development/lexsearch/internal/domain"
)

type mockEmbedder struct {
	result domain.EmbeddingResult
	err    error
	called bool
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.called = true
	return m.result, m.err
}

func TestInstrumentedEmbedder_Success(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{
		Embedding:    []float32{0.1, 0.2, 0.3},
		PromptTokens: 5,
		TotalTokens:  5,
	}}
	p := NewInstrumentedEmbedder(inner, "openai", "text-embedding-3-small", zap.NewNop())

	result, err := p.Embed(context.Background(), "hola")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !inner.called {
		t.Fatal("inner embedder not called")
	}
	if len(result.Embedding) != 3 || result.TotalTokens != 5 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestInstrumentedEmbedder_Error(t *testing.T) {
	inner := &mockEmbedder{err: errors.New("provider down")}
	p := NewInstrumentedEmbedder(inner, "openai", "text-embedding-3-small", zap.NewNop())

	_, err := p.Embed(context.Background(), "hola")
	if err == nil {
		t.Fatal("expected error")
	}
}
