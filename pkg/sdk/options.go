package lexsearch

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs    []string
	password string

	openAIKey     string
	openAIBaseURL string
	embedModel    string
	embedCacheTTL time.Duration

	cohereKey     string
	cohereBaseURL string
	rerankModel   string

	statuteBaseURL string
	statuteKey     string

	keyPrefix  string
	provincial bool

	candidatePool int
	channelLimit  int
	fusedLimit    int
	rerankCeiling int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithOpenAI sets the embedding provider API key.
func WithOpenAI(apiKey string) Option {
	return optionFunc(func(c *clientConfig) {
		c.openAIKey = apiKey
	})
}

// WithOpenAIBaseURL points the embedding provider at an OpenAI-compatible
// endpoint.
func WithOpenAIBaseURL(baseURL string) Option {
	return optionFunc(func(c *clientConfig) {
		c.openAIBaseURL = baseURL
	})
}

// WithEmbeddingModel overrides the embedding model.
// Defaults to text-embedding-3-small.
func WithEmbeddingModel(model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedModel = model
	})
}

// WithEmbeddingCache caches query embeddings in the store with the given
// TTL. Disabled by default.
func WithEmbeddingCache(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedCacheTTL = ttl
	})
}

// WithCohere sets the reranking provider API key. Without it reranking is
// attempted and falls back to fused order on failure.
func WithCohere(apiKey string) Option {
	return optionFunc(func(c *clientConfig) {
		c.cohereKey = apiKey
	})
}

// WithCohereBaseURL points the reranker at an alternate endpoint.
func WithCohereBaseURL(baseURL string) Option {
	return optionFunc(func(c *clientConfig) {
		c.cohereBaseURL = baseURL
	})
}

// WithRerankModel overrides the rerank model. Defaults to rerank-v3.5.
func WithRerankModel(model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.rerankModel = model
	})
}

// WithStatuteAPI configures the external statute search service.
func WithStatuteAPI(baseURL, apiKey string) Option {
	return optionFunc(func(c *clientConfig) {
		c.statuteBaseURL = baseURL
		c.statuteKey = apiKey
	})
}

// WithKeyPrefix namespaces every store key. Defaults to "lex:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithProvincialStatutes enables provincial statute search for this client.
// Disabled by default; restricted searches degrade to national scope with
// an informational notice.
func WithProvincialStatutes() Option {
	return optionFunc(func(c *clientConfig) {
		c.provincial = true
	})
}

// WithSearchTuning overrides the retrieval pipeline limits: ANN candidate
// pool, per-channel cap, fused list cap, and rerank submission ceiling.
// Zero values keep the defaults (200, 50, 50, 50).
func WithSearchTuning(candidatePool, channelLimit, fusedLimit, rerankCeiling int) Option {
	return optionFunc(func(c *clientConfig) {
		c.candidatePool = candidatePool
		c.channelLimit = channelLimit
		c.fusedLimit = fusedLimit
		c.rerankCeiling = rerankCeiling
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
