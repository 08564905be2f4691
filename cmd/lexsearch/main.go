package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Norte-Development/lexsearch/internal/config"
	"github.com/Norte-Development/lexsearch/internal/db"
	dbRedis "github.com/Norte-Development/lexsearch/internal/db/redis"
	"github.com/Norte-Development/lexsearch/internal/domain"
	logpkg "github.com/Norte-Development/lexsearch/internal/logger"
	"github.com/Norte-Development/lexsearch/internal/metrics"
	caselawrepo "github.com/Norte-Development/lexsearch/internal/repository/caselaw"
	"github.com/Norte-Development/lexsearch/internal/repository/embcache"
	normativerepo "github.com/Norte-Development/lexsearch/internal/repository/normative"
	chiTransport "github.com/Norte-Development/lexsearch/internal/transport/chi"
	"github.com/Norte-Development/lexsearch/internal/transport/cohere"
	mcpTransport "github.com/Norte-Development/lexsearch/internal/transport/mcp"
	openaiEmb "github.com/Norte-Development/lexsearch/internal/transport/openai"
	pdfTransport "github.com/Norte-Development/lexsearch/internal/transport/pdf"
	"github.com/Norte-Development/lexsearch/internal/transport/statuteapi"
	embeddinguc "github.com/Norte-Development/lexsearch/internal/usecase/embedding"
	healthuc "github.com/Norte-Development/lexsearch/internal/usecase/health"
	normativeuc "github.com/Norte-Development/lexsearch/internal/usecase/normative"
	rulinguc "github.com/Norte-Development/lexsearch/internal/usecase/ruling"
	searchuc "github.com/Norte-Development/lexsearch/internal/usecase/search"
	"github.com/Norte-Development/lexsearch/internal/version"
)

func main() {
	mcpMode := flag.Bool("mcp", false, "serve MCP tools over stdio instead of HTTP")
	flag.Parse()

	// Local development convenience; in production the env is already set.
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting lexsearch",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Bool("mcp", *mcpMode),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterSearchMetrics()

	baseEmbedder := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:   cfg.Embedding.APIKey,
		BaseURL:  cfg.Embedding.BaseURL,
		Model:    cfg.Embedding.Model,
		Provider: cfg.Embedding.Provider,
		Logger:   logger,
	})
	embedder := buildEmbedder(cfg, baseEmbedder, store, logger)
	logger.Info("Embedder created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
	)

	reranker := cohere.NewClient(cohere.Config{
		BaseURL: cfg.Rerank.BaseURL,
		APIKey:  cfg.Rerank.APIKey,
		Model:   cfg.Rerank.Model,
		Timeout: time.Duration(cfg.Rerank.TimeoutSec) * time.Second,
	})

	statutes := statuteapi.NewClient(statuteapi.Config{
		BaseURL: cfg.StatuteAPI.BaseURL,
		APIKey:  cfg.StatuteAPI.APIKey,
		Timeout: time.Duration(cfg.StatuteAPI.TimeoutSec) * time.Second,
	})

	caseRepo := caselawrepo.New(store, cfg.Storage.KeyPrefix)
	normRepo := normativerepo.New(store, cfg.Storage.KeyPrefix)

	searchSvc := searchuc.New(
		caseRepo,
		statutes,
		embedder,
		reranker,
		searchuc.StaticEntitlements{Provincial: cfg.Plan.ProvincialStatutes},
		searchuc.Config{
			CandidatePool: cfg.Search.CandidatePool,
			ChannelLimit:  cfg.Search.ChannelLimit,
			FusedLimit:    cfg.Search.FusedLimit,
			RerankCeiling: cfg.Search.RerankCeiling,
		},
		logger,
	)
	normativeSvc := normativeuc.New(normRepo, logger)
	rulingSvc := rulinguc.New(
		pdfTransport.NewDownloader(30*time.Second),
		pdfTransport.NewExtractor(),
		logger,
	)
	healthSvc := healthuc.New(store, baseEmbedder)

	if *mcpMode {
		runMCP(searchSvc, normativeSvc, rulingSvc, logger)
		return
	}

	runHTTP(cfg, searchSvc, normativeSvc, rulingSvc, healthSvc, logger)
}

func runMCP(
	searchSvc *searchuc.Service,
	normativeSvc *normativeuc.Service,
	rulingSvc *rulinguc.Service,
	logger *zap.Logger,
) {
	s := mcpTransport.New(searchSvc, normativeSvc, rulingSvc, logger)
	logger.Info("Serving MCP tools over stdio")
	if err := mcpTransport.ServeStdio(s); err != nil {
		logger.Fatal("MCP server error", zap.Error(err))
	}
}

func runHTTP(
	cfg config.Config,
	searchSvc *searchuc.Service,
	normativeSvc *normativeuc.Service,
	rulingSvc *rulinguc.Service,
	healthSvc *healthuc.Service,
	logger *zap.Logger,
) {
	server := chiTransport.NewServer(searchSvc, normativeSvc, rulingSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildEmbedder assembles the decorator chain: OpenAI -> Cached -> Instrumented.
func buildEmbedder(
	cfg config.Config, base domain.Embedder, store db.Store, logger *zap.Logger,
) domain.Embedder {
	embedder := base
	if cfg.Embedding.CacheTTLSec > 0 {
		embedder = embcache.New(
			base, store, cfg.Storage.KeyPrefix,
			time.Duration(cfg.Embedding.CacheTTLSec)*time.Second,
			metrics.EmbeddingCacheTotal, logger,
		)
	}

	return embeddinguc.NewInstrumentedEmbedder(
		embedder, cfg.Embedding.Provider, cfg.Embedding.Model, logger,
	)
}

// jsonRecoverer returns JSON instead of a plain text stacktrace on panic.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote_addr", r.RemoteAddr),
			)
		})
	}
}
