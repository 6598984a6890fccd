package main

import (
	"context"
	"encoding/json"
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

	"github.com/kailas-cloud/furnidex/internal/config"
	"github.com/kailas-cloud/furnidex/internal/db"
	dbRedis "github.com/kailas-cloud/furnidex/internal/db/redis"
	"github.com/kailas-cloud/furnidex/internal/domain"
	"github.com/kailas-cloud/furnidex/internal/domain/scoring"
	logpkg "github.com/kailas-cloud/furnidex/internal/logger"
	"github.com/kailas-cloud/furnidex/internal/metrics"
	"github.com/kailas-cloud/furnidex/internal/repository/dataset"
	"github.com/kailas-cloud/furnidex/internal/repository/embcache"
	chiTransport "github.com/kailas-cloud/furnidex/internal/transport/chi"
	openaiEmb "github.com/kailas-cloud/furnidex/internal/transport/openai"
	"github.com/kailas-cloud/furnidex/internal/usecase/analytics"
	embeddinguc "github.com/kailas-cloud/furnidex/internal/usecase/embedding"
	healthuc "github.com/kailas-cloud/furnidex/internal/usecase/health"
	"github.com/kailas-cloud/furnidex/internal/usecase/ingest"
	recommenduc "github.com/kailas-cloud/furnidex/internal/usecase/recommend"
	"github.com/kailas-cloud/furnidex/internal/version"
)

const embeddingProvider = "openai"

func main() {
	// .env is optional; real env vars win over file entries
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting furnidex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("dataset", cfg.Catalog.DatasetPath),
	)

	ctx := context.Background()

	// Optional embedding cache store
	var store db.Store
	if cfg.Cache.Enabled {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Cache store not ready", zap.Error(err))
		}
		logger.Info("Connected to embedding cache", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterCatalogMetrics()
	metrics.RegisterRecommendMetrics()

	docEmbedder := buildEmbedder(cfg.Embedding, cfg.Embedding.DocumentInstruction, cfg.Cache, store, logger)
	queryEmbedder := buildEmbedder(cfg.Embedding, cfg.Embedding.QueryInstruction, cfg.Cache, store, logger)
	logger.Info("Embedders created",
		zap.String("provider", embeddingProvider),
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	// Load the dataset and embed it into the in-memory catalog
	loader := dataset.NewLoader(cfg.Catalog.DatasetPath, cfg.Catalog.MaxRows, logger)
	products, err := loader.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load dataset", zap.Error(err))
	}

	ingestSvc := ingest.New(docEmbedder, ingest.Options{
		Workers:   cfg.Catalog.IngestWorkers,
		BatchSize: cfg.Catalog.IngestBatchSize,
	}, logger)

	cat, err := ingestSvc.Build(ctx, products)
	if err != nil {
		logger.Fatal("Failed to build catalog", zap.Error(err))
	}

	// Use case services
	recommendSvc, err := recommenduc.New(cat, queryEmbedder, recommendOptions(cfg.Recommend), logger)
	if err != nil {
		logger.Fatal("Failed to create recommend service", zap.Error(err))
	}
	analyticsSvc := analytics.New(cat)

	var cachePinger healthuc.CachePinger
	if store != nil {
		cachePinger = store
	}
	healthSvc := healthuc.New(cat, newEmbeddingHealthChecker(queryEmbedder), cachePinger)

	server := chiTransport.NewServer(cat, recommendSvc, analyticsSvc, healthSvc, logger).
		WithPageSizes(cfg.Catalog.DefaultPageSize, cfg.Catalog.MaxPageSize)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

func recommendOptions(rc config.RecommendConfig) recommenduc.Options {
	opts := recommenduc.DefaultOptions()
	if rc.TextWeight+rc.CategoryWeight+rc.MaterialWeight+rc.ColorWeight > 0 {
		opts.Weights = scoring.Weights{
			Text:     rc.TextWeight,
			Category: rc.CategoryWeight,
			Material: rc.MaterialWeight,
			Color:    rc.ColorWeight,
		}
	}
	if rc.MinScore > 0 {
		opts.MinScore = rc.MinScore
	}
	if rc.RelaxFactor > 0 {
		opts.RelaxFactor = rc.RelaxFactor
	}
	if rc.FallbackFactor > 0 {
		opts.FallbackFactor = rc.FallbackFactor
	}
	if rc.ScanFactor > 0 {
		opts.ScanFactor = rc.ScanFactor
	}
	return opts
}

// embeddingHealthChecker wraps domain.Embedder to implement health.EmbeddingChecker.
type embeddingHealthChecker struct {
	embedder domain.Embedder
}

func newEmbeddingHealthChecker(embedder domain.Embedder) *embeddingHealthChecker {
	return &embeddingHealthChecker{embedder: embedder}
}

func (h *embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
}

// buildEmbedder assembles the decorator chain: OpenAI -> Cached -> Instrumented -> Instruction
func buildEmbedder(
	embCfg config.EmbeddingConfig,
	instruction string,
	cacheCfg config.CacheConfig,
	store db.Store,
	logger *zap.Logger,
) domain.Embedder {
	// Base provider (with transport metrics built-in)
	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     embCfg.APIKey,
		BaseURL:    embCfg.BaseURL,
		Model:      embCfg.Model,
		Dimensions: embCfg.Dimensions,
		Provider:   embeddingProvider,
		Logger:     logger,
	})

	// Cached
	var embedder domain.Embedder = base
	if store != nil {
		embedder = embcache.New(base, store, embcache.Options{
			KeyPrefix:   cacheCfg.KeyPrefix,
			Model:       embCfg.Model,
			Instruction: instruction,
			TTL:         time.Duration(cacheCfg.TTLSec) * time.Second,
		}, metrics.EmbeddingCacheTotal, logger)
	}

	// Instrumented (logging + metrics)
	embedder = embeddinguc.NewInstrumentedEmbedder(embedder, embeddingProvider, embCfg.Model, logger)

	// Instruction prefix (outermost — cache key already includes instruction)
	if instruction != "" {
		return domain.NewInstructionEmbedder(embedder, instruction)
	}

	return embedder
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
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

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
