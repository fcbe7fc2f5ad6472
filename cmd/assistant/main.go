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

	"github.com/mamatega/assistant/internal/config"
	"github.com/mamatega/assistant/internal/db"
	dbBolt "github.com/mamatega/assistant/internal/db/bolt"
	dbRedis "github.com/mamatega/assistant/internal/db/redis"
	"github.com/mamatega/assistant/internal/domain"
	logpkg "github.com/mamatega/assistant/internal/logger"
	"github.com/mamatega/assistant/internal/metrics"
	cartrepo "github.com/mamatega/assistant/internal/repository/cart"
	catalogrepo "github.com/mamatega/assistant/internal/repository/catalog"
	"github.com/mamatega/assistant/internal/repository/embcache"
	sessionrepo "github.com/mamatega/assistant/internal/repository/session"
	chiTransport "github.com/mamatega/assistant/internal/transport/chi"
	openaiTransport "github.com/mamatega/assistant/internal/transport/openai"
	"github.com/mamatega/assistant/internal/transport/shopify"
	cartuc "github.com/mamatega/assistant/internal/usecase/cart"
	chatuc "github.com/mamatega/assistant/internal/usecase/chat"
	healthuc "github.com/mamatega/assistant/internal/usecase/health"
	searchuc "github.com/mamatega/assistant/internal/usecase/search"
	"github.com/mamatega/assistant/internal/version"
)

func main() {
	// Load .env if present; real env vars win.
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

	logger.Info("Starting assistant API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	// Create the key-value store based on driver
	var store db.Store
	switch cfg.Database.Driver {
	case "bolt":
		store, err = dbBolt.NewStore(cfg.Database.Path)
	case "redis":
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
	default:
		logger.Fatal("Unknown database driver", zap.String("driver", cfg.Database.Driver))
	}
	if err != nil {
		logger.Fatal("Failed to create store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Store not ready", zap.Error(err))
	}
	logger.Info("Connected to store")

	// Register domain metrics explicitly (no init())
	metrics.RegisterCoreMetrics()

	// Load the catalog once at startup
	catalog, err := catalogrepo.Load(ctx, cfg.Catalog.Source, cfg.Catalog.Dimensions, logger)
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}

	// Embedder chain: OpenAI -> cache -> instruction
	var embedder domain.Embedder = openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Logger:     logger,
	})
	embedder = embcache.New(embedder, store, cfg.Store.KeyPrefix, metrics.EmbeddingCacheTotal, logger)
	if cfg.Embedding.Instruction != "" {
		embedder = domain.NewInstructionEmbedder(embedder, cfg.Embedding.Instruction)
	}

	completer := openaiTransport.NewCompleter(&openaiTransport.CompleterConfig{
		APIKey:  cfg.Embedding.APIKey,
		BaseURL: cfg.Embedding.BaseURL,
		Model:   cfg.Chat.Model,
		Logger:  logger,
	})

	storefront := shopify.NewClient(shopify.Config{
		Domain:   cfg.Shopify.Domain,
		Token:    cfg.Shopify.StorefrontToken,
		CacheTTL: time.Duration(cfg.Shopify.CacheTTLSec) * time.Second,
		Logger:   logger,
	})

	// Repositories
	cartRepo := cartrepo.New(store, cfg.Store.KeyPrefix)
	sessionRepo := sessionrepo.New(store, cfg.Store.KeyPrefix)

	// Behavior rules are optional; a broken table costs the rules, not boot.
	behaviorRules, err := chatuc.LoadBehaviorRules(cfg.Chat.BehaviorRulesPath)
	if err != nil {
		logger.Warn("Failed to load behavior rules", zap.Error(err))
		behaviorRules = nil
	} else if len(behaviorRules) > 0 {
		logger.Info("Loaded behavior rules", zap.Int("count", len(behaviorRules)))
	}

	// Use case services
	searchSvc := searchuc.New(catalog, embedder)
	chatSvc := chatuc.New(searchSvc, storefront, completer, sessionRepo, catalog).
		WithCompletion(cfg.Chat.Temperature, cfg.Chat.MaxTokens).
		WithWhatsAppNumber(cfg.Chat.WhatsAppNumber).
		WithBehaviorRules(behaviorRules)
	cartSvc := cartuc.New(cartRepo, time.Duration(cfg.Cart.TTLHours)*time.Hour)
	healthSvc := healthuc.New(store, embeddingHealthChecker{embedder}, catalog)

	server := chiTransport.NewServer(chatSvc, cartSvc, healthSvc, storefront, chiTransport.ModelInfo{
		ChatModel:      cfg.Chat.Model,
		EmbeddingModel: cfg.Embedding.Model,
	}, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.CORSMiddleware(cfg.HTTP.AllowedOrigins))
	r.Use(chiTransport.RateLimitMiddleware(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst))
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

// embeddingHealthChecker exposes the embedder's health check when the chain
// supports one.
type embeddingHealthChecker struct {
	embedder domain.Embedder
}

func (h embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
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
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
