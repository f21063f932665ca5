package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/kailas-cloud/spotlight/internal/config"
	dbRedis "github.com/kailas-cloud/spotlight/internal/db/redis"
	"github.com/kailas-cloud/spotlight/internal/domain"
	"github.com/kailas-cloud/spotlight/internal/domain/preference"
	logpkg "github.com/kailas-cloud/spotlight/internal/logger"
	"github.com/kailas-cloud/spotlight/internal/metrics"
	"github.com/kailas-cloud/spotlight/internal/repository/profile"
	"github.com/kailas-cloud/spotlight/internal/transport/catalog"
	chiTransport "github.com/kailas-cloud/spotlight/internal/transport/chi"
	"github.com/kailas-cloud/spotlight/internal/transport/googleauth"
	"github.com/kailas-cloud/spotlight/internal/transport/model"
	"github.com/kailas-cloud/spotlight/internal/usecase/enrich"
	healthuc "github.com/kailas-cloud/spotlight/internal/usecase/health"
	"github.com/kailas-cloud/spotlight/internal/usecase/recommend"
	"github.com/kailas-cloud/spotlight/internal/usecase/stress"
	"github.com/kailas-cloud/spotlight/internal/version"
)

func main() {
	// Load configuration based on ENV
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

	logger.Info("Starting spotlight API server",
		zap.String("version", version.Version),
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("identity_mode", cfg.Identity.Mode),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
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

	// Register pipeline metrics explicitly (no init())
	metrics.RegisterPipelineMetrics()

	// One connection pool for every outbound call; timeouts are per client.
	transport := newTransport()

	tokens := buildTokenProvider(cfg.Identity, transport)

	clients := make(map[domain.Domain]*model.Client, len(cfg.Models))
	for name, mc := range cfg.Models {
		d := domain.Domain(name)
		clients[d] = model.NewClient(&model.Config{
			Domain:    d,
			BaseURL:   mc.BaseURL,
			APIKey:    mc.APIKey,
			Timeout:   mc.Timeout(),
			Tokens:    tokens,
			Transport: transport,
			Logger:    logger,
		})
	}

	pipelines, err := buildPipelines(cfg.Models, clients)
	if err != nil {
		logger.Fatal("Invalid model configuration", zap.Error(err))
	}
	logger.Info("Model clients created", zap.Int("recommendation_pipelines", len(pipelines)))

	enricher := buildEnricher(cfg, transport, logger)

	profiles := profile.New(store, cfg.Storage.KeyPrefix)
	builder := preference.New()

	recommendSvc := recommend.New(pipelines, builder, enricher, profiles)

	var stressSvc chiTransport.StressPredictor = unavailableStress{}
	if c, ok := clients[domain.Stress]; ok {
		stressSvc = stress.New(c, builder, profiles)
	}

	heartbeats := make(map[string]healthuc.Heartbeater, len(clients))
	for d, c := range clients {
		heartbeats[d.ServiceName()] = c
	}
	healthSvc := healthuc.New(store, heartbeats)

	server := chiTransport.NewServer(recommendSvc, stressSvc, healthSvc, logger)
	router := chiTransport.NewRouter(server, cfg.Auth.APIKeys, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 20
	t.IdleConnTimeout = 90 * time.Second
	return t
}

func buildTokenProvider(cfg config.IdentityConfig, transport http.RoundTripper) model.TokenProvider {
	if cfg.Mode == config.IdentityStatic {
		return googleauth.NewStaticProvider(cfg.StaticToken)
	}
	return googleauth.NewIDTokenProvider(cfg.CredentialsFile, &http.Client{Transport: transport})
}

// buildPipelines assembles one pipeline per configured recommendation domain.
func buildPipelines(
	models map[string]config.ModelConfig, clients map[domain.Domain]*model.Client,
) (map[domain.Domain]recommend.Pipeline, error) {
	pipelines := make(map[domain.Domain]recommend.Pipeline)
	for _, d := range domain.RecommendationDomains() {
		client, ok := clients[d]
		if !ok {
			continue
		}
		mc := models[string(d)]
		p := recommend.Pipeline{Client: client, TargetCount: mc.TargetCount}
		if mc.FillerQuery != "" {
			var fields map[string]any
			if err := json.Unmarshal([]byte(mc.FillerQuery), &fields); err != nil {
				return nil, fmt.Errorf("models.%s.filler_query: %w", d, err)
			}
			p.Filler = recommend.NewFiller(client, domain.NewPreferenceQuery(fields))
		}
		pipelines[d] = p
	}
	return pipelines, nil
}

// buildEnricher wires catalog clients into per-domain strategies: Catalog -> Strategy -> Instrumented.
func buildEnricher(cfg config.Config, transport http.RoundTripper, logger *zap.Logger) *enrich.Service {
	books := catalog.NewGoogleBooks(&catalog.Config{
		BaseURL:   cfg.Catalogs.GoogleBooks.BaseURL,
		APIKey:    cfg.Catalogs.GoogleBooks.APIKey,
		Timeout:   cfg.Catalogs.GoogleBooks.Timeout(),
		Transport: transport,
	})
	omdb := catalog.NewOMDb(&catalog.Config{
		BaseURL:   cfg.Catalogs.OMDb.BaseURL,
		APIKey:    cfg.Catalogs.OMDb.APIKey,
		Timeout:   cfg.Catalogs.OMDb.Timeout(),
		Transport: transport,
	})

	strategies := map[domain.Domain]enrich.Strategy{
		domain.Books:  enrich.NewInstrumentedStrategy(enrich.NewBookStrategy(books), books.Name(), logger),
		domain.Movies: enrich.NewInstrumentedStrategy(enrich.NewMovieStrategy(omdb), omdb.Name(), logger),
		domain.Travel: enrich.NewTravelStrategy(enrich.TravelImages, nil),
	}
	return enrich.New(strategies,
		enrich.WithMaxConcurrency(cfg.Enrichment.MaxConcurrency),
		enrich.WithLogger(logger),
	)
}

// unavailableStress answers stress requests when no stress model is configured.
type unavailableStress struct{}

func (unavailableStress) Predict(context.Context, string) (any, error) {
	return nil, fmt.Errorf("stress model not configured: %w", domain.ErrUnknownDomain)
}
