package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/lingocraft/lingocraft/internal/bootstrap"
	"github.com/lingocraft/lingocraft/internal/config"
	"github.com/lingocraft/lingocraft/internal/database"
	"github.com/lingocraft/lingocraft/internal/element"
	"github.com/lingocraft/lingocraft/internal/inference/openai"
	"github.com/lingocraft/lingocraft/internal/metrics"
	"github.com/lingocraft/lingocraft/internal/server"
	"github.com/lingocraft/lingocraft/internal/translation"
	"github.com/lingocraft/lingocraft/internal/tts"
	"github.com/lingocraft/lingocraft/internal/tts/google"
)

var (
	configFile string
	debugMode  bool
	migrateUp  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "lingocraft-server",
		Short:         "Element combination HTTP and WebSocket server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(debugMode)
			return run(cmd.Context())
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug mode")
	rootCmd.Flags().BoolVar(&migrateUp, "migrate", false, "Apply schema migrations before serving")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogger(debugMode bool) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))
}

func run(ctx context.Context) error {
	app := bootstrap.New()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}
	if cfg.LLM.APIKey == "" {
		return errors.New("LLM_API_KEY environment variable is required")
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("database.Open() > %w", err)
	}
	app.AddShutdownHook(func(context.Context) error {
		return db.Close()
	})
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("db.PingContext() > %w", err)
	}
	if migrateUp {
		if err := database.Migrate(ctx, db, database.DirectionUp); err != nil {
			return fmt.Errorf("database.Migrate() > %w", err)
		}
	}

	llmClient := openai.NewClient(
		cfg.LLM.BaseURL,
		cfg.LLM.APIKey,
		cfg.LLM.Model,
		cfg.LLM.MaxRetryAttempts,
		time.Duration(cfg.LLM.TimeoutSeconds)*time.Second,
	)
	app.AddShutdownHook(func(context.Context) error {
		return llmClient.Close()
	})

	synthesizer, err := newSynthesizer(ctx, cfg.TTS)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	resolverMetrics, err := metrics.NewResolverMetrics(registry)
	if err != nil {
		return fmt.Errorf("metrics.NewResolverMetrics() > %w", err)
	}
	httpMetrics, err := metrics.NewHTTPMetrics(registry)
	if err != nil {
		return fmt.Errorf("metrics.NewHTTPMetrics() > %w", err)
	}

	resolver := element.NewResolver(
		element.NewDBCacheRepository(db),
		llmClient,
		synthesizer,
		resolverMetrics,
		element.ResolverOptions{
			DefaultLanguage:         cfg.Resolver.DefaultLanguage,
			CacheMalformedResponses: cfg.Resolver.CacheMalformedResponses,
			MemoryCacheTTL:          time.Duration(cfg.Resolver.MemoryCacheTTLSeconds) * time.Second,
		},
	)
	handler, err := server.NewHandler(resolver, element.NewDBAudioRepository(db), translation.Default(), cfg.Server.CORS.AllowedOrigins)
	if err != nil {
		return fmt.Errorf("server.NewHandler() > %w", err)
	}
	router := server.NewRouter(handler, server.RouterOptions{
		AllowedOrigins: cfg.Server.CORS.AllowedOrigins,
		HTTPMetrics:    httpMetrics,
		Gatherer:       registry,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           h2c.NewHandler(router, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	app.AddShutdownHook(srv.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		slog.Default().Info("starting server",
			"addr", srv.Addr,
			"model", llmClient.GetModel(),
			"default_language", resolver.DefaultLanguage(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

func newSynthesizer(ctx context.Context, cfg config.TTSConfig) (tts.Synthesizer, error) {
	if !cfg.Enabled || (cfg.APIKey == "" && cfg.CredentialsFile == "") {
		slog.Default().Warn("text-to-speech is disabled, combinations are stored without audio")
		return tts.Disabled{}, nil
	}
	synthesizer, err := google.NewSynthesizer(ctx, google.Config{
		APIKey:          cfg.APIKey,
		CredentialsFile: cfg.CredentialsFile,
		Endpoint:        cfg.Endpoint,
		AudioEncoding:   cfg.AudioEncoding,
		Timeout:         time.Duration(cfg.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("google.NewSynthesizer() > %w", err)
	}
	return synthesizer, nil
}
