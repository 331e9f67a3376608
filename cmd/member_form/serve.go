package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/jonathan/member-form/internal/config"
	"github.com/jonathan/member-form/internal/form"
	"github.com/jonathan/member-form/internal/logger"
	"github.com/jonathan/member-form/internal/metrics"
	"github.com/jonathan/member-form/internal/options"
	"github.com/jonathan/member-form/internal/server"
	"github.com/jonathan/member-form/internal/server/ratelimit"
	"github.com/jonathan/member-form/internal/session"
	"github.com/jonathan/member-form/internal/store"
	"github.com/jonathan/member-form/internal/validation"
)

var (
	servePort   int
	serveConfig string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the form API server",
	Long:  `Start an HTTP server that drives one registration form per client session.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config and PORT)")
	serveCmd.Flags().StringVarP(&serveConfig, "config", "c", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func loadCatalog(path string) (*options.Catalog, error) {
	if path == "" {
		return options.Default(), nil
	}
	return options.Load(path)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(serveConfig)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	log := logger.New(cfg.LogLevel, logger.ParseFormat(cfg.LogFormat))
	logger.Set(log)
	defer func() { _ = logger.Sync() }()

	tokenCfg, err := config.NewSessionTokenConfig()
	if err != nil {
		return fmt.Errorf("failed to create session token config: %w", err)
	}

	reveal, err := form.ParseReveal(cfg.Reveal)
	if err != nil {
		return err
	}

	catalog, err := loadCatalog(cfg.JobPositionsFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opened, err := store.Open(ctx, store.Options{
		Backend:     cfg.Store,
		RedisURL:    cfg.RedisURL,
		DatabaseURL: cfg.DatabaseURL,
		RecordTTL:   cfg.RecordTTL.Std(),
	})
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Store, err)
	}
	defer func() { _ = opened.Close() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector(), prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	registry := session.NewRegistry(session.Config{
		Gateway:   opened.Gateway,
		Validator: validation.New(),
		Logger:    logger.For("form"),
		Metrics:   metrics.New(reg),
		Reveal:    reveal,
		TTL:       cfg.SessionTTL.Std(),
	})
	defer registry.Close()

	srv, err := server.New(server.Config{
		Port:      cfg.Port,
		Registry:  registry,
		Catalog:   catalog,
		Tokens:    tokenCfg,
		RateLimit: ratelimit.LoadConfig(),
		Gatherer:  reg,
		Logger:    logger.For("server"),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.For("main").Infow("Configuration loaded",
		"store", cfg.Store,
		"reveal", reveal,
		"session_ttl", cfg.SessionTTL.Std(),
		"job_positions", len(catalog.All()),
	)

	return srv.Start(ctx)
}
