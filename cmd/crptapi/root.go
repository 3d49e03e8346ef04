package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/ajiwo/crptapi"
	"github.com/ajiwo/crptapi/backends"
	_ "github.com/ajiwo/crptapi/backends/memory"
	"github.com/ajiwo/crptapi/backends/postgres"
	"github.com/ajiwo/crptapi/backends/redis"
	"github.com/ajiwo/crptapi/internal/config"
	"github.com/ajiwo/crptapi/internal/logger"
	"github.com/ajiwo/crptapi/receipts"
)

var configPath string

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "crptapi",
		Short:        "Submit documents to the registry under a request quota",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ./crptapi.yaml or ./configs/crptapi.yaml)")

	cmd.AddCommand(
		newSubmitCommand(),
		newReceiptCommand(),
	)
	return cmd
}

// environment holds what every subcommand needs
type environment struct {
	cfg     *config.Config
	logger  *slog.Logger
	journal *receipts.Journal
}

func (e *environment) Close() {
	if e.journal != nil {
		if err := e.journal.Close(); err != nil {
			e.logger.Warn("failed to close receipt journal", "error", err)
		}
	}
}

func setup(cmd *cobra.Command) (*environment, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(logger.Options{
		Level:  cfg.Logger.Level,
		Format: cfg.Logger.Format,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	journal, err := openJournal(cfg.Receipts)
	if err != nil {
		return nil, err
	}

	return &environment{cfg: cfg, logger: log, journal: journal}, nil
}

// openJournal returns nil when no receipt backend is configured
func openJournal(cfg config.ReceiptsConfig) (*receipts.Journal, error) {
	var backendConfig any
	switch cfg.Backend {
	case "":
		return nil, nil
	case "redis":
		backendConfig = redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		}
	case "postgres":
		backendConfig = postgres.Config{
			ConnString: cfg.Postgres.DSN,
			MaxConns:   cfg.Postgres.MaxConns,
			MinConns:   cfg.Postgres.MinConns,
		}
	}

	backend, err := backends.Create(cfg.Backend, backendConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s receipt backend: %w", cfg.Backend, err)
	}

	journal, err := receipts.NewJournal(backend, cfg.TTL)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	return journal, nil
}

func newClient(env *environment) (*crptapi.Client, error) {
	c := env.cfg.Client

	policy, err := crptapi.ParsePolicy(c.Policy)
	if err != nil {
		return nil, err
	}

	opts := []crptapi.Option{
		crptapi.WithURL(c.URL),
		crptapi.WithHTTPClient(&http.Client{Timeout: c.Timeout}),
		crptapi.WithLogger(env.logger),
		crptapi.WithReleasePolicy(policy),
	}
	if c.SmoothingRate > 0 {
		opts = append(opts, crptapi.WithSmoothing(rate.Limit(c.SmoothingRate), c.SmoothingBurst))
	}
	if env.journal != nil {
		opts = append(opts, crptapi.WithReceipts(env.journal))
	}

	return crptapi.New(c.TimeUnit, c.RequestLimit, c.Interval, opts...)
}
