package main

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/germanamz/multiquery/pkg/config"
	"github.com/germanamz/multiquery/pkg/credentials"
	"github.com/germanamz/multiquery/pkg/metrics"
	"github.com/germanamz/multiquery/pkg/query"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// environment is everything a command needs once the flags are parsed.
type environment struct {
	client      *query.Client
	log         *slog.Logger
	collector   *metrics.MetricsCollector
	metricsFile string
}

// setup loads the .env file and the optional config, then builds the logger
// and the query client. Keys in the real environment win over .env entries.
func (o *options) setup(stderr io.Writer) (*environment, error) {
	if err := loadDotEnv(o.envFile); err != nil {
		return nil, err
	}

	var cfg config.Config
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}

	level := slog.LevelError
	if o.verbose {
		level = slog.LevelDebug
	}

	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})).
		With("request_id", uuid.NewString())

	env := &environment{log: log, metricsFile: o.metricsFile}

	opts := []query.Option{
		query.WithLogger(log),
		query.WithHTTPClient(&http.Client{Timeout: timeout}),
	}

	if o.metricsFile != "" {
		env.collector = metrics.NewCollector()
		opts = append(opts, query.WithMetrics(env.collector))
	}

	creds := credentials.New(cfg.EnvVars(), nil)
	env.client = query.NewClient(creds, cfg.QueryProviders(), opts...)

	return env, nil
}

// flushMetrics writes the collected metrics if a textfile was requested.
func (e *environment) flushMetrics() error {
	if e.collector == nil {
		return nil
	}

	return e.collector.WriteTextfile(e.metricsFile)
}

// loadDotEnv loads environment variables from path. Missing files are ignored.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}

	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return err
}
