package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/indexer/source"
	"github.com/Adithya-Monish-Kumar-K/docsearch/internal/indexer/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/docsearch/pkg/postgres"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run performs the build and returns the process exit code, so deferred
// cleanup runs on every path.
func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("builder", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "configs/development.yaml", "path to config file")
	envFile := fs.String("env", ".env", "optional dotenv file with DS_* overrides")
	sourceName := fs.String("source", "", "override builder.source (dir, kafka, postgres)")
	inputDir := fs.String("input", "", "override builder.inputDir")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if err := config.LoadEnvFile(*envFile); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 1
	}
	if *sourceName != "" {
		cfg.Builder.Source = *sourceName
	}
	if *inputDir != "" {
		cfg.Builder.InputDir = *inputDir
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "invalid config: %v\n", err)
		return 1
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting index build",
		"source", cfg.Builder.Source,
		"workers", cfg.Builder.Workers,
		"data_dir", cfg.Index.DataDir,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(prometheus.DefaultRegisterer)
		shutdown := metrics.StartServer(cfg.Metrics.Port)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			shutdown(shutdownCtx)
		}()
	}

	src, closeSrc, err := openSource(ctx, cfg)
	if err != nil {
		slog.Error("failed to open document source", "error", err)
		return 1
	}
	defer closeSrc()

	tok := tokenizer.New(tokenizer.WithStemming(cfg.Builder.Stem))
	b := indexer.NewBuilder(cfg.Builder, cfg.Index, tok, m)

	stats, err := b.Build(ctx, src)
	if err != nil {
		slog.Error("build failed", "error", err)
		return 1
	}
	if err := b.Save(); err != nil {
		slog.Error("failed to save index", "error", err)
		return 1
	}
	slog.Info("index build complete",
		"indexed", stats.Indexed,
		"skipped", stats.Skipped,
		"duration", stats.Duration,
	)
	return 0
}

func openSource(ctx context.Context, cfg *config.Config) (source.Source, func(), error) {
	noop := func() {}
	switch cfg.Builder.Source {
	case "kafka":
		return source.KafkaSource{
			Config:      cfg.Kafka,
			Topic:       cfg.Kafka.Topics.Documents,
			IdleTimeout: cfg.Builder.IdleTimeout,
		}, noop, nil
	case "postgres":
		client, err := postgres.New(ctx, cfg.Postgres)
		if err != nil {
			return nil, noop, err
		}
		return source.PostgresSource{DB: client.DB}, func() { client.Close() }, nil
	default:
		return source.DirSource{
			Root:      cfg.Builder.InputDir,
			URLPrefix: cfg.Builder.URLPrefix,
		}, noop, nil
	}
}
