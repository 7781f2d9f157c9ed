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

	"github.com/google/uuid"

	"github.com/josh-kwaku/payments-engine/internal/config"
	"github.com/josh-kwaku/payments-engine/internal/ledger"
	"github.com/josh-kwaku/payments-engine/internal/logging"
	"github.com/josh-kwaku/payments-engine/internal/report"
	"github.com/josh-kwaku/payments-engine/internal/repository"
	"github.com/josh-kwaku/payments-engine/internal/service"
	"github.com/josh-kwaku/payments-engine/internal/source"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("engine", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", "", "report format: csv or json (overrides REPORT_FORMAT)")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: engine [-format csv|json] [transactions.csv]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	if *format != "" {
		cfg.ReportFormat = *format
	}
	reportFormat, err := report.ParseFormat(cfg.ReportFormat)
	if err != nil {
		slog.Error("invalid report format", "error", err)
		return 2
	}

	logger := logging.Init("payments-engine", cfg.LogLevel, cfg.AppEnv, stderr).
		With("run_id", uuid.NewString())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithLogger(ctx, logger)

	src, closeSrc, err := openSource(ctx, cfg, fs.Arg(0), stdin)
	if err != nil {
		logger.Error("cannot read input", "error", err)
		return 1
	}
	defer closeSrc()

	engine := ledger.New(ledger.WithDisputable(cfg.Disputable()...))
	if _, err := service.NewProcessor(src, engine).Run(ctx); err != nil {
		logger.Error("processing aborted", "error", err)
		return 1
	}

	if err := report.Write(stdout, reportFormat, report.Lines(engine.Accounts(), cfg.SortReport)); err != nil {
		logger.Error("failed to write report", "error", err)
		return 1
	}
	return 0
}

func openSource(ctx context.Context, cfg *config.Config, path string, stdin io.Reader) (source.Source, func(), error) {
	switch cfg.InputSource {
	case config.InputPostgres:
		db, err := repository.NewPostgresDB(ctx, cfg.DatabaseURL, cfg.Pool())
		if err != nil {
			return nil, nil, fmt.Errorf("openSource: %w", err)
		}
		src := source.NewPostgres(repository.NewEventRepository(db), cfg.EventPageSize)
		return src, closer(ctx, db), nil

	default:
		if path == "" || path == "-" {
			src, err := source.NewCSV(stdin)
			if err != nil {
				return nil, nil, fmt.Errorf("openSource: stdin: %w", err)
			}
			return src, func() {}, nil
		}

		f, err := os.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("openSource: %w", err)
		}
		src, err := source.NewCSV(f)
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("openSource: %s: %w", path, err)
		}
		return src, closer(ctx, f), nil
	}
}

func closer(ctx context.Context, c io.Closer) func() {
	return func() {
		if err := c.Close(); err != nil {
			logging.FromContext(ctx).Warn("failed to close input", "error", err)
		}
	}
}
