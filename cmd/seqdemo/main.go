// Command seqdemo runs sample lazy-sequence pipelines with the lazyseq
// logging, configuration and telemetry stack wired in.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/lazyseq/config"
	"github.com/kbukum/lazyseq/logger"
	"github.com/kbukum/lazyseq/observability"
	"github.com/kbukum/lazyseq/version"
)

const serviceName = "seqdemo"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "seqdemo:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet(serviceName, flag.ContinueOnError)
	configPath := fs.String("config", "", "path to config.yml")
	mode := fs.String("mode", "", "pipelines to run: sync, async or all")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintln(out, serviceName, version.Get().String())
		return nil
	}

	var cfg Config
	opts := []config.LoaderOption{}
	if *configPath != "" {
		opts = append(opts, config.WithConfigFile(*configPath))
	}
	if err := config.LoadConfig(serviceName, &cfg, opts...); err != nil {
		return err
	}
	if *mode != "" {
		cfg.Demo.Mode = *mode
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	logger.Init(cfg.Logging)
	log := logger.Get(serviceName)
	log.Info("starting", version.Get().Fields())

	shutdown, err := startTelemetry(ctx, &cfg)
	if err != nil {
		return err
	}
	defer shutdown()

	metrics, err := observability.NewMetrics(observability.Meter(serviceName))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Demo.Timeout)
	defer cancel()

	if cfg.Demo.Mode == "sync" || cfg.Demo.Mode == "all" {
		report, err := runSync(cfg.Demo, metrics)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "evens:      %s\n", report.Evens)
		fmt.Fprintf(out, "chunk sums: %v (total %d)\n", report.ChunkSums, report.Total)
		fmt.Fprintf(out, "replayed:   %t\n", report.Replayed)
		fmt.Fprintf(out, "single-use: second traversal rejected=%t\n", report.OnceFailed)
	}
	if cfg.Demo.Mode == "async" || cfg.Demo.Mode == "all" {
		report, err := runAsync(ctx, cfg.Demo, metrics)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "squares:    %s\n", report.Squares)
		fmt.Fprintf(out, "max square: %d\n", report.Max)
	}

	log.Info("done", logger.Fields(logger.FieldStatus, "ok"))
	return nil
}

// startTelemetry installs OTLP trace and metric exporters when enabled.
// The returned function flushes and shuts them down.
func startTelemetry(ctx context.Context, cfg *Config) (func(), error) {
	if !cfg.Telemetry.Enabled {
		return func() {}, nil
	}
	tp, err := observability.InitTracer(ctx, cfg.Telemetry.TracerConfig(cfg.Name, cfg.Version, cfg.Environment))
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	mp, err := observability.InitMeter(ctx, cfg.Telemetry.MeterConfig(cfg.Name, cfg.Version, cfg.Environment))
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log := logger.Get("observability")
		if err := tp.Shutdown(ctx); err != nil {
			log.Warn("tracer shutdown failed", logger.Fields(logger.FieldError, err.Error()))
		}
		if err := mp.Shutdown(ctx); err != nil {
			log.Warn("meter shutdown failed", logger.Fields(logger.FieldError, err.Error()))
		}
	}, nil
}
