package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/lazyseq/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Get("observability").Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the instruments recorded for sequence traversals.
type Metrics struct {
	traversalTotal    metric.Int64Counter
	traversalValues   metric.Int64Counter
	traversalDuration metric.Float64Histogram
	traversalActive   metric.Int64UpDownCounter
	errorTotal        metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	traversalTotal, err := meter.Int64Counter("sequence.traversal.total",
		metric.WithDescription("Total number of finished sequence traversals"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sequence.traversal.total counter: %w", err)
	}

	traversalValues, err := meter.Int64Counter("sequence.traversal.values",
		metric.WithDescription("Total number of values produced by traversals"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sequence.traversal.values counter: %w", err)
	}

	traversalDuration, err := meter.Float64Histogram("sequence.traversal.duration",
		metric.WithDescription("Duration of traversals in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sequence.traversal.duration histogram: %w", err)
	}

	traversalActive, err := meter.Int64UpDownCounter("sequence.traversal.active",
		metric.WithDescription("Number of traversals in progress"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sequence.traversal.active gauge: %w", err)
	}

	errorTotal, err := meter.Int64Counter("sequence.error.total",
		metric.WithDescription("Total traversal errors by type"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sequence.error.total counter: %w", err)
	}

	return &Metrics{
		traversalTotal:    traversalTotal,
		traversalValues:   traversalValues,
		traversalDuration: traversalDuration,
		traversalActive:   traversalActive,
		errorTotal:        errorTotal,
	}, nil
}

// RecordTraversalStart increments the active traversal count.
func (m *Metrics) RecordTraversalStart(ctx context.Context, name string) {
	m.traversalActive.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrSequenceName, name)))
}

// RecordTraversalEnd decrements active traversals and records the finished one.
func (m *Metrics) RecordTraversalEnd(ctx context.Context, name, kind, status string, values int64, duration time.Duration) {
	named := attribute.String(AttrSequenceName, name)
	m.traversalActive.Add(ctx, -1, metric.WithAttributes(named))
	m.traversalTotal.Add(ctx, 1, metric.WithAttributes(
		named,
		attribute.String(AttrSequenceKind, kind),
		attribute.String(AttrStatus, status),
	))
	m.traversalValues.Add(ctx, values, metric.WithAttributes(named))
	m.traversalDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(named))
}

// RecordError records a traversal error by type.
func (m *Metrics) RecordError(ctx context.Context, errType, name string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", errType),
		attribute.String(AttrSequenceName, name),
	))
}
