package sfft

import (
	"io"
	"log/slog"
	"math"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultSeed seeds the index source when no seed is given.
	DefaultSeed int64 = 61

	// DefaultTolerance decides when a residual counts as zero. It is
	// measured in coefficient units, so it holds for every domain size.
	// Raising it trades missed frequencies for robustness against noise.
	DefaultTolerance = 1e-6

	// DefaultSampleFactor scales the zero test sample count
	// max(round(factor*sparsity*log2(N)), 2).
	DefaultSampleFactor = 2.0
)

// Config holds recovery settings.
type Config struct {
	Seed           int64
	Preemptive     bool
	Tolerance      float64
	SampleFactor   float64
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the defaults: seed 61, preemptive zero tests on,
// tolerance 1e-6, sample factor 2, a discarding logger and the global
// OpenTelemetry providers.
func DefaultConfig() Config {
	return Config{
		Seed:           DefaultSeed,
		Preemptive:     true,
		Tolerance:      DefaultTolerance,
		SampleFactor:   DefaultSampleFactor,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		TracerProvider: otel.GetTracerProvider(),
		MeterProvider:  otel.GetMeterProvider(),
	}
}

// WithSeed sets the seed of the run's index source.
func WithSeed(seed int64) Option {
	return func(cfg *Config) {
		cfg.Seed = seed
	}
}

// WithPreemptiveTests enables or disables the cheap zero test that
// recursive recovery runs before descending into a node.
func WithPreemptiveTests(enabled bool) Option {
	return func(cfg *Config) {
		cfg.Preemptive = enabled
	}
}

// WithTolerance sets the zero tolerance in coefficient units: a cone is
// empty when every sampled residual, scaled back to a coefficient, stays
// within tol. Invalid values are reported by New.
func WithTolerance(tol float64) Option {
	return func(cfg *Config) {
		cfg.Tolerance = tol
	}
}

// WithSampleFactor sets the zero test sample factor. Invalid values are
// reported by New.
func WithSampleFactor(factor float64) Option {
	return func(cfg *Config) {
		cfg.SampleFactor = factor
	}
}

// WithLogger sets the logger used for debug traces of the recovery.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *Config) {
		if logger != nil {
			cfg.Logger = logger
		}
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(cfg *Config) {
		if tp != nil {
			cfg.TracerProvider = tp
		}
	}
}

// WithMeterProvider sets the OpenTelemetry meter provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(cfg *Config) {
		if mp != nil {
			cfg.MeterProvider = mp
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func (cfg Config) validate() error {
	if !(cfg.Tolerance > 0) || math.IsInf(cfg.Tolerance, 0) {
		return ErrInvalidTolerance
	}
	if !(cfg.SampleFactor > 0) || math.IsInf(cfg.SampleFactor, 0) {
		return ErrInvalidSampleFactor
	}
	return nil
}
