package sfft

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/cwbudde/algo-sfft/dsp/sfft"

// Stats describes the work done by one recovery run.
type Stats struct {
	// Samples is the number of signal evaluations.
	Samples int64
	// ZeroTests is the number of zero tests performed.
	ZeroTests int64
	// Splits is the number of tree splits over all passes.
	Splits int64
	// FailedPasses counts nested passes that exceeded their budget.
	FailedPasses int64
}

type telemetry struct {
	tracer       trace.Tracer
	recoverTotal metric.Int64Counter
	duration     metric.Float64Histogram
	samples      metric.Int64Counter
	zeroTests    metric.Int64Counter
}

func newTelemetry(tp trace.TracerProvider, mp metric.MeterProvider) (*telemetry, error) {
	meter := mp.Meter(instrumentationName)
	t := &telemetry{tracer: tp.Tracer(instrumentationName)}

	var err error
	t.recoverTotal, err = meter.Int64Counter(
		"sfft_recover_total",
		metric.WithDescription("Total number of sparse recovery runs"),
	)
	if err != nil {
		return nil, err
	}
	t.duration, err = meter.Float64Histogram(
		"sfft_recover_duration_seconds",
		metric.WithDescription("Duration of sparse recovery runs"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}
	t.samples, err = meter.Int64Counter(
		"sfft_signal_samples_total",
		metric.WithDescription("Signal evaluations performed by recovery runs"),
	)
	if err != nil {
		return nil, err
	}
	t.zeroTests, err = meter.Int64Counter(
		"sfft_zero_tests_total",
		metric.WithDescription("Zero tests performed by recovery runs"),
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (t *telemetry) start(ctx context.Context, dom Domain, sparsity, rank int) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "sfft.Recover",
		trace.WithAttributes(
			attribute.Int("sfft.dims", dom.Dims()),
			attribute.Int("sfft.width", dom.Width()),
			attribute.Int("sfft.sparsity", sparsity),
			attribute.Int("sfft.rank", rank),
		),
	)
}

func (t *telemetry) finish(ctx context.Context, span trace.Span, rank int, st Stats, found int, elapsed time.Duration, err error) {
	span.SetAttributes(
		attribute.Int("sfft.coefficients", found),
		attribute.Int64("sfft.samples", st.Samples),
		attribute.Int64("sfft.zero_tests", st.ZeroTests),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()

	attrs := metric.WithAttributes(
		attribute.Int("rank", rank),
		attribute.Bool("success", err == nil),
	)
	t.recoverTotal.Add(ctx, 1, attrs)
	t.duration.Record(ctx, elapsed.Seconds(), attrs)
	t.samples.Add(ctx, st.Samples)
	t.zeroTests.Add(ctx, st.ZeroTests)
}
