package policy

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/typeforge/sdk/diag"
)

// otelMetrics holds the OpenTelemetry metric instruments for the policy
// engine. They are created once in NewEngine and reused for all evaluations.
type otelMetrics struct {
	// runCounter increments for each evaluation performed
	runCounter metric.Int64Counter

	// rejectCounter increments for each rejected evaluation
	rejectCounter metric.Int64Counter

	// messageHistogram records the number of error-level messages per run
	messageHistogram metric.Int64Histogram
}

// initOTelMetrics creates the metric instruments. Returns nil when no meter
// is configured.
func (e *Engine) initOTelMetrics() (*otelMetrics, error) {
	if e.meter == nil {
		return nil, nil
	}

	metrics := &otelMetrics{}
	var err error

	metrics.runCounter, err = e.meter.Int64Counter(
		"policy.runs",
		metric.WithDescription("Number of validation evaluations performed"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create run counter: %w", err)
	}

	metrics.rejectCounter, err = e.meter.Int64Counter(
		"policy.rejections",
		metric.WithDescription("Number of validation evaluations rejected by policy"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create rejection counter: %w", err)
	}

	metrics.messageHistogram, err = e.meter.Int64Histogram(
		"policy.errors",
		metric.WithDescription("Error-level messages per evaluation"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create message histogram: %w", err)
	}

	return metrics, nil
}

// startSpan opens the evaluation span before any check runs, so the span's
// duration covers the traversals themselves. Returns a nil span when no
// tracer is configured.
func (e *Engine) startSpan(ctx context.Context) (context.Context, trace.Span) {
	if e.tracer == nil {
		return ctx, nil
	}
	return e.tracer.Start(ctx, "policy.evaluate")
}

// recordOutcome finishes the evaluation span and records metrics. If neither
// tracer nor meter is configured this is a no-op; observability failures
// never affect the evaluation itself.
func (e *Engine) recordOutcome(ctx context.Context, span trace.Span, outcome *Outcome) {
	if span == nil && e.metrics == nil {
		return
	}

	errorCount := 0
	for _, report := range outcome.Reports {
		errorCount += report.Result.Count(diag.SeverityError)
	}

	if span != nil {
		span.SetAttributes(
			attribute.String("run.id", outcome.RunID),
			attribute.String("task", outcome.Task.String()),
			attribute.String("subject.id", outcome.SubjectID),
			attribute.String("subject.kind", outcome.SubjectKind.String()),
			attribute.Bool("accepted", outcome.Accepted),
			attribute.Int("checks", len(outcome.Reports)),
			attribute.Int("errors", errorCount),
			attribute.String("policy.mode", e.cfg.Mode.String()),
			attribute.String("policy.threshold", e.cfg.Threshold.String()),
		)

		if outcome.Accepted {
			span.SetStatus(codes.Ok, "accepted")
		} else {
			span.SetStatus(codes.Error, fmt.Sprintf("rejected under %s policy", e.cfg.Mode))
		}
		span.End()
	}

	if e.metrics != nil {
		opts := metric.WithAttributes(
			attribute.String("task", outcome.Task.String()),
			attribute.String("subject.kind", outcome.SubjectKind.String()),
		)
		e.metrics.runCounter.Add(ctx, 1, opts)
		if !outcome.Accepted {
			e.metrics.rejectCounter.Add(ctx, 1, opts)
		}
		e.metrics.messageHistogram.Record(ctx, int64(errorCount), opts)
	}
}
