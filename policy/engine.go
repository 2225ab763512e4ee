package policy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/typeforge/sdk/diag"
	"github.com/typeforge/sdk/model"
	"github.com/typeforge/sdk/rulegraph"
	"github.com/typeforge/sdk/visit"
)

// Check is a named validation rule: a visitor over the full node hierarchy
// with a stable identifier for reporting.
type Check interface {
	model.Visitor

	// Name returns the check's stable identifier.
	Name() string
}

// CheckFactory builds a fresh Check instance. The engine calls it once per
// check per Evaluate so every traversal gets its own visitor and cache;
// factories must never return a previously used instance.
type CheckFactory func() Check

// Report pairs one check's name with the full diagnostic tree it produced.
type Report struct {
	// Check is the check's stable identifier.
	Check string `json:"check"`

	// Result is the complete tree, including messages below the policy
	// threshold.
	Result *diag.Result `json:"result"`
}

// Outcome is the decision for one Evaluate call plus every check's tree.
// The trees are always complete: threshold filtering affects only the
// decision, never the returned content.
type Outcome struct {
	// RunID uniquely identifies this evaluation run.
	RunID string `json:"run_id"`

	// Task is the lifecycle task the evaluation ran under.
	Task rulegraph.Task `json:"task"`

	// SubjectID is the root node's identity.
	SubjectID string `json:"subject_id"`

	// SubjectKind is the root node's kind.
	SubjectKind model.Kind `json:"subject_kind"`

	// Accepted is the policy decision.
	Accepted bool `json:"accepted"`

	// Reports holds one entry per configured check, in check order.
	Reports []Report `json:"reports"`

	// Duration is the wall time the evaluation took.
	Duration time.Duration `json:"duration"`
}

// Engine runs a configured, ordered set of checks over one root node and
// reduces their diagnostic trees to an accept/reject decision.
//
// The engine itself is safe for concurrent use: every Evaluate call builds
// fresh check instances and walkers, so no traversal state is shared.
type Engine struct {
	cfg       Config
	factories []CheckFactory
	logger    *slog.Logger
	tracer    trace.Tracer
	meter     metric.Meter
	metrics   *otelMetrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer for per-evaluation spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Engine) {
		e.tracer = tracer
	}
}

// WithMeter sets an OpenTelemetry meter for evaluation metrics.
func WithMeter(meter metric.Meter) Option {
	return func(e *Engine) {
		e.meter = meter
	}
}

// NewEngine creates a policy engine with the given configuration and checks.
// The config is normalized (defaults applied) and the factory list must not
// be empty.
func NewEngine(cfg Config, checks []CheckFactory, opts ...Option) (*Engine, error) {
	normalized, err := cfg.Normalize()
	if err != nil {
		return nil, err
	}
	if len(checks) == 0 {
		return nil, fmt.Errorf("policy: at least one check is required")
	}

	e := &Engine{
		cfg:       normalized,
		factories: checks,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.metrics, err = e.initOTelMetrics(); err != nil {
		return nil, err
	}
	return e, nil
}

// Config returns the engine's normalized configuration.
func (e *Engine) Config() Config { return e.cfg }

// Evaluate runs every configured check over root, on one call stack, and
// returns the decision together with the complete tree of every check.
//
// Strict mode rejects when any check's tree contains a message at or above
// the threshold. Lax mode rejects only when a qualifying error-level message
// exists; only error content blocks, warnings and infos never do.
func (e *Engine) Evaluate(ctx context.Context, root model.Node, task rulegraph.Task) (*Outcome, error) {
	return e.EvaluateWith(ctx, root, task, e.factories)
}

// EvaluateWith runs an explicit subset of checks instead of the engine's
// configured set. Callers that select checks per task and node kind use this
// to keep one engine (and one set of instruments) across evaluations. An
// empty subset accepts: no checks means nothing to object.
func (e *Engine) EvaluateWith(ctx context.Context, root model.Node, task rulegraph.Task, factories []CheckFactory) (*Outcome, error) {
	if root == nil {
		return nil, fmt.Errorf("policy: root node is required")
	}

	ctx, span := e.startSpan(ctx)
	start := time.Now()
	outcome := &Outcome{
		RunID:       uuid.NewString(),
		Task:        task,
		SubjectID:   root.ID(),
		SubjectKind: root.NodeKind(),
	}

	reject := false
	for _, factory := range factories {
		check := factory()
		result := visit.NewWalker(check).Walk(root)
		outcome.Reports = append(outcome.Reports, Report{Check: check.Name(), Result: result})

		switch e.cfg.Mode {
		case ModeStrict:
			if result.Count(e.cfg.Threshold) > 0 {
				reject = true
			}
		case ModeLax:
			if result.CountAt(diag.SeverityError, e.cfg.Threshold) > 0 {
				reject = true
			}
		}
	}

	outcome.Accepted = !reject
	outcome.Duration = time.Since(start)

	e.logger.Info("validation evaluated",
		"run_id", outcome.RunID,
		"task", task,
		"subject", root.ID(),
		"accepted", outcome.Accepted,
		"checks", len(outcome.Reports),
		"duration", outcome.Duration,
	)
	e.recordOutcome(ctx, span, outcome)

	return outcome, nil
}
