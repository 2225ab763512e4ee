package sdk

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/typeforge/sdk/policy"
	"github.com/typeforge/sdk/rules"
	"github.com/typeforge/sdk/source"
	"github.com/typeforge/sdk/store"
)

// Option configures a Registry.
type Option func(*config)

type config struct {
	logger *slog.Logger
	tracer trace.Tracer
	meter  metric.Meter

	policy policy.Config
	checks map[string]policy.CheckFactory

	store  store.Store
	source *source.Client
}

func defaultConfig() *config {
	return &config{
		logger: slog.Default(),
		checks: map[string]policy.CheckFactory{
			"syntax":      func() policy.Check { return &rules.SyntaxRule{} },
			"inheritance": func() policy.Check { return &rules.InheritanceRule{} },
			"profile":     func() policy.Check { return &rules.ProfileRule{} },
		},
	}
}

// WithLogger sets the logger used by the registry and its compiler and
// engine. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTracer sets an OpenTelemetry tracer for per-validation spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *config) {
		c.tracer = tracer
	}
}

// WithMeter sets an OpenTelemetry meter for validation metrics.
func WithMeter(meter metric.Meter) Option {
	return func(c *config) {
		c.meter = meter
	}
}

// WithPolicy sets the policy configuration (mode and severity threshold).
// Zero fields are filled with defaults: lax mode, error threshold.
func WithPolicy(cfg policy.Config) Option {
	return func(c *config) {
		c.policy = cfg
	}
}

// WithCheck registers the implementation for a declared rule ID. The three
// built-in checks (syntax, inheritance, profile) are registered by default;
// registering the same ID again replaces the implementation.
func WithCheck(ruleID string, factory policy.CheckFactory) Option {
	return func(c *config) {
		c.checks[ruleID] = factory
	}
}

// WithStore sets a store for validation outcomes. When configured, every
// Validate call persists its outcome after deciding it. The registry closes
// the store on Close.
func WithStore(s store.Store) Option {
	return func(c *config) {
		c.store = s
	}
}

// WithSource sets a declaration source. New fetches from it and appends the
// fetched declarations to the ones passed directly. The caller keeps
// ownership of the client and closes it.
func WithSource(src *source.Client) Option {
	return func(c *config) {
		c.source = src
	}
}
