package sdk

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/typeforge/sdk/model"
	"github.com/typeforge/sdk/policy"
	"github.com/typeforge/sdk/rulegraph"
)

// Registry is the SDK entry point. It owns a compiled rule dependency graph
// and a policy engine, and validates node hierarchies against them.
//
// Build once with New, then call Validate from any number of goroutines:
// the compiled graph is immutable and every validation run uses fresh check
// instances, so no traversal state is shared.
type Registry struct {
	cfg      *config
	compiled *rulegraph.Compiled
	engine   *policy.Engine

	mu     sync.Mutex
	closed bool
}

// New builds a registry from the given rule declarations. When a declaration
// source is configured via WithSource, declarations fetched from it are
// appended to decls before compilation.
//
// The whole declaration set is compiled up front: structural errors,
// duplicate IDs, unimplemented rules, and dependency cycles all surface here
// wrapped in ErrBuildFailed, and no Registry is returned. Validation never
// encounters a broken graph.
func New(ctx context.Context, decls []rulegraph.Declaration, opts ...Option) (*Registry, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.source != nil {
		fetched, err := cfg.source.Fetch(ctx)
		if err != nil {
			return nil, NewConfigurationError("New", fmt.Errorf("fetching declarations: %w", err))
		}
		decls = append(decls, fetched...)
	}
	if len(decls) == 0 {
		return nil, NewConfigurationError("New", ErrNoDeclarations)
	}

	snapshot, err := rulegraph.NewSnapshot(decls...)
	if err != nil {
		return nil, NewCompilationError("New", fmt.Errorf("%w: %w", ErrBuildFailed, err))
	}
	if err := checkImplemented(snapshot, cfg.checks); err != nil {
		return nil, NewCompilationError("New", fmt.Errorf("%w: %w", ErrBuildFailed, err))
	}

	compiler := rulegraph.NewCompiler(rulegraph.WithLogger(cfg.logger))
	compiled, err := compiler.Compile(snapshot)
	if err != nil {
		return nil, NewCompilationError("New", fmt.Errorf("%w: %w", ErrBuildFailed, err))
	}

	engine, err := policy.NewEngine(cfg.policy, allFactories(cfg.checks),
		policy.WithLogger(cfg.logger),
		policy.WithTracer(cfg.tracer),
		policy.WithMeter(cfg.meter),
	)
	if err != nil {
		return nil, NewConfigurationError("New", fmt.Errorf("%w: %w", ErrInvalidConfig, err))
	}

	return &Registry{cfg: cfg, compiled: compiled, engine: engine}, nil
}

// checkImplemented verifies every declared rule has a registered check.
// A declaration without an implementation cannot honor its execution slot.
func checkImplemented(snapshot *rulegraph.Snapshot, checks map[string]policy.CheckFactory) error {
	for _, decl := range snapshot.All() {
		if _, ok := checks[decl.ID]; !ok {
			return &rulegraph.StructuralError{
				RuleID: decl.ID,
				Reason: "no check implementation registered",
			}
		}
	}
	return nil
}

// allFactories returns the registered factories ordered by rule id, so the
// engine's configured set is deterministic.
func allFactories(checks map[string]policy.CheckFactory) []policy.CheckFactory {
	ids := make([]string, 0, len(checks))
	for id := range checks {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	factories := make([]policy.CheckFactory, 0, len(ids))
	for _, id := range ids {
		factories = append(factories, checks[id])
	}
	return factories
}

// Compiled returns the registry's compiled rule graph.
func (r *Registry) Compiled() *rulegraph.Compiled { return r.compiled }

// Validate runs every in-scope, eligible rule over root under the given task
// and returns the policy decision with every check's complete diagnostic
// tree.
//
// Scope selection uses the compiled execution order for (task, root kind);
// a rule whose guard expression evaluates false for root is skipped. When no
// rule is in scope the outcome is accepted with no reports.
//
// When a store is configured the outcome is persisted before returning; a
// persistence failure is returned alongside the outcome so callers can keep
// the decision and still see the fault.
func (r *Registry) Validate(ctx context.Context, root model.Node, task rulegraph.Task) (*policy.Outcome, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, NewValidationError("Validate", ErrClosed)
	}
	r.mu.Unlock()

	if root == nil {
		return nil, NewValidationError("Validate", fmt.Errorf("root node is required"))
	}
	if !task.IsValid() {
		return nil, NewValidationError("Validate", fmt.Errorf("invalid task %q", task))
	}

	factories, err := r.selectChecks(root, task)
	if err != nil {
		return nil, err
	}

	outcome, err := r.engine.EvaluateWith(ctx, root, task, factories)
	if err != nil {
		return nil, NewValidationError("Validate", err)
	}

	if r.cfg.store != nil {
		if err := r.cfg.store.SaveOutcome(ctx, outcome); err != nil {
			return outcome, NewStorageError("Validate", err)
		}
	}
	return outcome, nil
}

// selectChecks resolves the compiled execution order for (task, root kind)
// and filters it through each rule's guard.
func (r *Registry) selectChecks(root model.Node, task rulegraph.Task) ([]policy.CheckFactory, error) {
	order, ok := r.compiled.OrderFor(task, root.NodeKind())
	if !ok {
		return nil, nil
	}

	factories := make([]policy.CheckFactory, 0, len(order))
	for _, ruleID := range order {
		prg := r.compiled.GuardFor(ruleID)
		if prg != nil {
			eligible, err := prg.Eligible(root)
			if err != nil {
				return nil, NewInternalError("Validate",
					fmt.Errorf("evaluating guard for rule %q: %w", ruleID, err))
			}
			if !eligible {
				continue
			}
		}
		factories = append(factories, r.cfg.checks[ruleID])
	}
	return factories, nil
}

// Close releases the registry's resources. A configured store is closed;
// subsequent Validate calls fail with ErrClosed. Close is idempotent.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true

	if r.cfg.store != nil {
		if err := r.cfg.store.Close(); err != nil {
			return NewStorageError("Close", err)
		}
	}
	return nil
}
