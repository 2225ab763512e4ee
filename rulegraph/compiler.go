package rulegraph

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/typeforge/sdk/guard"
	"github.com/typeforge/sdk/model"
)

// Compiler validates a frozen declaration snapshot at build time: structural
// checks per declaration, guard compilation, and cycle detection per
// (task, kind) scope. Any failure is a hard build failure: the system must
// not become runnable with a cyclic or malformed rule configuration.
type Compiler struct {
	logger *slog.Logger
}

// CompilerOption configures a Compiler.
type CompilerOption func(*Compiler)

// WithLogger sets the compiler's logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) CompilerOption {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// NewCompiler creates a compiler with the given options.
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compiled is the successful output of a compilation pass: one execution
// order per cycle-free scope plus the compiled applicability guards.
// Compiled values are immutable once returned.
type Compiled struct {
	snapshot *Snapshot
	orders   map[Scope][]string
	guards   map[string]*guard.Program
}

// Snapshot returns the declaration snapshot the compilation was built from.
func (c *Compiled) Snapshot() *Snapshot { return c.snapshot }

// OrderFor returns the execution order for one (task, kind) scope. The
// boolean is false when no declaration is indexed into that scope.
func (c *Compiled) OrderFor(task Task, kind model.Kind) ([]string, bool) {
	order, ok := c.orders[Scope{Task: task, Kind: kind}]
	return order, ok
}

// GuardFor returns the compiled applicability guard for a rule id. Rules
// without a condition get the always-eligible guard.
func (c *Compiled) GuardFor(ruleID string) *guard.Program {
	return c.guards[ruleID]
}

// Scopes returns every compiled scope in deterministic order.
func (c *Compiled) Scopes() []Scope {
	return c.snapshot.Scopes()
}

// Compile runs the full build-time pass over a frozen snapshot.
//
// Every declaration is structurally validated and its guard compiled; every
// (task, kind) scope gets a dependency graph and a cycle check. Scopes are
// isolated: a cycle in one scope fails the build but does not suppress the
// detection or the orders of other scopes. All structural and cycle errors
// are joined into the returned error. A non-nil error is a hard build
// failure and the batch must abort; the Compiled returned alongside it still
// carries the orders of the scopes that succeeded, for diagnostics only.
func (pc *Compiler) Compile(snapshot *Snapshot) (*Compiled, error) {
	var errs []error

	guards := make(map[string]*guard.Program, snapshot.Len())
	for _, d := range snapshot.All() {
		if err := d.Validate(); err != nil {
			errs = append(errs, err)
		}
		prg, err := guard.Compile(d.Condition)
		if err != nil {
			errs = append(errs, &StructuralError{
				RuleID: d.ID,
				Reason: fmt.Sprintf("guard condition: %v", err),
			})
			continue
		}
		guards[d.ID] = prg
	}

	orders := make(map[Scope][]string)
	for _, scope := range snapshot.Scopes() {
		g := NewGraph(scope, snapshot.All())
		order, err := g.TopologicalOrder()
		if err != nil {
			pc.logger.Error("rule scope failed compilation",
				"task", scope.Task, "kind", scope.Kind, "error", err)
			errs = append(errs, err)
			continue
		}
		pc.logger.Debug("rule scope compiled",
			"task", scope.Task, "kind", scope.Kind, "rules", len(order))
		orders[scope] = order
	}

	compiled := &Compiled{snapshot: snapshot, orders: orders, guards: guards}
	if len(errs) > 0 {
		return compiled, errors.Join(errs...)
	}
	return compiled, nil
}
