// Package guard compiles and evaluates rule applicability guards.
//
// A rule declaration may carry an optional CEL condition deciding whether the
// rule applies to a given root node. Conditions are compiled once at build
// time (a malformed expression is a structural build error) and evaluated
// against the candidate node's bindings at selection time.
//
// Conditions see three string bindings:
//
//	id    the node's identity
//	kind  the node's concrete kind (e.g. "data_type")
//	name  the node's name
//
// Example condition: `kind == "type_profile" && name.startsWith("Fhir")`.
package guard

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/typeforge/sdk/model"
)

var (
	envOnce sync.Once
	env     *cel.Env
	envErr  error
)

// guardEnv returns the shared CEL environment for guard expressions.
func guardEnv() (*cel.Env, error) {
	envOnce.Do(func() {
		env, envErr = cel.NewEnv(
			cel.Variable("id", cel.StringType),
			cel.Variable("kind", cel.StringType),
			cel.Variable("name", cel.StringType),
		)
	})
	return env, envErr
}

// Program is a compiled applicability guard. The zero guard (empty
// condition) is always eligible.
type Program struct {
	expr string
	prg  cel.Program
}

// Compile compiles a guard condition. An empty condition compiles to the
// always-eligible program. A condition that does not parse, does not
// type-check, or does not produce a boolean is an error.
func Compile(expr string) (*Program, error) {
	if expr == "" {
		return &Program{}, nil
	}

	e, err := guardEnv()
	if err != nil {
		return nil, fmt.Errorf("guard environment: %w", err)
	}

	ast, iss := e.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("compile guard %q: %w", expr, iss.Err())
	}
	if ast.OutputType().String() != "bool" {
		return nil, fmt.Errorf("guard %q must evaluate to bool, got %s", expr, ast.OutputType())
	}

	prg, err := e.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("build guard program %q: %w", expr, err)
	}

	return &Program{expr: expr, prg: prg}, nil
}

// Expr returns the source condition, empty for the always-eligible program.
func (p *Program) Expr() string {
	if p == nil {
		return ""
	}
	return p.expr
}

// Eligible evaluates the guard against the node's bindings. A nil or empty
// program is always eligible.
func (p *Program) Eligible(n model.Node) (bool, error) {
	if p == nil || p.prg == nil {
		return true, nil
	}

	out, _, err := p.prg.Eval(map[string]any{
		"id":   n.ID(),
		"kind": n.NodeKind().String(),
		"name": n.Name(),
	})
	if err != nil {
		return false, fmt.Errorf("evaluate guard %q: %w", p.expr, err)
	}

	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("guard %q produced %T, want bool", p.expr, out.Value())
	}
	return b, nil
}
