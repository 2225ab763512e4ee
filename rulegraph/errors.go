package rulegraph

import (
	"errors"
	"fmt"

	"github.com/typeforge/sdk/model"
)

// Sentinel errors for rule compilation. Use errors.Is to classify build
// failures.
var (
	// ErrInvalidDeclaration indicates a structurally malformed rule
	// declaration: missing id, empty or abstract target kinds, unknown
	// tasks, or an unparseable guard condition.
	ErrInvalidDeclaration = errors.New("invalid rule declaration")

	// ErrDuplicateRule indicates two declarations sharing one rule id.
	ErrDuplicateRule = errors.New("duplicate rule id")

	// ErrCyclicDependency indicates a cycle among declared rules within one
	// (task, target kind) scope.
	ErrCyclicDependency = errors.New("cyclic rule dependency")

	// ErrFrozen indicates a mutation attempt after the scanner was frozen.
	ErrFrozen = errors.New("declaration set is frozen")
)

// StructuralError reports one malformed declaration. Structural errors are
// fatal at build time and reported per offending declaration.
type StructuralError struct {
	// RuleID is the offending declaration's id, if it has one.
	RuleID string

	// Reason describes the violation.
	Reason string
}

// Error implements the error interface.
func (e *StructuralError) Error() string {
	if e.RuleID == "" {
		return fmt.Sprintf("rulegraph: invalid declaration: %s", e.Reason)
	}
	return fmt.Sprintf("rulegraph: invalid declaration %q: %s", e.RuleID, e.Reason)
}

// Unwrap makes StructuralError match ErrInvalidDeclaration.
func (e *StructuralError) Unwrap() error { return ErrInvalidDeclaration }

// CycleError reports one dependency cycle: the scope it was found in and one
// edge on the cycle. Detection fails fast per scope, so at most one
// CycleError is produced per (task, kind) bucket.
type CycleError struct {
	// Task and Kind identify the scope containing the cycle.
	Task Task
	Kind model.Kind

	// From and To are one happens-before edge on the cycle: To must run
	// before From, yet From was reached while To was still in progress.
	// A self-referencing rule reports From == To.
	From string
	To   string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	if e.From == e.To {
		return fmt.Sprintf("rulegraph: cyclic rule dependency in (%s, %s): rule %q references itself",
			e.Task, e.Kind, e.From)
	}
	return fmt.Sprintf("rulegraph: cyclic rule dependency in (%s, %s): edge %q -> %q closes a cycle",
		e.Task, e.Kind, e.To, e.From)
}

// Unwrap makes CycleError match ErrCyclicDependency.
func (e *CycleError) Unwrap() error { return ErrCyclicDependency }
