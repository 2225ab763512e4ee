package rulegraph

import (
	"errors"
	"fmt"

	"github.com/typeforge/sdk/model"
)

// Declaration describes one validation rule: the lifecycle tasks it applies
// to, the concrete node kinds it targets, its ordering constraints against
// other rules, and an optional applicability guard.
//
// Declarations are created once at scan time and frozen; they are plain data
// and must not be mutated after being handed to a Scanner.
type Declaration struct {
	// ID is the rule's unique identifier.
	ID string `json:"id" yaml:"id"`

	// Tasks are the lifecycle tasks the rule applies to. An empty set means
	// the rule applies to every task.
	Tasks []Task `json:"tasks,omitempty" yaml:"tasks,omitempty"`

	// TargetKinds are the concrete node kinds the rule targets. Must be
	// non-empty; abstract or unknown kinds are structural errors.
	TargetKinds []model.Kind `json:"target_kinds" yaml:"target_kinds"`

	// DependsOn lists rule ids that must run before this rule.
	DependsOn []string `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`

	// ExecuteBefore lists rule ids this rule must run before.
	ExecuteBefore []string `json:"execute_before,omitempty" yaml:"execute_before,omitempty"`

	// Condition is an optional CEL guard over the candidate root node's
	// {id, kind, name} bindings. Empty means always applicable.
	Condition string `json:"condition,omitempty" yaml:"condition,omitempty"`
}

// Validate checks the declaration's structural invariants. All violations
// are collected and joined; each matches ErrInvalidDeclaration. Ordering
// problems (including self-references) are not structural; they are the
// cycle detector's domain.
func (d Declaration) Validate() error {
	var errs []error

	if d.ID == "" {
		errs = append(errs, &StructuralError{Reason: "rule id is required"})
	}
	if len(d.TargetKinds) == 0 {
		errs = append(errs, &StructuralError{
			RuleID: d.ID,
			Reason: "at least one target kind is required",
		})
	}
	for _, k := range d.TargetKinds {
		if !k.IsValid() {
			errs = append(errs, &StructuralError{
				RuleID: d.ID,
				Reason: fmt.Sprintf("target kind %q is not a concrete node kind", k),
			})
		}
	}
	for _, t := range d.Tasks {
		if !t.IsValid() {
			errs = append(errs, &StructuralError{
				RuleID: d.ID,
				Reason: fmt.Sprintf("unknown task %q", t),
			})
		}
	}

	return errors.Join(errs...)
}

// EffectiveTasks returns the tasks the declaration applies to, expanding an
// empty task set to every lifecycle task.
func (d Declaration) EffectiveTasks() []Task {
	if len(d.Tasks) == 0 {
		return AllTasks()
	}
	return d.Tasks
}

// AppliesTo reports whether the declaration is in scope for the given task
// and node kind.
func (d Declaration) AppliesTo(task Task, kind model.Kind) bool {
	inTask := len(d.Tasks) == 0
	for _, t := range d.Tasks {
		if t == task {
			inTask = true
			break
		}
	}
	if !inTask {
		return false
	}
	for _, k := range d.TargetKinds {
		if k == kind {
			return true
		}
	}
	return false
}
