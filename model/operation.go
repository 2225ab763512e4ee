package model

import "github.com/typeforge/sdk/diag"

// Operation is a callable operation exposed by the registry, executed as an
// ordered sequence of steps.
type Operation struct {
	nodeBase

	// Steps are the operation's execution steps, in order. An operation
	// without steps is a validation error.
	Steps []*OperationStep
}

// NewOperation creates an operation with the given identity.
func NewOperation(id, name string) *Operation {
	return &Operation{nodeBase: nodeBase{id: id, name: name}}
}

// WithSteps appends steps and returns the operation for chaining.
func (o *Operation) WithSteps(steps ...*OperationStep) *Operation {
	o.Steps = append(o.Steps, steps...)
	return o
}

// NodeKind returns KindOperation.
func (o *Operation) NodeKind() Kind { return KindOperation }

// Accept dispatches v.VisitOperation.
func (o *Operation) Accept(v Visitor) *diag.Result { return v.VisitOperation(o) }

// OperationStep is one step in an operation's execution sequence. A step
// moves data between attributes through its mappings.
type OperationStep struct {
	nodeBase

	// Mappings are the attribute mappings this step applies.
	Mappings []*AttributeMapping
}

// NewOperationStep creates a step with the given identity.
func NewOperationStep(id, name string) *OperationStep {
	return &OperationStep{nodeBase: nodeBase{id: id, name: name}}
}

// WithMappings appends mappings and returns the step for chaining.
func (s *OperationStep) WithMappings(mappings ...*AttributeMapping) *OperationStep {
	s.Mappings = append(s.Mappings, mappings...)
	return s
}

// NodeKind returns KindOperationStep.
func (s *OperationStep) NodeKind() Kind { return KindOperationStep }

// Accept dispatches v.VisitOperationStep.
func (s *OperationStep) Accept(v Visitor) *diag.Result { return v.VisitOperationStep(s) }
