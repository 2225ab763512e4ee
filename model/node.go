package model

import (
	"fmt"

	"github.com/typeforge/sdk/diag"
)

// Kind identifies a concrete, visitable node kind in the registry's entity
// graph. The set of kinds is closed: every kind has a corresponding method on
// Visitor, and abstract notions (such as "node" itself) are not kinds.
type Kind string

const (
	// KindDataType is a basic or structured data type.
	KindDataType Kind = "data_type"

	// KindTypeProfile is a constrained view over a base data type.
	KindTypeProfile Kind = "type_profile"

	// KindAttribute is a named, typed member of a data type or profile.
	KindAttribute Kind = "attribute"

	// KindOperation is a callable operation exposed by the registry.
	KindOperation Kind = "operation"

	// KindOperationStep is one step in an operation's execution sequence.
	KindOperationStep Kind = "operation_step"

	// KindAttributeMapping maps a source attribute to a target attribute
	// within an operation step.
	KindAttributeMapping Kind = "attribute_mapping"
)

// IsValid returns true if the kind names a concrete node kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindDataType, KindTypeProfile, KindAttribute,
		KindOperation, KindOperationStep, KindAttributeMapping:
		return true
	default:
		return false
	}
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// ParseKind parses a string into a Kind value.
// Returns an error if the string is not a concrete node kind.
func ParseKind(s string) (Kind, error) {
	kind := Kind(s)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid node kind: %s", s)
	}
	return kind, nil
}

// AllKinds returns all concrete node kinds.
func AllKinds() []Kind {
	return []Kind{
		KindDataType,
		KindTypeProfile,
		KindAttribute,
		KindOperation,
		KindOperationStep,
		KindAttributeMapping,
	}
}

// Node is a visitable entity in the registry graph. Each node has a stable
// identity and typed relationships to other nodes. The relationship graph may
// contain shared sub-nodes (diamonds) and, if misauthored, cycles; traversal
// safety is the walker's responsibility, not the node's.
//
// The node hierarchy is closed: only the types in this package implement
// Node, enforced by the unexported marker method.
type Node interface {
	// ID returns the node's stable identity.
	ID() string

	// Name returns the node's human-readable name.
	Name() string

	// NodeKind returns the concrete kind of this node.
	NodeKind() Kind

	// Accept dispatches the visitor method for this node's concrete kind.
	Accept(v Visitor) *diag.Result

	isNode()
}

// Visitor is a polymorphic operation over every concrete node kind. Each
// method computes a diagnostic tree for one node and may recurse into the
// node's references (through a walker, never by calling Accept directly).
//
// Implementing Visitor requires a method per kind, so exhaustiveness over the
// closed node set is checked at compile time.
type Visitor interface {
	VisitDataType(t *DataType) *diag.Result
	VisitTypeProfile(p *TypeProfile) *diag.Result
	VisitAttribute(a *Attribute) *diag.Result
	VisitOperation(o *Operation) *diag.Result
	VisitOperationStep(s *OperationStep) *diag.Result
	VisitAttributeMapping(m *AttributeMapping) *diag.Result
}

// nodeBase carries the identity fields shared by every concrete node kind.
type nodeBase struct {
	id   string
	name string
}

// ID returns the node's stable identity.
func (b nodeBase) ID() string { return b.id }

// Name returns the node's human-readable name.
func (b nodeBase) Name() string { return b.name }

func (nodeBase) isNode() {}
