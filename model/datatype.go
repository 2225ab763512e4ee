package model

import (
	"fmt"

	"github.com/typeforge/sdk/diag"
)

// PrimitiveKind is the primitive representation of a basic data type.
type PrimitiveKind string

const (
	PrimitiveString  PrimitiveKind = "string"
	PrimitiveInteger PrimitiveKind = "integer"
	PrimitiveDecimal PrimitiveKind = "decimal"
	PrimitiveBoolean PrimitiveKind = "boolean"
	PrimitiveDate    PrimitiveKind = "date"
	PrimitiveBinary  PrimitiveKind = "binary"

	// PrimitiveNone marks a structured (non-basic) data type.
	PrimitiveNone PrimitiveKind = ""
)

// IsValid returns true if the primitive kind is one of the known primitives
// or PrimitiveNone.
func (p PrimitiveKind) IsValid() bool {
	switch p {
	case PrimitiveString, PrimitiveInteger, PrimitiveDecimal,
		PrimitiveBoolean, PrimitiveDate, PrimitiveBinary, PrimitiveNone:
		return true
	default:
		return false
	}
}

// String returns the string representation of the primitive kind.
func (p PrimitiveKind) String() string { return string(p) }

// ParsePrimitiveKind parses a string into a PrimitiveKind value.
func ParsePrimitiveKind(s string) (PrimitiveKind, error) {
	p := PrimitiveKind(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid primitive kind: %s", s)
	}
	return p, nil
}

// DataType is a basic or structured data type in the registry. Data types
// form an inheritance graph through Parent; basic types additionally carry a
// primitive kind that must agree with their parent's.
type DataType struct {
	nodeBase

	// Primitive is the primitive representation for basic types, or
	// PrimitiveNone for structured types.
	Primitive PrimitiveKind

	// Parent is the data type this type inherits from, or nil for roots.
	// A misauthored parent chain may contain cycles.
	Parent *DataType

	// Attributes are the members declared directly on this type.
	Attributes []*Attribute

	// Abstract marks types that cannot have direct instances.
	Abstract bool
}

// NewDataType creates a data type with the given identity and primitive kind.
// Use PrimitiveNone for structured types.
func NewDataType(id, name string, primitive PrimitiveKind) *DataType {
	return &DataType{
		nodeBase:  nodeBase{id: id, name: name},
		Primitive: primitive,
	}
}

// WithParent sets the inheritance parent and returns the type for chaining.
func (t *DataType) WithParent(parent *DataType) *DataType {
	t.Parent = parent
	return t
}

// WithAttributes appends attributes and returns the type for chaining.
func (t *DataType) WithAttributes(attrs ...*Attribute) *DataType {
	t.Attributes = append(t.Attributes, attrs...)
	return t
}

// WithAbstract marks the type as abstract and returns it for chaining.
func (t *DataType) WithAbstract() *DataType {
	t.Abstract = true
	return t
}

// IsBasic reports whether the type has a primitive representation.
func (t *DataType) IsBasic() bool { return t.Primitive != PrimitiveNone }

// DerivesFrom reports whether t is candidate or inherits from candidate
// through its parent chain. The walk is bounded by a seen-set so a
// misauthored cyclic parent chain terminates with a false result.
func (t *DataType) DerivesFrom(candidate *DataType) bool {
	if candidate == nil {
		return false
	}
	seen := make(map[string]bool)
	for cur := t; cur != nil; cur = cur.Parent {
		if seen[cur.ID()] {
			return false
		}
		seen[cur.ID()] = true
		if cur.ID() == candidate.ID() {
			return true
		}
	}
	return false
}

// NodeKind returns KindDataType.
func (t *DataType) NodeKind() Kind { return KindDataType }

// Accept dispatches v.VisitDataType.
func (t *DataType) Accept(v Visitor) *diag.Result { return v.VisitDataType(t) }
