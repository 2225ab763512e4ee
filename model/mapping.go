package model

import "github.com/typeforge/sdk/diag"

// AttributeMapping maps a source attribute to a target attribute within an
// operation step.
type AttributeMapping struct {
	nodeBase

	// Source is the attribute read by the mapping.
	Source *Attribute

	// Target is the attribute written by the mapping.
	Target *Attribute
}

// NewAttributeMapping creates a mapping between the given attributes.
func NewAttributeMapping(id, name string, source, target *Attribute) *AttributeMapping {
	return &AttributeMapping{
		nodeBase: nodeBase{id: id, name: name},
		Source:   source,
		Target:   target,
	}
}

// NodeKind returns KindAttributeMapping.
func (m *AttributeMapping) NodeKind() Kind { return KindAttributeMapping }

// Accept dispatches v.VisitAttributeMapping.
func (m *AttributeMapping) Accept(v Visitor) *diag.Result { return v.VisitAttributeMapping(m) }
