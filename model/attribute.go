package model

import "github.com/typeforge/sdk/diag"

// Attribute is a named, typed member of a data type or type profile.
type Attribute struct {
	nodeBase

	// Type is the attribute's declared data type.
	Type *DataType

	// Overrides is the attribute this one overrides in an ancestor type,
	// or nil. An overriding attribute must use a covariant data type: the
	// same type as the overridden attribute's, or one derived from it.
	Overrides *Attribute

	// Required marks attributes that must be populated on instances.
	Required bool
}

// NewAttribute creates an attribute with the given identity and data type.
func NewAttribute(id, name string, typ *DataType) *Attribute {
	return &Attribute{
		nodeBase: nodeBase{id: id, name: name},
		Type:     typ,
	}
}

// WithOverrides records the overridden attribute and returns this one for
// chaining.
func (a *Attribute) WithOverrides(overridden *Attribute) *Attribute {
	a.Overrides = overridden
	return a
}

// WithRequired marks the attribute required and returns it for chaining.
func (a *Attribute) WithRequired() *Attribute {
	a.Required = true
	return a
}

// NodeKind returns KindAttribute.
func (a *Attribute) NodeKind() Kind { return KindAttribute }

// Accept dispatches v.VisitAttribute.
func (a *Attribute) Accept(v Visitor) *diag.Result { return v.VisitAttribute(a) }
