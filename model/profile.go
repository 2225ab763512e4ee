package model

import "github.com/typeforge/sdk/diag"

// SubSchemaRelation describes how a type profile relates to its base type's
// schema.
type SubSchemaRelation string

const (
	// RelationRestricts narrows the base schema (constraints only).
	RelationRestricts SubSchemaRelation = "restricts"

	// RelationExtends adds members on top of the base schema.
	RelationExtends SubSchemaRelation = "extends"

	// RelationNone means the profile has not declared its relation.
	// Profiles must declare one; RelationNone is a validation error.
	RelationNone SubSchemaRelation = ""
)

// IsValid returns true for a declared relation. RelationNone is not valid.
func (r SubSchemaRelation) IsValid() bool {
	return r == RelationRestricts || r == RelationExtends
}

// String returns the string representation of the relation.
func (r SubSchemaRelation) String() string { return string(r) }

// TypeProfile is a constrained view over a base data type, declaring its own
// attributes and how its schema relates to the base's.
type TypeProfile struct {
	nodeBase

	// Base is the data type the profile constrains.
	Base *DataType

	// Relation declares how the profile's schema relates to the base's.
	Relation SubSchemaRelation

	// Attributes are the members declared directly on this profile.
	Attributes []*Attribute
}

// NewTypeProfile creates a type profile over the given base type.
func NewTypeProfile(id, name string, base *DataType) *TypeProfile {
	return &TypeProfile{
		nodeBase: nodeBase{id: id, name: name},
		Base:     base,
	}
}

// WithRelation declares the sub-schema relation and returns the profile for
// chaining.
func (p *TypeProfile) WithRelation(r SubSchemaRelation) *TypeProfile {
	p.Relation = r
	return p
}

// WithAttributes appends attributes and returns the profile for chaining.
func (p *TypeProfile) WithAttributes(attrs ...*Attribute) *TypeProfile {
	p.Attributes = append(p.Attributes, attrs...)
	return p
}

// NodeKind returns KindTypeProfile.
func (p *TypeProfile) NodeKind() Kind { return KindTypeProfile }

// Accept dispatches v.VisitTypeProfile.
func (p *TypeProfile) Accept(v Visitor) *diag.Result { return v.VisitTypeProfile(p) }
