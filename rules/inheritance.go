package rules

import (
	"fmt"

	"github.com/typeforge/sdk/diag"
	"github.com/typeforge/sdk/model"
	"github.com/typeforge/sdk/visit"
)

// InheritanceRule checks compatibility along the inheritance graph: basic
// types must keep their parent's primitive kind, and overriding attributes
// must stay covariant with the attribute they override.
type InheritanceRule struct {
	visit.Base
}

// NewInheritanceRule creates a fresh inheritance rule instance.
func NewInheritanceRule() *InheritanceRule { return &InheritanceRule{} }

// Name returns the rule's stable identifier.
func (r *InheritanceRule) Name() string { return "inheritance" }

// VisitDataType checks primitive-kind agreement with the parent and recurses
// into the parent and attributes.
func (r *InheritanceRule) VisitDataType(t *model.DataType) *diag.Result {
	res := diag.NewResult()
	if t.Parent != nil && t.IsBasic() && t.Parent.IsBasic() && t.Primitive != t.Parent.Primitive {
		res.AddMessage(
			fmt.Sprintf("basic type %q has primitive kind %q but its parent %q has %q",
				t.ID(), t.Primitive, t.Parent.ID(), t.Parent.Primitive),
			t.ID(), t.NodeKind().String(), diag.SeverityError,
		)
	}
	if t.Parent != nil && t.Parent.Abstract && t.Abstract {
		res.AddMessage(
			fmt.Sprintf("abstract type %q inherits from abstract type %q", t.ID(), t.Parent.ID()),
			t.ID(), t.NodeKind().String(), diag.SeverityInfo,
		)
	}
	if t.Parent != nil {
		res.AddChild(r.Walk(t.Parent))
	}
	for _, a := range t.Attributes {
		res.AddChild(r.Walk(a))
	}
	return res
}

// VisitTypeProfile recurses into the profile's base and attributes.
func (r *InheritanceRule) VisitTypeProfile(p *model.TypeProfile) *diag.Result {
	res := diag.NewResult()
	if p.Base != nil {
		res.AddChild(r.Walk(p.Base))
	}
	for _, a := range p.Attributes {
		res.AddChild(r.Walk(a))
	}
	return res
}

// VisitAttribute checks override covariance: an overriding attribute's data
// type must be the overridden attribute's type or one derived from it.
func (r *InheritanceRule) VisitAttribute(a *model.Attribute) *diag.Result {
	res := diag.NewResult()
	if a.Overrides != nil {
		switch {
		case a.Type == nil || a.Overrides.Type == nil:
			// Missing types are the syntax rule's finding; covariance
			// cannot be judged without both ends.
		case !a.Type.DerivesFrom(a.Overrides.Type):
			res.AddMessage(
				fmt.Sprintf("attribute %q overrides %q with non-covariant type %q (expected %q or a type derived from it)",
					a.ID(), a.Overrides.ID(), a.Type.ID(), a.Overrides.Type.ID()),
				a.ID(), a.NodeKind().String(), diag.SeverityError,
			)
		}
		if a.Overrides.Required && !a.Required {
			res.AddMessage(
				fmt.Sprintf("attribute %q relaxes the required flag of overridden attribute %q",
					a.ID(), a.Overrides.ID()),
				a.ID(), a.NodeKind().String(), diag.SeverityWarning,
			)
		}
		res.AddChild(r.Walk(a.Overrides))
	}
	if a.Type != nil {
		res.AddChild(r.Walk(a.Type))
	}
	return res
}

// VisitOperation recurses into the operation's steps.
func (r *InheritanceRule) VisitOperation(o *model.Operation) *diag.Result {
	res := diag.NewResult()
	for _, s := range o.Steps {
		res.AddChild(r.Walk(s))
	}
	return res
}

// VisitOperationStep recurses into the step's mappings.
func (r *InheritanceRule) VisitOperationStep(s *model.OperationStep) *diag.Result {
	res := diag.NewResult()
	for _, m := range s.Mappings {
		res.AddChild(r.Walk(m))
	}
	return res
}

// VisitAttributeMapping checks that the mapped attributes are type-compatible
// (source type equal to or derived from the target's) and recurses into both
// endpoints.
func (r *InheritanceRule) VisitAttributeMapping(m *model.AttributeMapping) *diag.Result {
	res := diag.NewResult()
	if m.Source != nil && m.Target != nil &&
		m.Source.Type != nil && m.Target.Type != nil &&
		!m.Source.Type.DerivesFrom(m.Target.Type) {
		res.AddMessage(
			fmt.Sprintf("mapping %q assigns %q to incompatible type %q",
				m.ID(), m.Source.Type.ID(), m.Target.Type.ID()),
			m.ID(), m.NodeKind().String(), diag.SeverityWarning,
		)
	}
	if m.Source != nil {
		res.AddChild(r.Walk(m.Source))
	}
	if m.Target != nil {
		res.AddChild(r.Walk(m.Target))
	}
	return res
}
