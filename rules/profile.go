package rules

import (
	"fmt"

	"github.com/typeforge/sdk/diag"
	"github.com/typeforge/sdk/model"
	"github.com/typeforge/sdk/visit"
)

// ProfileRule checks the structure of type profiles: every profile must name
// a base type and declare its sub-schema relation, and a restricting profile
// should only constrain members that exist on the base.
type ProfileRule struct {
	visit.Base
}

// NewProfileRule creates a fresh profile rule instance.
func NewProfileRule() *ProfileRule { return &ProfileRule{} }

// Name returns the rule's stable identifier.
func (r *ProfileRule) Name() string { return "profile" }

// VisitTypeProfile checks the profile's base, relation, and attribute
// provenance, then recurses.
func (r *ProfileRule) VisitTypeProfile(p *model.TypeProfile) *diag.Result {
	res := diag.NewResult()
	if p.Base == nil {
		res.AddMessage(
			fmt.Sprintf("type profile %q has no base type", p.ID()),
			p.ID(), p.NodeKind().String(), diag.SeverityError,
		)
	}
	if !p.Relation.IsValid() {
		res.AddMessage(
			fmt.Sprintf("type profile %q does not declare its sub-schema relation", p.ID()),
			p.ID(), p.NodeKind().String(), diag.SeverityError,
		)
	}
	if p.Relation == model.RelationRestricts && p.Base != nil {
		for _, a := range p.Attributes {
			if a.Overrides == nil {
				res.AddMessage(
					fmt.Sprintf("restricting profile %q introduces attribute %q that overrides nothing on the base",
						p.ID(), a.ID()),
					a.ID(), a.NodeKind().String(), diag.SeverityWarning,
				)
			}
		}
	}
	if p.Base != nil {
		res.AddChild(r.Walk(p.Base))
	}
	for _, a := range p.Attributes {
		res.AddChild(r.Walk(a))
	}
	return res
}

// VisitDataType recurses into the type's parent and attributes; profiles are
// the only kind this rule judges locally.
func (r *ProfileRule) VisitDataType(t *model.DataType) *diag.Result {
	res := diag.NewResult()
	if t.Parent != nil {
		res.AddChild(r.Walk(t.Parent))
	}
	for _, a := range t.Attributes {
		res.AddChild(r.Walk(a))
	}
	return res
}

// VisitAttribute recurses into the attribute's type and override.
func (r *ProfileRule) VisitAttribute(a *model.Attribute) *diag.Result {
	res := diag.NewResult()
	if a.Type != nil {
		res.AddChild(r.Walk(a.Type))
	}
	if a.Overrides != nil {
		res.AddChild(r.Walk(a.Overrides))
	}
	return res
}

// VisitOperation recurses into the operation's steps.
func (r *ProfileRule) VisitOperation(o *model.Operation) *diag.Result {
	res := diag.NewResult()
	for _, s := range o.Steps {
		res.AddChild(r.Walk(s))
	}
	return res
}

// VisitOperationStep recurses into the step's mappings.
func (r *ProfileRule) VisitOperationStep(s *model.OperationStep) *diag.Result {
	res := diag.NewResult()
	for _, m := range s.Mappings {
		res.AddChild(r.Walk(m))
	}
	return res
}

// VisitAttributeMapping recurses into the mapping's endpoints.
func (r *ProfileRule) VisitAttributeMapping(m *model.AttributeMapping) *diag.Result {
	res := diag.NewResult()
	if m.Source != nil {
		res.AddChild(r.Walk(m.Source))
	}
	if m.Target != nil {
		res.AddChild(r.Walk(m.Target))
	}
	return res
}
