package rules

import (
	"fmt"
	"regexp"

	"github.com/typeforge/sdk/diag"
	"github.com/typeforge/sdk/model"
	"github.com/typeforge/sdk/visit"
)

// identifierPattern is the accepted shape for node names: a letter followed
// by letters, digits or underscores.
var identifierPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// SyntaxRule checks the local well-formedness of every node: identity
// presence, name shape, and the presence of structurally required
// references. It does not judge inheritance or profile semantics.
type SyntaxRule struct {
	visit.Base
}

// NewSyntaxRule creates a fresh syntax rule instance.
func NewSyntaxRule() *SyntaxRule { return &SyntaxRule{} }

// Name returns the rule's stable identifier.
func (r *SyntaxRule) Name() string { return "syntax" }

// checkIdentity records identity problems common to every node kind.
func (r *SyntaxRule) checkIdentity(res *diag.Result, n model.Node) {
	if n.ID() == "" {
		res.AddMessage(
			fmt.Sprintf("%s has no identifier", n.NodeKind()),
			"", n.NodeKind().String(), diag.SeverityError,
		)
	}
	if n.Name() == "" {
		res.AddMessage(
			fmt.Sprintf("%s %q has no name", n.NodeKind(), n.ID()),
			n.ID(), n.NodeKind().String(), diag.SeverityError,
		)
	} else if !identifierPattern.MatchString(n.Name()) {
		res.AddMessage(
			fmt.Sprintf("name %q is not a valid identifier", n.Name()),
			n.ID(), n.NodeKind().String(), diag.SeverityWarning,
		)
	}
}

// VisitDataType checks a data type's identity and primitive kind, then
// recurses into its parent and attributes.
func (r *SyntaxRule) VisitDataType(t *model.DataType) *diag.Result {
	res := diag.NewResult()
	r.checkIdentity(res, t)
	if !t.Primitive.IsValid() {
		res.AddMessage(
			fmt.Sprintf("unknown primitive kind %q", t.Primitive),
			t.ID(), t.NodeKind().String(), diag.SeverityError,
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

// VisitTypeProfile checks a profile's identity and recurses into its base
// and attributes. Relation semantics belong to ProfileRule.
func (r *SyntaxRule) VisitTypeProfile(p *model.TypeProfile) *diag.Result {
	res := diag.NewResult()
	r.checkIdentity(res, p)
	if p.Base != nil {
		res.AddChild(r.Walk(p.Base))
	}
	for _, a := range p.Attributes {
		res.AddChild(r.Walk(a))
	}
	return res
}

// VisitAttribute checks that an attribute names a data type and recurses
// into the type and any overridden attribute.
func (r *SyntaxRule) VisitAttribute(a *model.Attribute) *diag.Result {
	res := diag.NewResult()
	r.checkIdentity(res, a)
	if a.Type == nil {
		res.AddMessage(
			fmt.Sprintf("attribute %q declares no data type", a.ID()),
			a.ID(), a.NodeKind().String(), diag.SeverityError,
		)
	} else {
		res.AddChild(r.Walk(a.Type))
	}
	if a.Overrides != nil {
		res.AddChild(r.Walk(a.Overrides))
	}
	return res
}

// VisitOperation checks that an operation has at least one step and recurses
// into the steps.
func (r *SyntaxRule) VisitOperation(o *model.Operation) *diag.Result {
	res := diag.NewResult()
	r.checkIdentity(res, o)
	if len(o.Steps) == 0 {
		res.AddMessage(
			fmt.Sprintf("operation %q has no steps", o.ID()),
			o.ID(), o.NodeKind().String(), diag.SeverityError,
		)
	}
	for _, s := range o.Steps {
		res.AddChild(r.Walk(s))
	}
	return res
}

// VisitOperationStep checks a step's identity and recurses into mappings.
func (r *SyntaxRule) VisitOperationStep(s *model.OperationStep) *diag.Result {
	res := diag.NewResult()
	r.checkIdentity(res, s)
	for _, m := range s.Mappings {
		res.AddChild(r.Walk(m))
	}
	return res
}

// VisitAttributeMapping checks that both mapping endpoints are present and
// recurses into them.
func (r *SyntaxRule) VisitAttributeMapping(m *model.AttributeMapping) *diag.Result {
	res := diag.NewResult()
	r.checkIdentity(res, m)
	if m.Source == nil {
		res.AddMessage(
			fmt.Sprintf("mapping %q has no source attribute", m.ID()),
			m.ID(), m.NodeKind().String(), diag.SeverityError,
		)
	} else {
		res.AddChild(r.Walk(m.Source))
	}
	if m.Target == nil {
		res.AddMessage(
			fmt.Sprintf("mapping %q has no target attribute", m.ID()),
			m.ID(), m.NodeKind().String(), diag.SeverityError,
		)
	} else {
		res.AddChild(r.Walk(m.Target))
	}
	return res
}
