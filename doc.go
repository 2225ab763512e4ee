// Package sdk provides the TypeForge Registry SDK.
//
// TypeForge validates metadata type hierarchies against declaratively
// ordered rule sets. Rules declare which lifecycle tasks and node kinds
// they apply to plus their ordering constraints; the SDK compiles those
// declarations into per-scope dependency graphs at build time and runs
// the resulting checks over node hierarchies at validation time.
//
// # Core Concepts
//
// The SDK is organized around several key concepts:
//
//   - Nodes: the metadata hierarchy (data types, type profiles, attributes,
//     operations, steps, attribute mappings) defined in package model
//   - Declarations: rule metadata (scope, dependencies, guard expression)
//     compiled into execution orders by package rulegraph
//   - Checks: visitor-based validation rules producing diagnostic trees
//     (packages rules, visit, diag)
//   - Policy: the strict/lax decision engine over diagnostic trees
//     (package policy)
//
// # Getting Started
//
// Build a registry from rule declarations, then validate hierarchies:
//
//	import (
//		"github.com/typeforge/sdk"
//		"github.com/typeforge/sdk/rulegraph"
//	)
//
//	reg, err := sdk.New(ctx, []rulegraph.Declaration{
//		{ID: "syntax", TargetKinds: model.AllKinds()},
//		{ID: "inheritance", TargetKinds: model.AllKinds(), DependsOn: []string{"syntax"}},
//		{ID: "profile", TargetKinds: []model.Kind{model.KindTypeProfile}},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer reg.Close()
//
//	outcome, err := reg.Validate(ctx, root, rulegraph.TaskValidate)
//
// Compilation fails fast: structural errors and dependency cycles are
// reported from New, and a registry is only returned when every scope's
// graph has a valid execution order.
//
// # Custom Rules
//
// Register implementations for declared rule IDs with WithCheck. A check
// embeds visit.Base and implements every model.Visitor method, one per node
// kind; recursion through the bound walker makes traversal cycle-safe:
//
//	type namingRule struct {
//		visit.Base
//	}
//
//	func (r *namingRule) Name() string { return "naming" }
//
//	func (r *namingRule) VisitDataType(t *model.DataType) *diag.Result {
//		res := diag.NewResult()
//		if !strings.HasPrefix(t.Name(), "Tf") {
//			res.AddMessage("names start with Tf", t.ID(), t.NodeKind().String(), diag.SeverityWarning)
//		}
//		res.AddChild(r.Walk(t.Parent))
//		return res
//	}
//
//	// ...plus VisitTypeProfile, VisitAttribute, VisitOperation,
//	// VisitOperationStep, and VisitAttributeMapping.
//
//	reg, err := sdk.New(ctx, decls,
//		sdk.WithCheck("naming", func() policy.Check { return &namingRule{} }),
//	)
package sdk
