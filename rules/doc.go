// Package rules contains the concrete validation rules shipped with the SDK.
// Each rule is a model.Visitor that embeds visit.Base and computes a pure
// function of a node's own fields plus the (memoized) results of its
// referenced nodes; rules never mutate the entity graph.
//
//   - SyntaxRule: identity and local well-formedness of every node kind.
//   - InheritanceRule: primitive-kind agreement between basic types and
//     their parents, covariant attribute overrides, mapping compatibility.
//   - ProfileRule: type profiles must name a base and declare their
//     sub-schema relation.
//
// Rule instances are single-traversal objects; create a fresh instance and a
// fresh walker per validation call:
//
//	rule := rules.NewInheritanceRule()
//	report := visit.NewWalker(rule).Walk(root)
package rules
