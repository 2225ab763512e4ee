// Package model defines the registry's entity graph: the closed set of
// visitable node kinds (data types, type profiles, attributes, operations,
// operation steps, and attribute mappings) and the Visitor contract over
// them.
//
// # Closed hierarchy
//
// Node is implemented only by the concrete types in this package; the
// unexported marker method prevents external implementations. Visitor has one
// method per concrete kind, so a rule that fails to handle a kind does not
// compile.
//
// # Building graphs
//
// Nodes use builder-style With* methods:
//
//	str := model.NewDataType("dt-string", "string", model.PrimitiveString)
//	name := model.NewAttribute("attr-name", "name", str).WithRequired()
//	person := model.NewDataType("dt-person", "Person", model.PrimitiveNone).
//	    WithAttributes(name)
//
// The relationship graph may legitimately share sub-nodes (two types using
// the same attribute) and may be misauthored into a cycle (a type whose
// parent chain loops). Nodes do not defend against either; the visit package
// does.
package model
