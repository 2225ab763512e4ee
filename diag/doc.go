// Package diag provides the diagnostic model for registry validation: ordered
// severity levels, validation messages, and the hierarchical Result tree that
// rule visitors build during a traversal.
//
// # Severity
//
// Severities form an explicit total order:
//
//	diag.SeverityInfo < diag.SeverityWarning < diag.SeverityError
//
// Compare levels with CompareSeverity or Severity.AtLeast:
//
//	if msg.Severity.AtLeast(diag.SeverityWarning) {
//	    // qualifies for a warning-threshold policy
//	}
//
// # Results
//
// A Result accumulates messages for one node and child results for the nodes
// referenced from it:
//
//	res := diag.NewResult()
//	res.AddMessage("attribute has no data type", "attr-1", "attribute", diag.SeverityError)
//	res.AddChild(childRes)
//
// IsValid and IsEmpty are transitive over the whole tree: a Result is invalid
// if any error-level message exists anywhere beneath it, and non-empty if any
// message exists anywhere beneath it.
package diag
