// Package visit drives rule visitors over the registry's entity graph with
// per-traversal memoization and cycle defense.
//
// A Walker pairs one visitor instance with a cache of node states and
// results. Within a single top-level Walk call every node is visited at most
// once: shared sub-nodes (diamonds) get the identical cached result, and a
// reference cycle in the data (a node reached again while still on the call
// stack) yields a single info-level sentinel message instead of unbounded
// recursion. Caching only completed results would not be enough; the explicit
// InProgress state is what makes cyclic data terminate.
//
// Rule visitors embed Base and recurse with its Walk method:
//
//	type myRule struct {
//	    visit.Base
//	}
//
//	func (r *myRule) VisitDataType(t *model.DataType) *diag.Result {
//	    res := diag.NewResult()
//	    if t.Parent != nil {
//	        res.AddChild(r.Walk(t.Parent))
//	    }
//	    return res
//	}
//
//	rule := &myRule{}
//	report := visit.NewWalker(rule).Walk(root)
//
// Walkers and their visitors are single-threaded, single-traversal objects:
// create a fresh pair per Validate call.
package visit
