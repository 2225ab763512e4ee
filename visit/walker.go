package visit

import (
	"fmt"
	"reflect"

	"github.com/typeforge/sdk/diag"
	"github.com/typeforge/sdk/model"
)

// Walker drives one visitor over a node graph with per-traversal memoization.
//
// The walker owns a cache of nodeID -> (State, *diag.Result) whose lifetime
// is exactly one top-level Walk call: the cache resets whenever Walk is
// entered at depth zero. Within one traversal each node is visited at most
// once (shared diamond references receive the identical cached result)
// and reference cycles in the data terminate with a sentinel instead of
// recursing.
//
// A Walker is bound to exactly one visitor instance and is not safe for
// concurrent use. Callers needing concurrency must create a fresh visitor
// and walker per call.
type Walker struct {
	visitor model.Visitor
	states  map[string]State
	results map[string]*diag.Result
	depth   int
}

// binder is implemented by visitors that embed Base; NewWalker wires the
// walker back into the visitor so its rule methods can recurse through it.
type binder interface {
	bindWalker(*Walker)
}

// NewWalker creates a walker for the given visitor. If the visitor embeds
// Base, the walker binds itself so the visitor's Walk calls route through
// this walker's cache.
func NewWalker(v model.Visitor) *Walker {
	w := &Walker{
		visitor: v,
		states:  make(map[string]State),
		results: make(map[string]*diag.Result),
	}
	if b, ok := v.(binder); ok {
		b.bindWalker(w)
	}
	return w
}

// Walk dispatches the visitor on n with memoization:
//
//  1. A Done node returns its cached result without re-visiting.
//  2. An InProgress node is a reference cycle in the data; Walk returns a
//     sentinel result carrying a single info-level message naming the node
//     where the cycle closed, and does not recurse.
//  3. Otherwise the node is marked InProgress, the visitor computes its
//     result (recursing into references through this walker), and the node
//     is marked Done with that result.
//
// Walk on a nil node returns nil, including a typed nil held in the Node
// interface (an unset *DataType parent, say); rules treat absent references
// as their own validation concern.
func (w *Walker) Walk(n model.Node) *diag.Result {
	if n == nil || isNilNode(n) {
		return nil
	}

	if w.depth == 0 {
		// Fresh top-level call: the cache from any prior call is stale.
		w.states = make(map[string]State)
		w.results = make(map[string]*diag.Result)
	}

	switch w.states[n.ID()] {
	case Done:
		return w.results[n.ID()]
	case InProgress:
		return cycleSentinel(n)
	}

	w.states[n.ID()] = InProgress
	w.depth++
	res := n.Accept(w.visitor)
	w.depth--
	if res == nil {
		res = diag.NewResult()
	}
	w.states[n.ID()] = Done
	w.results[n.ID()] = res
	return res
}

// StateOf returns the cached state for a node ID from the current traversal.
func (w *Walker) StateOf(nodeID string) State {
	return w.states[nodeID]
}

// isNilNode reports whether the interface holds a typed nil, such as a nil
// *DataType stored in an unset Parent field. Such a value compares unequal
// to nil but has nothing to visit.
func isNilNode(n model.Node) bool {
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// cycleSentinel builds the dedicated result returned when a traversal meets
// a node that is still on the call stack.
func cycleSentinel(n model.Node) *diag.Result {
	res := diag.NewResult()
	res.AddMessage(
		fmt.Sprintf("reference cycle detected at %s %q; traversal stopped here", n.NodeKind(), n.ID()),
		n.ID(),
		n.NodeKind().String(),
		diag.SeverityInfo,
	)
	return res
}

// Base is embedded by rule visitors to give them access to their walker.
// Rule methods recurse into referenced nodes with Walk, never by calling
// Accept directly, so the traversal cache stays authoritative.
type Base struct {
	walker *Walker
}

func (b *Base) bindWalker(w *Walker) { b.walker = w }

// Walk recurses into a referenced node through the bound walker.
// Calling Walk on a visitor that was never handed to NewWalker is a
// programmer error and panics.
func (b *Base) Walk(n model.Node) *diag.Result {
	if b.walker == nil {
		panic("visit: visitor used without a walker; create it with visit.NewWalker")
	}
	return b.walker.Walk(n)
}
