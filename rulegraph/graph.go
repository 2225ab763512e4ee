package rulegraph

import (
	"sort"

	"github.com/typeforge/sdk/model"
	"github.com/typeforge/sdk/visit"
)

// Scope identifies one (task, target kind) bucket of the rule graph. Every
// dependency graph is scoped to exactly one Scope.
type Scope struct {
	Task Task
	Kind model.Kind
}

// String renders the scope as "(task, kind)".
func (s Scope) String() string {
	return "(" + s.Task.String() + ", " + s.Kind.String() + ")"
}

// Graph is the happens-before dependency graph of the rules in one scope.
//
// adjacency[X] lists the rule ids that must run before X:
//   - R.DependsOn = {D}     adds adjacency[R] += D
//   - R.ExecuteBefore = {P} adds adjacency[P] += R
//
// Edges naming rule ids outside the scope are dropped, not errors:
// cross-scope constraints are meaningless and must never manufacture a
// false cycle. Node and edge ordering is deterministic (sorted by id).
type Graph struct {
	scope     Scope
	ids       []string
	adjacency map[string][]string
}

// NewGraph builds the dependency graph for the declarations of one scope.
// Declarations not in the scope contribute nothing.
func NewGraph(scope Scope, decls []Declaration) *Graph {
	present := make(map[string]bool, len(decls))
	for _, d := range decls {
		if d.AppliesTo(scope.Task, scope.Kind) {
			present[d.ID] = true
		}
	}

	adjacency := make(map[string][]string, len(present))
	for _, d := range decls {
		if !present[d.ID] {
			continue
		}
		for _, dep := range d.DependsOn {
			if present[dep] {
				adjacency[d.ID] = append(adjacency[d.ID], dep)
			}
		}
		for _, successor := range d.ExecuteBefore {
			if present[successor] {
				adjacency[successor] = append(adjacency[successor], d.ID)
			}
		}
	}

	ids := make([]string, 0, len(present))
	for id := range present {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for id := range adjacency {
		sort.Strings(adjacency[id])
	}

	return &Graph{scope: scope, ids: ids, adjacency: adjacency}
}

// Scope returns the (task, kind) pair the graph is scoped to.
func (g *Graph) Scope() Scope { return g.scope }

// Len returns the number of rules in the graph.
func (g *Graph) Len() int { return len(g.ids) }

// Predecessors returns the rule ids that must run before the given rule.
func (g *Graph) Predecessors(id string) []string { return g.adjacency[id] }

// TopologicalOrder returns an execution order in which every rule follows
// all of its happens-before predecessors, or a CycleError as soon as a cycle
// is detected.
//
// The order is computed with a three-color depth-first search: a node is
// InProgress while its predecessors are being explored and Done once
// appended to the order. Meeting an InProgress predecessor closes a cycle
// and fails the scope immediately; a rule naming itself is the one-node
// case of the same condition.
func (g *Graph) TopologicalOrder() ([]string, error) {
	states := make(map[string]visit.State, len(g.ids))
	order := make([]string, 0, len(g.ids))

	var walk func(id string) error
	walk = func(id string) error {
		states[id] = visit.InProgress
		for _, pred := range g.adjacency[id] {
			switch states[pred] {
			case visit.InProgress:
				return &CycleError{Task: g.scope.Task, Kind: g.scope.Kind, From: id, To: pred}
			case visit.Done:
				continue
			default:
				if err := walk(pred); err != nil {
					return err
				}
			}
		}
		states[id] = visit.Done
		// Predecessors are all placed by now, so appending here yields a
		// valid execution order directly.
		order = append(order, id)
		return nil
	}

	for _, id := range g.ids {
		if states[id] == visit.Unvisited {
			if err := walk(id); err != nil {
				return nil, err
			}
		}
	}
	return order, nil
}
