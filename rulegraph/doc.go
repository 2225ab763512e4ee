// Package rulegraph compiles rule declarations into per-scope execution
// orders, rejecting cyclic or malformed configurations before the registry
// can run.
//
// # Declarations and scopes
//
// A Declaration names the lifecycle tasks and concrete node kinds a rule
// targets plus its ordering constraints (DependsOn, ExecuteBefore). A
// declaration with N tasks and M target kinds is indexed into N×M
// (task, kind) scopes; a declaration without tasks applies to every task.
//
// Declarations follow a scan-then-freeze protocol:
//
//	scanner := rulegraph.NewScanner()
//	if err := scanner.Add(decls...); err != nil { ... }
//	snapshot := scanner.Freeze()
//
// # Compilation
//
// Compile builds the happens-before graph of each scope and topologically
// orders it with a three-color depth-first search. Cross-scope ordering
// references are dropped silently so they can never manufacture a false
// cycle, while any cycle inside one scope, including a rule naming itself,
// is a fatal build error:
//
//	compiled, err := rulegraph.NewCompiler().Compile(snapshot)
//	if err != nil {
//	    // build must abort; err joins every structural and cycle error
//	}
//	order, ok := compiled.OrderFor(rulegraph.TaskValidate, model.KindDataType)
//
// Scopes fail independently: the joined error names each failing scope and
// one edge of its cycle, and cycle-free scopes still compile their orders.
package rulegraph
