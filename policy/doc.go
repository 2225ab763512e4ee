// Package policy reduces the diagnostic trees of a set of validation checks
// to a single accept/reject decision.
//
// An Engine is configured with a severity threshold and a mode. Messages
// strictly below the threshold never count toward the decision but always
// remain in the returned trees for display. Strict mode rejects on any
// qualifying message; lax mode rejects only on qualifying error-level
// content; warnings and infos never block under lax.
//
//	engine, err := policy.NewEngine(
//	    policy.Config{Threshold: diag.SeverityWarning, Mode: policy.ModeStrict},
//	    []policy.CheckFactory{
//	        func() policy.Check { return rules.NewSyntaxRule() },
//	        func() policy.Check { return rules.NewInheritanceRule() },
//	    },
//	)
//	outcome, err := engine.Evaluate(ctx, root, rulegraph.TaskValidate)
//
// Every Evaluate call instantiates fresh check visitors and walkers, so the
// engine is safe for concurrent callers while single traversals stay
// single-threaded. Configuration can also be loaded from a policy.yaml file
// with Load.
package policy
