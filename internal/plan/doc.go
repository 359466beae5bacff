// Package plan turns a dependency graph into a deterministic execution plan
// and renders it as text, JSON or HCL.
//
// A plan lists every step in execution order together with its level (the
// wave in which it can run), its direct dependencies and its parameter sets.
// The plan is purely descriptive: nothing is executed.
package plan
