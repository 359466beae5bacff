// Package step defines step descriptors: declarative descriptions of one
// experiment step's input labels, output labels, feature tags, grouping keys
// and the parameter sets it is instantiated against.
//
// Descriptors are compared structurally. Two descriptors built independently
// from the same source, target, features and for_each labels are equal and
// interchangeable as graph nodes, regardless of their names, parameters,
// aggregate_by labels or rules.
package step
