// Package paramspace generates sequences of parameter sets for experiment
// steps: exhaustive cartesian products of per-name value lists, and random
// samples drawn from per-name distributions.
//
// Generators only produce values. A step descriptor treats the resulting
// slice as an opaque, ordered list of instantiations.
package paramspace
