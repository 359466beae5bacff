// Package dag is the planning layer of the application. It holds the set of
// registered step descriptors, derives producer → consumer dependencies from
// their shared labels and turns them into a deterministic execution order.
//
// # Dependencies
//
// A step may consume and produce whole sets of labels, so a single
// declaration can touch many others. For every label l, every producer of l
// must run before every consumer of l. The graph never stores these edges:
// it keeps a labelindex.Index over the registered descriptors and re-derives
// the edge set on each sort, so adding or removing a descriptor between two
// sorts is always reflected.
//
// # Ordering
//
// SortedStepDescriptors runs Kahn's algorithm. Among the steps that are ready
// at any point, the one registered earliest is emitted first, which makes the
// order a pure function of the registration sequence. If the algorithm stalls
// before every step is emitted, the remainder is reported as a
// CyclicDependencyError together with the strongly connected components that
// actually form the cycles. A step that consumes one of its own outputs is a
// cycle of size one.
//
// # Concurrency
//
// A Graph is not safe for concurrent use. Registration and sorting form one
// planning phase that the caller coordinates.
package dag
